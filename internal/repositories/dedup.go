package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

const dedupKeyPrefix = "dedupe:"

// DefaultDedupTTL is how long a delivered transaction stays marked. Provider
// transaction ids can recur after the window, which is an accepted tradeoff.
const DefaultDedupTTL = 7 * 24 * time.Hour

// DedupRepository tracks already-delivered transactions in Redis. Each record
// stores its own expiry timestamp so stale entries can be swept in bulk and
// self-healed on read.
type DedupRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupRepository creates a repository with the given TTL. A non-positive
// TTL falls back to DefaultDedupTTL.
func NewDedupRepository(client *redis.Client, ttl time.Duration) *DedupRepository {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &DedupRepository{client: client, ttl: ttl}
}

func dedupKey(provider models.Provider, trxID string, amountPaisa int64) string {
	return fmt.Sprintf("%s%s:%s:%d", dedupKeyPrefix, provider, trxID, amountPaisa)
}

// IsDuplicate reports whether a non-expired record exists for the composite
// key. Expired or unparsable records are deleted and reported as not
// duplicate.
func (r *DedupRepository) IsDuplicate(ctx context.Context, provider models.Provider, trxID string, amountPaisa int64) (bool, error) {
	key := dedupKey(provider, trxID, amountPaisa)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("dedup read failed", "key", key, "error", err)
		return false, err
	}

	expiry, parseErr := strconv.ParseInt(val, 10, 64)
	if parseErr != nil || time.Now().UnixMilli() > expiry {
		if delErr := r.client.Del(ctx, key).Err(); delErr != nil {
			logger.Log.Errorw("failed to remove stale dedup record", "key", key, "error", delErr)
		}
		return false, nil
	}

	return true, nil
}

// MarkSent upserts a record expiring at now + TTL.
func (r *DedupRepository) MarkSent(ctx context.Context, provider models.Provider, trxID string, amountPaisa int64) error {
	key := dedupKey(provider, trxID, amountPaisa)
	expiry := time.Now().Add(r.ttl).UnixMilli()

	// Redis evicts the key on its own shortly after the record expires, even
	// if no sweep or re-read ever touches it.
	err := r.client.Set(ctx, key, strconv.FormatInt(expiry, 10), r.ttl+time.Minute).Err()

	logger.Log.Infow("dedup mark",
		"key", key,
		"expiry", expiry,
		"error", err,
	)

	return err
}

// CleanExpired sweeps all dedup keys and removes expired or unparsable
// records. Idempotent, safe to run at any time.
func (r *DedupRepository) CleanExpired(ctx context.Context) error {
	now := time.Now().UnixMilli()

	var cursor uint64
	var expired []string
	for {
		keys, next, err := r.client.Scan(ctx, cursor, dedupKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			vals, err := r.client.MGet(ctx, keys...).Result()
			if err != nil {
				return err
			}
			for i, v := range vals {
				val, ok := v.(string)
				if !ok {
					continue // removed since the scan
				}
				expiry, parseErr := strconv.ParseInt(val, 10, 64)
				if parseErr != nil || now > expiry {
					expired = append(expired, keys[i])
				}
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(expired) > 0 {
		if err := r.client.Del(ctx, expired...).Err(); err != nil {
			return err
		}
	}

	logger.Log.Infow("dedup sweep completed", "removed", len(expired))
	return nil
}
