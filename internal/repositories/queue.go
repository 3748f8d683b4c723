package repositories

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

const offlineQueueKey = "paylite:offline_queue"

// DefaultMaxQueueSize bounds the offline queue.
const DefaultMaxQueueSize = 100

// OfflineQueueRepository persists the offline delivery queue as a single JSON
// document so a flush can replace the whole batch atomically. A crash
// mid-flush re-attempts the batch on the next flush, which is safe because
// delivery is idempotent per dedup key.
type OfflineQueueRepository struct {
	client  *redis.Client
	maxSize int
}

// NewOfflineQueueRepository creates a repository bounded at maxSize entries.
func NewOfflineQueueRepository(client *redis.Client, maxSize int) *OfflineQueueRepository {
	if maxSize <= 0 {
		maxSize = DefaultMaxQueueSize
	}
	return &OfflineQueueRepository{client: client, maxSize: maxSize}
}

// Load returns the persisted queue in enqueue order. A corrupt document is
// logged and treated as an empty queue rather than blocking the pipeline.
func (r *OfflineQueueRepository) Load(ctx context.Context) ([]models.QueuedTransaction, error) {
	raw, err := r.client.Get(ctx, offlineQueueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to load offline queue", "error", err)
		return nil, err
	}

	var items []models.QueuedTransaction
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Log.Errorw("corrupt offline queue document, resetting", "error", err)
		return nil, nil
	}
	return items, nil
}

// Save replaces the persisted queue wholesale, truncating to the configured
// bound by dropping the oldest entries first.
func (r *OfflineQueueRepository) Save(ctx context.Context, items []models.QueuedTransaction) error {
	if len(items) > r.maxSize {
		dropped := len(items) - r.maxSize
		items = items[dropped:]
		logger.Log.Warnw("offline queue overflow", "dropped_oldest", dropped, "max", r.maxSize)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, offlineQueueKey, raw, 0).Err()

	logger.Log.Infow("offline queue saved",
		"size", len(items),
		"error", err,
	)

	return err
}

// Count returns the number of persisted entries.
func (r *OfflineQueueRepository) Count(ctx context.Context) (int, error) {
	items, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
