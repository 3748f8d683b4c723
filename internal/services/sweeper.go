package services

import (
	"context"
	"time"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// DedupCleaner removes expired duplicate-detection records.
type DedupCleaner interface {
	CleanExpired(ctx context.Context) error
}

// DedupSweeper garbage-collects expired dedup records on a timer so a
// long-running process does not accumulate stale keys.
type DedupSweeper struct {
	cleaner  DedupCleaner
	interval time.Duration
}

// NewDedupSweeper creates a sweeper running every interval. A non-positive
// interval falls back to 1h.
func NewDedupSweeper(cleaner DedupCleaner, interval time.Duration) *DedupSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &DedupSweeper{cleaner: cleaner, interval: interval}
}

// Run sweeps once immediately, then on every tick until ctx is done. A failed
// sweep is logged and retried on the next tick.
func (s *DedupSweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s.sweep(ctx)
	}
}

func (s *DedupSweeper) sweep(ctx context.Context) {
	if err := s.cleaner.CleanExpired(ctx); err != nil {
		logger.Log.Errorw("dedup sweep failed", "error", err)
	}
}
