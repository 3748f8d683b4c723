package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// maxItemRetries caps flush attempts per queued item; an item failing this
// many times is dropped permanently.
const maxItemRetries = 10

// QueueStore persists queued transactions between flushes.
type QueueStore interface {
	Load(ctx context.Context) ([]models.QueuedTransaction, error)
	Save(ctx context.Context, items []models.QueuedTransaction) error
}

// Deliverer performs the full authenticated delivery protocol for one
// transaction.
type Deliverer interface {
	Send(ctx context.Context, tx models.Transaction) error
}

// Deduper checks and marks delivered transactions.
type Deduper interface {
	IsDuplicate(ctx context.Context, provider models.Provider, trxID string, amountPaisa int64) (bool, error)
	MarkSent(ctx context.Context, provider models.Provider, trxID string, amountPaisa int64) error
}

// LogSink consumes pipeline log entries.
type LogSink interface {
	Append(ctx context.Context, entry models.LogEntry) error
}

// OfflineQueueService holds transactions that failed for connectivity reasons
// and re-delivers them in FIFO order when asked.
type OfflineQueueService struct {
	store    QueueStore
	delivery Deliverer
	dedup    Deduper
	sink     LogSink
	flushing atomic.Bool
}

// NewOfflineQueueService creates a new OfflineQueueService instance.
func NewOfflineQueueService(store QueueStore, delivery Deliverer, dedup Deduper, sink LogSink) *OfflineQueueService {
	return &OfflineQueueService{store: store, delivery: delivery, dedup: dedup, sink: sink}
}

// Enqueue appends a transaction for later delivery. Storage errors are logged
// and swallowed; the queue is best-effort by design.
func (svc *OfflineQueueService) Enqueue(ctx context.Context, tx models.Transaction) {
	items, err := svc.store.Load(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load offline queue, starting fresh", "error", err)
		items = nil
	}

	items = append(items, models.QueuedTransaction{
		ID:          uuid.NewString(),
		Transaction: tx,
		EnqueuedAt:  time.Now().UnixMilli(),
	})

	if err := svc.store.Save(ctx, items); err != nil {
		logger.Log.Errorw("failed to persist offline queue", "trx_id", tx.TrxID, "error", err)
		return
	}
	logger.Log.Infow("transaction queued for retry", "trx_id", tx.TrxID, "pending", len(items))
}

// PendingCount returns the number of queued transactions.
func (svc *OfflineQueueService) PendingCount(ctx context.Context) int {
	items, err := svc.store.Load(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count offline queue", "error", err)
		return 0
	}
	return len(items)
}

// Flush re-attempts every queued transaction in enqueue order. Only one flush
// runs at a time; a flush requested while another is in progress is a no-op.
// The remaining queue is persisted wholesale at the end of the pass. Flush
// never fails loudly; every error folds into the keep-for-retry path.
func (svc *OfflineQueueService) Flush(ctx context.Context) {
	if !svc.flushing.CompareAndSwap(false, true) {
		return
	}
	defer svc.flushing.Store(false)

	items, err := svc.store.Load(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load offline queue for flush", "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	logger.Log.Infow("flushing offline queue", "pending", len(items))

	var remaining []models.QueuedTransaction
	for _, item := range items {
		if err := svc.delivery.Send(ctx, item.Transaction); err != nil {
			item.Retries++
			if item.Retries < maxItemRetries {
				remaining = append(remaining, item)
			} else {
				logger.Log.Warnw("dropping transaction after retry cap",
					"trx_id", item.Transaction.TrxID,
					"retries", item.Retries,
				)
			}
			continue
		}

		svc.markDelivered(ctx, item.Transaction)
	}

	if err := svc.store.Save(ctx, remaining); err != nil {
		logger.Log.Errorw("failed to persist offline queue after flush", "error", err)
	}
}

func (svc *OfflineQueueService) markDelivered(ctx context.Context, tx models.Transaction) {
	if err := svc.dedup.MarkSent(ctx, tx.Provider, tx.TrxID, tx.AmountPaisa); err != nil {
		// a missed mark means at worst a harmless duplicate caught server-side
		logger.Log.Errorw("failed to record dedup mark", "trx_id", tx.TrxID, "error", err)
	}
	appendLog(ctx, svc.sink, newLogEntry(tx, models.StatusSent, ""))
}
