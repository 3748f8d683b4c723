package services

import (
	"context"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
	"github.com/nihalhub/paylite-relay/internal/parser"
)

// maxLoggedErrorLen caps server error text carried in a log entry.
const maxLoggedErrorLen = 100

// defaultEventBuffer bounds the incoming event queue.
const defaultEventBuffer = 256

// Enqueuer queues transactions that could not be delivered right away.
type Enqueuer interface {
	Enqueue(ctx context.Context, tx models.Transaction)
}

// Prober answers a best-effort reachability question. A probe error is
// treated as online; the delivery path sorts out real connectivity failures.
type Prober interface {
	IsOnline(ctx context.Context) (bool, error)
}

// rawEvent is one incoming (sender, message) pair.
type rawEvent struct {
	sender  string
	message string
}

// PipelineService serializes incoming notifications through parse, dedup
// check and delivery. A single worker drains the event queue, so at most one
// transaction is in flight at a time and the dedup check-then-mark sequence
// never races with itself.
type PipelineService struct {
	dedup    Deduper
	delivery Deliverer
	queue    Enqueuer
	prober   Prober
	sink     LogSink
	events   chan rawEvent
}

// NewPipelineService creates a new PipelineService instance. A non-positive
// buffer size falls back to the default.
func NewPipelineService(dedup Deduper, delivery Deliverer, queue Enqueuer, prober Prober, sink LogSink, bufSize int) *PipelineService {
	if bufSize <= 0 {
		bufSize = defaultEventBuffer
	}
	return &PipelineService{
		dedup:    dedup,
		delivery: delivery,
		queue:    queue,
		prober:   prober,
		sink:     sink,
		events:   make(chan rawEvent, bufSize),
	}
}

// HandleIncoming accepts one raw notification. Fire-and-forget: it never
// blocks, and events arriving faster than the worker drains them are dropped.
func (svc *PipelineService) HandleIncoming(sender, message string) {
	if sender == "" || message == "" {
		return
	}

	select {
	case svc.events <- rawEvent{sender: sender, message: message}:
	default:
		logger.Log.Warnw("event queue full, dropping notification", "sender", sender)
	}
}

// Run drains incoming events until ctx is cancelled. Exactly one Run loop
// must be active per pipeline instance.
func (svc *PipelineService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-svc.events:
			svc.process(ctx, ev)
		}
	}
}

func (svc *PipelineService) process(ctx context.Context, ev rawEvent) {
	tx, ok := parser.Parse(ev.sender, ev.message)
	if !ok {
		logger.Log.Debugw("unparseable notification dropped", "sender", ev.sender)
		return
	}

	duplicate, err := svc.dedup.IsDuplicate(ctx, tx.Provider, tx.TrxID, tx.AmountPaisa)
	if err != nil {
		// fail open: a missed duplicate is caught server-side via 409
		logger.Log.Errorw("dedup check failed, assuming new", "trx_id", tx.TrxID, "error", err)
		duplicate = false
	}
	if duplicate {
		appendLog(ctx, svc.sink, newLogEntry(*tx, models.StatusIgnored, "Duplicate"))
		return
	}

	online, err := svc.prober.IsOnline(ctx)
	if err != nil {
		online = true
	}
	if !online {
		svc.queue.Enqueue(ctx, *tx)
		appendLog(ctx, svc.sink, newLogEntry(*tx, models.StatusFailed, "Offline - queued for retry"))
		return
	}

	if err := svc.delivery.Send(ctx, *tx); err != nil {
		if facades.IsNetworkError(err) {
			svc.queue.Enqueue(ctx, *tx)
			appendLog(ctx, svc.sink, newLogEntry(*tx, models.StatusFailed, "Network error - queued for retry"))
			return
		}
		appendLog(ctx, svc.sink, newLogEntry(*tx, models.StatusFailed, truncateError(err.Error(), maxLoggedErrorLen)))
		return
	}

	if err := svc.dedup.MarkSent(ctx, tx.Provider, tx.TrxID, tx.AmountPaisa); err != nil {
		logger.Log.Errorw("failed to record dedup mark", "trx_id", tx.TrxID, "error", err)
	}
	appendLog(ctx, svc.sink, newLogEntry(*tx, models.StatusSent, ""))
}
