package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/models"
)

const bkashSender = "bKash"
const bkashMessage = "You have received Tk 500.00 from 01712345678. TrxID ABCD1234"

func bkashTx() models.Transaction {
	return models.Transaction{
		Provider:    models.ProviderBkash,
		Sender:      bkashSender,
		Message:     bkashMessage,
		AmountPaisa: 50000,
		TrxID:       "ABCD1234",
	}
}

type pipelineMocks struct {
	dedup    *MockDeduper
	delivery *MockDeliverer
	queue    *MockEnqueuer
	prober   *MockProber
	sink     *MockLogSink
}

func newPipelineForTest(ctrl *gomock.Controller) (*PipelineService, pipelineMocks) {
	m := pipelineMocks{
		dedup:    NewMockDeduper(ctrl),
		delivery: NewMockDeliverer(ctrl),
		queue:    NewMockEnqueuer(ctrl),
		prober:   NewMockProber(ctrl),
		sink:     NewMockLogSink(ctrl),
	}
	return NewPipelineService(m.dedup, m.delivery, m.queue, m.prober, m.sink, 4), m
}

func TestPipelineService_Process_UnparseableDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newPipelineForTest(ctrl)

	// no mock expectations: nothing downstream may be touched
	svc.process(context.Background(), rawEvent{sender: "random", message: "hello there friend"})
	svc.process(context.Background(), rawEvent{sender: bkashSender, message: "Cash out Tk 500.00 TrxID ABCD1234 completed"})
}

func TestPipelineService_Process_DuplicateIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(true, nil)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.LogEntry) error {
			assert.Equal(t, models.StatusIgnored, entry.Status)
			assert.Equal(t, "Duplicate", entry.Error)
			return nil
		})

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_Process_DedupErrorFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(false, errors.New("redis down"))
	m.prober.EXPECT().IsOnline(gomock.Any()).Return(true, nil)
	m.delivery.EXPECT().Send(gomock.Any(), tx).Return(nil)
	m.dedup.EXPECT().MarkSent(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(nil)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_Process_OfflineQueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(false, nil)
	m.prober.EXPECT().IsOnline(gomock.Any()).Return(false, nil)
	m.queue.EXPECT().Enqueue(gomock.Any(), tx)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.LogEntry) error {
			assert.Equal(t, models.StatusFailed, entry.Status)
			assert.Equal(t, "Offline - queued for retry", entry.Error)
			return nil
		})

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_Process_NetworkFailureQueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(false, nil)
	m.prober.EXPECT().IsOnline(gomock.Any()).Return(true, nil)
	m.delivery.EXPECT().Send(gomock.Any(), tx).Return(&facades.SendError{Class: facades.ClassNetwork, Message: "Network error"})
	m.queue.EXPECT().Enqueue(gomock.Any(), tx)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.LogEntry) error {
			assert.Equal(t, models.StatusFailed, entry.Status)
			assert.Equal(t, "Network error - queued for retry", entry.Error)
			return nil
		})

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_Process_ServerFailureLogsTruncated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	longMsg := strings.Repeat("x", 300)
	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(false, nil)
	m.prober.EXPECT().IsOnline(gomock.Any()).Return(true, nil)
	m.delivery.EXPECT().Send(gomock.Any(), tx).Return(&facades.SendError{Class: facades.ClassServer, Message: longMsg})
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.LogEntry) error {
			assert.Equal(t, models.StatusFailed, entry.Status)
			assert.Len(t, entry.Error, maxLoggedErrorLen)
			return nil
		})

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_Process_SuccessMarksAndLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	gomock.InOrder(
		m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(false, nil),
		m.delivery.EXPECT().Send(gomock.Any(), tx).Return(nil),
		m.dedup.EXPECT().MarkSent(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(nil),
	)
	m.prober.EXPECT().IsOnline(gomock.Any()).Return(true, nil)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.LogEntry) error {
			assert.Equal(t, models.StatusSent, entry.Status)
			assert.Empty(t, entry.Error)
			assert.Equal(t, tx.TrxID, entry.TrxID)
			assert.Equal(t, tx.AmountPaisa, entry.AmountPaisa)
			return nil
		})

	svc.process(context.Background(), rawEvent{sender: bkashSender, message: bkashMessage})
}

func TestPipelineService_HandleIncoming_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dedup := NewMockDeduper(ctrl)
	svc := NewPipelineService(dedup, NewMockDeliverer(ctrl), NewMockEnqueuer(ctrl), NewMockProber(ctrl), NewMockLogSink(ctrl), 1)

	// no Run loop draining: second event must be dropped, not block
	svc.HandleIncoming(bkashSender, bkashMessage)
	svc.HandleIncoming(bkashSender, bkashMessage)

	assert.Equal(t, 1, len(svc.events))
}

func TestPipelineService_HandleIncoming_IgnoresEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newPipelineForTest(ctrl)

	svc.HandleIncoming("", bkashMessage)
	svc.HandleIncoming(bkashSender, "")

	assert.Equal(t, 0, len(svc.events))
}

func TestPipelineService_Run_DrainsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPipelineForTest(ctrl)
	tx := bkashTx()

	done := make(chan struct{})
	m.dedup.EXPECT().IsDuplicate(gomock.Any(), tx.Provider, tx.TrxID, tx.AmountPaisa).Return(true, nil)
	m.sink.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.LogEntry) error {
			close(done)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	svc.HandleIncoming(bkashSender, bkashMessage)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not processed")
	}
}
