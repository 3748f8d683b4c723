package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

func newLogEntry(tx models.Transaction, status, errMsg string) models.LogEntry {
	return models.LogEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UnixMilli(),
		Provider:    tx.Provider,
		TrxID:       tx.TrxID,
		AmountPaisa: tx.AmountPaisa,
		Status:      status,
		Error:       errMsg,
	}
}

func appendLog(ctx context.Context, sink LogSink, entry models.LogEntry) {
	if sink == nil {
		return
	}
	if err := sink.Append(ctx, entry); err != nil {
		logger.Log.Errorw("failed to append log entry", "id", entry.ID, "error", err)
	}
}

func truncateError(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
