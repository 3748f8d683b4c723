package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// DefaultMaxLogs bounds the retained activity log.
const DefaultMaxLogs = 50

// TransactionLogRepository persists the per-transaction activity log in
// Postgres, keeping only the most recent entries.
type TransactionLogRepository struct {
	db      *sqlx.DB
	maxLogs int
}

// NewTransactionLogRepository creates a repository retaining at most maxLogs
// entries.
func NewTransactionLogRepository(db *sqlx.DB, maxLogs int) *TransactionLogRepository {
	if maxLogs <= 0 {
		maxLogs = DefaultMaxLogs
	}
	return &TransactionLogRepository{db: db, maxLogs: maxLogs}
}

// EnsureSchema creates the log table when it does not exist yet.
func (r *TransactionLogRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS transaction_logs (
			log_id UUID PRIMARY KEY,
			ts BIGINT NOT NULL,
			provider VARCHAR(16) NOT NULL,
			trx_id VARCHAR(32) NOT NULL,
			amount_paisa BIGINT NOT NULL,
			status VARCHAR(16) NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		)
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Append inserts an entry and prunes everything beyond the retention bound.
func (r *TransactionLogRepository) Append(ctx context.Context, entry models.LogEntry) error {
	const query = `
		INSERT INTO transaction_logs (log_id, ts, provider, trx_id, amount_paisa, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	args := []any{entry.ID, entry.Timestamp, entry.Provider, entry.TrxID, entry.AmountPaisa, entry.Status, entry.Error}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow("executing query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return err
	}
	return r.prune(ctx)
}

func (r *TransactionLogRepository) prune(ctx context.Context) error {
	const query = `
		DELETE FROM transaction_logs
		WHERE log_id NOT IN (
			SELECT log_id FROM transaction_logs
			ORDER BY ts DESC
			LIMIT $1
		)
	`
	_, err := r.db.ExecContext(ctx, query, r.maxLogs)
	if err != nil {
		logger.Log.Errorw("failed to prune transaction logs", "error", err)
	}
	return err
}

// Recent returns up to n entries, newest first. A non-positive or
// out-of-bound n falls back to the retention bound.
func (r *TransactionLogRepository) Recent(ctx context.Context, n int) ([]models.LogEntry, error) {
	if n <= 0 || n > r.maxLogs {
		n = r.maxLogs
	}

	const query = `
		SELECT log_id, ts, provider, trx_id, amount_paisa, status, error
		FROM transaction_logs
		ORDER BY ts DESC
		LIMIT $1
	`

	var entries []models.LogEntry
	err := r.db.SelectContext(ctx, &entries, query, n)

	logger.Log.Infow("executing query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{n},
		"result_count", len(entries),
		"error", err,
	)

	return entries, err
}
