package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihalhub/paylite-relay/internal/models"
)

func setupLogRepo(t *testing.T, maxLogs int) (*TransactionLogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewTransactionLogRepository(sqlxDB, maxLogs), mock
}

func sampleEntry() models.LogEntry {
	return models.LogEntry{
		ID:          "6a0f8c1e-0000-0000-0000-000000000001",
		Timestamp:   1700000000000,
		Provider:    models.ProviderBkash,
		TrxID:       "ABCD1234",
		AmountPaisa: 50000,
		Status:      models.StatusSent,
	}
}

func TestTransactionLogRepository_Append(t *testing.T) {
	repo, mock := setupLogRepo(t, 10)
	entry := sampleEntry()

	mock.ExpectExec("INSERT INTO transaction_logs").
		WithArgs(entry.ID, entry.Timestamp, string(entry.Provider), entry.TrxID, entry.AmountPaisa, entry.Status, entry.Error).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM transaction_logs").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Append(context.Background(), entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionLogRepository_AppendError(t *testing.T) {
	repo, mock := setupLogRepo(t, 10)
	entry := sampleEntry()

	mock.ExpectExec("INSERT INTO transaction_logs").
		WillReturnError(assert.AnError)

	err := repo.Append(context.Background(), entry)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionLogRepository_Recent(t *testing.T) {
	repo, mock := setupLogRepo(t, 10)

	rows := sqlmock.NewRows([]string{"log_id", "ts", "provider", "trx_id", "amount_paisa", "status", "error"}).
		AddRow("id-2", int64(200), "bkash", "TRX2", int64(2000), models.StatusIgnored, "Duplicate").
		AddRow("id-1", int64(100), "nagad", "TRX1", int64(1000), models.StatusSent, "")

	mock.ExpectQuery("SELECT log_id, ts, provider, trx_id, amount_paisa, status, error").
		WithArgs(2).
		WillReturnRows(rows)

	entries, err := repo.Recent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "id-2", entries[0].ID)
	assert.Equal(t, models.StatusIgnored, entries[0].Status)
	assert.Equal(t, "Duplicate", entries[0].Error)
	assert.Equal(t, models.ProviderNagad, entries[1].Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionLogRepository_RecentClampsLimit(t *testing.T) {
	repo, mock := setupLogRepo(t, 10)

	rows := sqlmock.NewRows([]string{"log_id", "ts", "provider", "trx_id", "amount_paisa", "status", "error"})

	// both zero and oversized limits fall back to the retention bound
	mock.ExpectQuery("SELECT log_id").WithArgs(10).WillReturnRows(rows)

	_, err := repo.Recent(context.Background(), 0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
