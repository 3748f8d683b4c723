package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihalhub/paylite-relay/internal/models"
)

func queuedTx(i int) models.QueuedTransaction {
	return models.QueuedTransaction{
		ID: fmt.Sprintf("id-%03d", i),
		Transaction: models.Transaction{
			Provider:    models.ProviderBkash,
			Sender:      "bKash",
			Message:     "You have received Tk 500.00 TrxID ABCD1234",
			AmountPaisa: int64(i),
			TrxID:       fmt.Sprintf("TRX%05d", i),
		},
		EnqueuedAt: int64(i),
	}
}

func TestOfflineQueueRepository(t *testing.T) {
	ctx := context.Background()
	rdb := setupRedis(t)

	t.Run("empty queue loads as nil", func(t *testing.T) {
		repo := NewOfflineQueueRepository(rdb, 100)

		items, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, items)

		count, err := repo.Count(ctx)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("save and load round-trip in order", func(t *testing.T) {
		repo := NewOfflineQueueRepository(rdb, 100)

		var items []models.QueuedTransaction
		for i := 0; i < 5; i++ {
			items = append(items, queuedTx(i))
		}
		require.NoError(t, repo.Save(ctx, items))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 5)
		assert.Equal(t, items, loaded)

		count, err := repo.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("overflow drops oldest first", func(t *testing.T) {
		repo := NewOfflineQueueRepository(rdb, 100)

		var items []models.QueuedTransaction
		for i := 0; i < 105; i++ {
			items = append(items, queuedTx(i))
		}
		require.NoError(t, repo.Save(ctx, items))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 100)
		assert.Equal(t, "id-005", loaded[0].ID)
		assert.Equal(t, "id-104", loaded[99].ID)
	})

	t.Run("corrupt document resets to empty", func(t *testing.T) {
		repo := NewOfflineQueueRepository(rdb, 100)

		require.NoError(t, rdb.Set(ctx, offlineQueueKey, "{not json", 0).Err())

		items, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, items)
	})
}
