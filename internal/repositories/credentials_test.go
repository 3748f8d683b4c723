package repositories

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file reads as empty", func(t *testing.T) {
		repo := NewCredentialsRepository(filepath.Join(t.TempDir(), "credentials.json"))

		key, err := repo.GetDeviceKey(ctx)
		assert.NoError(t, err)
		assert.Empty(t, key)

		token, _, err := repo.GetToken(ctx)
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("device key round-trip", func(t *testing.T) {
		repo := NewCredentialsRepository(filepath.Join(t.TempDir(), "credentials.json"))

		require.NoError(t, repo.SaveDeviceKey(ctx, "device-key-1234"))

		key, err := repo.GetDeviceKey(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "device-key-1234", key)
	})

	t.Run("token and expiry stored together", func(t *testing.T) {
		repo := NewCredentialsRepository(filepath.Join(t.TempDir(), "credentials.json"))
		expiry := time.Now().Add(time.Hour).Truncate(time.Millisecond)

		require.NoError(t, repo.SaveToken(ctx, "TOKEN", expiry))

		token, gotExpiry, err := repo.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "TOKEN", token)
		assert.Equal(t, expiry.UnixMilli(), gotExpiry.UnixMilli())
	})

	t.Run("clear auth keeps device key", func(t *testing.T) {
		repo := NewCredentialsRepository(filepath.Join(t.TempDir(), "credentials.json"))

		require.NoError(t, repo.SaveDeviceKey(ctx, "device-key-1234"))
		require.NoError(t, repo.SaveToken(ctx, "TOKEN", time.Now().Add(time.Hour)))
		require.NoError(t, repo.ClearAuth(ctx))

		token, _, err := repo.GetToken(ctx)
		assert.NoError(t, err)
		assert.Empty(t, token)

		key, err := repo.GetDeviceKey(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "device-key-1234", key)
	})

	t.Run("file is not world readable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions only")
		}

		path := filepath.Join(t.TempDir(), "credentials.json")
		repo := NewCredentialsRepository(path)
		require.NoError(t, repo.SaveDeviceKey(ctx, "device-key-1234"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
