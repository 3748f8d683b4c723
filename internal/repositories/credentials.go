package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// CredentialsRepository is the secure storage tier: it holds the device key
// and the auth session in a restricted-permission JSON file on local disk.
// Token and expiry are written together so a session is never half persisted.
type CredentialsRepository struct {
	path string
	mu   sync.Mutex
}

type credentialsFile struct {
	DeviceKey   string `json:"device_key,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	TokenExpiry int64  `json:"token_expiry,omitempty"` // unix milliseconds
}

// NewCredentialsRepository creates a repository backed by the file at path.
func NewCredentialsRepository(path string) *CredentialsRepository {
	return &CredentialsRepository{path: path}
}

func (r *CredentialsRepository) load() (credentialsFile, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return credentialsFile{}, nil
	}
	if err != nil {
		return credentialsFile{}, err
	}

	var creds credentialsFile
	if err := json.Unmarshal(raw, &creds); err != nil {
		return credentialsFile{}, err
	}
	return creds, nil
}

// store writes the file atomically: temp file in the same directory, then
// rename over the target.
func (r *CredentialsRepository) store(creds credentialsFile) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, r.path)
}

// SaveDeviceKey persists the device key, preserving any stored session.
func (r *CredentialsRepository) SaveDeviceKey(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		logger.Log.Errorw("failed to read credentials file", "error", err)
		return err
	}
	creds.DeviceKey = key
	return r.store(creds)
}

// GetDeviceKey returns the stored device key, empty when none is saved.
func (r *CredentialsRepository) GetDeviceKey(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		return "", err
	}
	return creds.DeviceKey, nil
}

// SaveToken persists the bearer token and its expiry together.
func (r *CredentialsRepository) SaveToken(ctx context.Context, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		logger.Log.Errorw("failed to read credentials file", "error", err)
		return err
	}
	creds.AccessToken = token
	creds.TokenExpiry = expiry.UnixMilli()
	return r.store(creds)
}

// GetToken returns the stored token and its expiry. An absent session yields
// an empty token and zero time, not an error.
func (r *CredentialsRepository) GetToken(ctx context.Context) (string, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		return "", time.Time{}, err
	}
	if creds.AccessToken == "" {
		return "", time.Time{}, nil
	}
	return creds.AccessToken, time.UnixMilli(creds.TokenExpiry), nil
}

// ClearAuth removes the session but keeps the device key.
func (r *CredentialsRepository) ClearAuth(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		logger.Log.Errorw("failed to read credentials file", "error", err)
		return err
	}
	creds.AccessToken = ""
	creds.TokenExpiry = 0
	return r.store(creds)
}
