package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nihalhub/paylite-relay/internal/jwt"
	"github.com/nihalhub/paylite-relay/internal/logger"
)

// Error variables
var (
	ErrEmptyDeviceKey = errors.New("device key is empty")
	ErrNoDeviceKey    = errors.New("no device key saved")
	ErrNoSession      = errors.New("no token after login")
)

// CredentialsStore is the secure tier holding the device key and session.
type CredentialsStore interface {
	SaveDeviceKey(ctx context.Context, key string) error
	GetDeviceKey(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string, expiry time.Time) error
	GetToken(ctx context.Context) (string, time.Time, error)
	ClearAuth(ctx context.Context) error
}

// LoginAPI performs device login against the remote ledger.
type LoginAPI interface {
	Login(ctx context.Context, deviceKey string) (string, error)
}

// AuthService holds the device auth session: it obtains a bearer token via
// login, tracks its expiry locally, and clears it on expiry or logout.
type AuthService struct {
	store CredentialsStore
	api   LoginAPI
	now   func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(store CredentialsStore, api LoginAPI) *AuthService {
	return &AuthService{store: store, api: api, now: time.Now}
}

// Login authenticates the device and persists the resulting session. The
// device key is saved best-effort before the network call so a later re-login
// can find it.
func (svc *AuthService) Login(ctx context.Context, deviceKey string) (time.Time, error) {
	deviceKey = strings.TrimSpace(deviceKey)
	if deviceKey == "" {
		return time.Time{}, ErrEmptyDeviceKey
	}

	if err := svc.store.SaveDeviceKey(ctx, deviceKey); err != nil {
		logger.Log.Errorw("failed to save device key", "error", err)
	}

	token, err := svc.api.Login(ctx, deviceKey)
	if err != nil {
		logger.Log.Errorw("login failed", "error", err)
		return time.Time{}, err
	}

	expiry := jwt.ExpiryFromToken(token, svc.now())
	if err := svc.store.SaveToken(ctx, token, expiry); err != nil {
		logger.Log.Errorw("failed to persist session", "error", err)
		return time.Time{}, err
	}

	return expiry, nil
}

// GetValidToken returns the stored token while the session is unexpired.
// An expired session is cleared. Storage read errors degrade to no-session.
func (svc *AuthService) GetValidToken(ctx context.Context) (string, bool) {
	token, expiry, err := svc.store.GetToken(ctx)
	if err != nil {
		logger.Log.Errorw("failed to read session", "error", err)
		return "", false
	}
	if token == "" {
		return "", false
	}

	if !svc.now().Before(expiry) {
		logger.Log.Infow("session expired, clearing")
		if err := svc.store.ClearAuth(ctx); err != nil {
			logger.Log.Errorw("failed to clear expired session", "error", err)
		}
		return "", false
	}

	return token, true
}

// ReLogin clears the current session and logs in again with the stored device
// key, returning the fresh token.
func (svc *AuthService) ReLogin(ctx context.Context) (string, error) {
	if err := svc.store.ClearAuth(ctx); err != nil {
		logger.Log.Errorw("failed to clear session before re-login", "error", err)
	}

	deviceKey, err := svc.store.GetDeviceKey(ctx)
	if err != nil {
		logger.Log.Errorw("failed to read device key", "error", err)
		return "", err
	}
	if strings.TrimSpace(deviceKey) == "" {
		return "", ErrNoDeviceKey
	}

	if _, err := svc.Login(ctx, deviceKey); err != nil {
		return "", err
	}

	token, ok := svc.GetValidToken(ctx)
	if !ok {
		return "", ErrNoSession
	}
	return token, nil
}

// SessionExpiry reports the current session expiry, ok=false when there is no
// valid session.
func (svc *AuthService) SessionExpiry(ctx context.Context) (time.Time, bool) {
	token, expiry, err := svc.store.GetToken(ctx)
	if err != nil || token == "" || !svc.now().Before(expiry) {
		return time.Time{}, false
	}
	return expiry, true
}

// Logout destroys the stored session.
func (svc *AuthService) Logout(ctx context.Context) error {
	return svc.store.ClearAuth(ctx)
}
