package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// DefaultTimeout bounds every ledger API call.
const DefaultTimeout = 8 * time.Second

// ErrorClass distinguishes connectivity failures from server rejections.
type ErrorClass string

const (
	ClassNetwork ErrorClass = "network" // transport, timeout, DNS
	ClassServer  ErrorClass = "server"  // the server rejected a well-formed request
)

// ErrUnauthorized signals the ledger rejected the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// SendError is a classified delivery failure.
type SendError struct {
	Class   ErrorClass
	Message string
}

func (e *SendError) Error() string { return e.Message }

// AuthError is a login rejection carrying a user-facing message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// friendlyMessages maps known raw server errors to user-facing text.
var friendlyMessages = map[string]string{
	"string should have at least 10 characters": "Device key must be at least 10 characters",
	"invalid device key":                        "Invalid device key. Please check and try again.",
	"device not found":                          "Device not found. Contact your administrator.",
	"unauthorized":                              "Authentication failed. Check your device key.",
}

// LedgerAPIFacade is the HTTP client for the remote ledger API.
type LedgerAPIFacade struct {
	baseURL string
	client  *http.Client
}

// NewLedgerAPIFacade creates a facade for the given base URL. A non-positive
// timeout falls back to DefaultTimeout.
func NewLedgerAPIFacade(baseURL string, timeout time.Duration) *LedgerAPIFacade {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LedgerAPIFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Login exchanges a device key for a bearer token.
func (f *LedgerAPIFacade) Login(ctx context.Context, deviceKey string) (string, error) {
	body, err := json.Marshal(map[string]string{"device_key": deviceKey})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("login request failed", "error", err)
		if IsNetworkError(err) {
			return "", &AuthError{Message: "Network error. Check your connection."}
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := friendlyMessage(extractErrorMessage(resp))
		logger.Log.Errorw("login rejected", "status", resp.StatusCode, "message", msg)
		return "", &AuthError{Message: msg}
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", &AuthError{Message: "Invalid server response"}
	}
	if auth.AccessToken == "" {
		return "", &AuthError{Message: "No token received"}
	}

	return auth.AccessToken, nil
}

// Send posts one transaction under the given bearer token. A 409 means the
// ledger already holds this transaction and counts as success. A 401 returns
// ErrUnauthorized so the caller can re-authenticate; every other failure is
// returned as a classified SendError.
func (f *LedgerAPIFacade) Send(ctx context.Context, tx models.Transaction, token string) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return &SendError{Class: ClassServer, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/v1/sms", bytes.NewReader(payload))
	if err != nil {
		return &SendError{Class: ClassServer, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("send request failed", "trx_id", tx.TrxID, "error", err)
		if IsNetworkError(err) {
			return &SendError{Class: ClassNetwork, Message: "Network error"}
		}
		return &SendError{Class: ClassServer, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// the ledger already has this transaction
		logger.Log.Infow("duplicate acknowledged by server", "trx_id", tx.TrxID)
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = fmt.Sprintf("Server error (%d)", resp.StatusCode)
	}
	return &SendError{Class: ClassServer, Message: msg}
}

// extractErrorMessage pulls a human-readable message out of a structured API
// error body: a detail string, the first detail[].msg, a message field, or the
// raw body when it is short plain text.
func extractErrorMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("Server error (%d)", resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return fallback
	}

	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 100 {
			return text
		}
		return fallback
	}

	switch detail := body.Detail.(type) {
	case string:
		if detail != "" {
			return detail
		}
	case []any:
		if len(detail) > 0 {
			if first, ok := detail[0].(map[string]any); ok {
				if msg, ok := first["msg"].(string); ok && msg != "" {
					return msg
				}
			}
		}
	}

	if body.Message != "" {
		return body.Message
	}
	return fallback
}

func friendlyMessage(raw string) string {
	lower := strings.ToLower(raw)
	for key, friendly := range friendlyMessages {
		if strings.Contains(lower, key) {
			return friendly
		}
	}
	return raw
}

var networkErrorMarkers = []string{
	"network",
	"timeout",
	"timed out",
	"abort",
	"connection",
	"refused",
	"no such host",
	"dns",
	"context deadline exceeded",
}

// IsNetworkError reports whether err is a connectivity failure rather than a
// server-side rejection. Network-class failures are routed to the offline
// queue instead of being surfaced as terminal.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return sendErr.Class == ClassNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range networkErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
