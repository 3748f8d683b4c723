package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/services"
)

// DeviceLoginer defines the interface that the auth service must implement.
type DeviceLoginer interface {
	Login(ctx context.Context, deviceKey string) (time.Time, error)
}

// DeviceLoginRequest represents the JSON body for device login
// swagger:model DeviceLoginRequest
type DeviceLoginRequest struct {
	// Device key issued by the ledger
	// required: true
	// default: DEVICE_KEY
	DeviceKey string `json:"device_key"`
}

// DeviceLoginResponse represents a successful login response
// swagger:model DeviceLoginResponse
type DeviceLoginResponse struct {
	// Session expiry, RFC 3339
	// default: 2026-01-01T00:00:00Z
	Expiry string `json:"expiry"`
}

// DeviceLoginErrorResponse represents an error response for device login
// swagger:model DeviceLoginErrorResponse
type DeviceLoginErrorResponse struct {
	// Error message
	// default: Invalid Device Key
	Error string `json:"error"`
}

// NewLoginHandler returns an HTTP handler for device login.
// @Summary Device login
// @Description Authenticate the device against the ledger and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param deviceLoginRequest body handlers.DeviceLoginRequest true "Login Request"
// @Success 200 {object} handlers.DeviceLoginResponse "Session started"
// @Failure 400 {object} handlers.DeviceLoginErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.DeviceLoginErrorResponse "Login rejected"
// @Router /login [post]
func NewLoginHandler(svc DeviceLoginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeviceLoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeviceLoginErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		expiry, err := svc.Login(r.Context(), req.DeviceKey)
		if err != nil {
			var authErr *facades.AuthError
			switch {
			case errors.Is(err, services.ErrEmptyDeviceKey):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(DeviceLoginErrorResponse{
					Error: "device key is required",
				})
			case errors.As(err, &authErr):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(DeviceLoginErrorResponse{
					Error: authErr.Message,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeviceLoginErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeviceLoginResponse{
			Expiry: expiry.UTC().Format(time.RFC3339),
		})
	}
}
