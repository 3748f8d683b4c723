package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SessionStatuser defines the session inspection methods needed by this handler.
type SessionStatuser interface {
	SessionExpiry(ctx context.Context) (time.Time, bool)
}

// QueueCounter defines the queue inspection methods needed by this handler.
type QueueCounter interface {
	PendingCount(ctx context.Context) int
}

// StatusResponse represents the relay status
// swagger:model StatusResponse
type StatusResponse struct {
	// Whether a valid session is held
	// default: true
	LoggedIn bool `json:"logged_in"`

	// Session expiry, RFC 3339; empty when not logged in
	// default: 2026-01-01T00:00:00Z
	TokenExpiry string `json:"token_expiry,omitempty"`

	// Transactions waiting in the offline queue
	// default: 0
	PendingQueue int `json:"pending_queue"`
}

// NewStatusHandler returns an HTTP handler reporting session and queue state.
// @Summary Relay status
// @Description Reports session validity, token expiry and pending queue size
// @Tags status
// @Produce json
// @Success 200 {object} handlers.StatusResponse "Relay status"
// @Router /status [get]
func NewStatusHandler(auth SessionStatuser, queue QueueCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp := StatusResponse{
			PendingQueue: queue.PendingCount(ctx),
		}
		if expiry, ok := auth.SessionExpiry(ctx); ok {
			resp.LoggedIn = true
			resp.TokenExpiry = expiry.UTC().Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
