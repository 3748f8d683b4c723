package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// Logouter defines the interface that the auth service must implement.
type Logouter interface {
	Logout(ctx context.Context) error
}

// LogoutErrorResponse represents an error response for logout
// swagger:model LogoutErrorResponse
type LogoutErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewLogoutHandler returns an HTTP handler for ending the device session.
// @Summary Device logout
// @Description Destroys the stored session token
// @Tags auth
// @Produce json
// @Success 204 "Session destroyed"
// @Failure 500 {object} handlers.LogoutErrorResponse "Internal server error"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			logger.Log.Errorw("logout failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LogoutErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
