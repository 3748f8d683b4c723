package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// defaultLogsLimit is used when the limit query parameter is absent or invalid.
const defaultLogsLimit = 50

// LogReader defines the interface that the log store must implement.
type LogReader interface {
	Recent(ctx context.Context, n int) ([]models.LogEntry, error)
}

// LogsResponse represents the recent transaction log entries
// swagger:model LogsResponse
type LogsResponse struct {
	// Log entries, newest first
	Logs []models.LogEntry `json:"logs"`
}

// LogsErrorResponse represents an error response for log retrieval
// swagger:model LogsErrorResponse
type LogsErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewGetLogsHandler returns an HTTP handler for reading recent transaction logs.
// @Summary Recent transaction logs
// @Description Returns the most recent delivery log entries, newest first
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum entries to return" default(50)
// @Success 200 {object} handlers.LogsResponse "Recent log entries"
// @Failure 500 {object} handlers.LogsErrorResponse "Internal server error"
// @Router /logs [get]
func NewGetLogsHandler(store LogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLogsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		entries, err := store.Recent(r.Context(), limit)
		if err != nil {
			logger.Log.Errorw("failed to read transaction logs", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LogsErrorResponse{
				Error: "Internal server error",
			})
			return
		}
		if entries == nil {
			entries = []models.LogEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogsResponse{
			Logs: entries,
		})
	}
}
