package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// QueueFlusher defines the interface that the offline queue service must
// implement.
type QueueFlusher interface {
	Flush(ctx context.Context)
}

// FlushResponse represents an accepted flush request
// swagger:model FlushResponse
type FlushResponse struct {
	// Processing status
	// default: flush started
	Status string `json:"status"`
}

// NewFlushHandler returns an HTTP handler triggering an offline queue flush.
// @Summary Flush the offline queue
// @Description Starts an asynchronous re-delivery pass over queued transactions
// @Tags queue
// @Produce json
// @Success 202 {object} handlers.FlushResponse "Flush started"
// @Router /queue/flush [post]
func NewFlushHandler(queue QueueFlusher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// detach from the request so the flush survives the response
		go queue.Flush(context.WithoutCancel(r.Context()))

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(FlushResponse{
			Status: "flush started",
		})
	}
}
