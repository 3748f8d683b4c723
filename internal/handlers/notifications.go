package handlers

import (
	"encoding/json"
	"net/http"
)

// NotificationIngester defines the interface that the ingestion pipeline must
// implement.
type NotificationIngester interface {
	HandleIncoming(sender, message string)
}

// NotificationRequest represents the JSON body for an incoming payment notification
// swagger:model NotificationRequest
type NotificationRequest struct {
	// Originating sender id
	// required: true
	// default: bKash
	Sender string `json:"sender"`

	// Raw notification text
	// required: true
	// default: You have received Tk 500.00 from 01712345678. TrxID ABCD1234
	Message string `json:"message"`
}

// NotificationAcceptedResponse represents an accepted notification
// swagger:model NotificationAcceptedResponse
type NotificationAcceptedResponse struct {
	// Processing status
	// default: accepted
	Status string `json:"status"`
}

// NotificationErrorResponse represents an error response for notification ingest
// swagger:model NotificationErrorResponse
type NotificationErrorResponse struct {
	// Error message
	// default: invalid request body
	Error string `json:"error"`
}

// NewNotificationHandler returns an HTTP handler for ingesting payment notifications.
// @Summary Ingest a payment notification
// @Description Accepts a raw provider notification for asynchronous processing
// @Tags notifications
// @Accept json
// @Produce json
// @Param notificationRequest body handlers.NotificationRequest true "Notification"
// @Success 202 {object} handlers.NotificationAcceptedResponse "Notification accepted"
// @Failure 400 {object} handlers.NotificationErrorResponse "Invalid request body"
// @Router /notifications [post]
func NewNotificationHandler(pipeline NotificationIngester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NotificationRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(NotificationErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if req.Sender == "" || req.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(NotificationErrorResponse{
				Error: "sender and message are required",
			})
			return
		}

		pipeline.HandleIncoming(req.Sender, req.Message)

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(NotificationAcceptedResponse{
			Status: "accepted",
		})
	}
}
