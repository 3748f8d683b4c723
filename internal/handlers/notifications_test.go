package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestNotificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockNotificationIngester(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name: "accepted",
			inputBody: NotificationRequest{
				Sender:  "bKash",
				Message: "You have received Tk 500.00 from 01712345678. TrxID ABCD1234",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					HandleIncoming("bKash", "You have received Tk 500.00 from 01712345678. TrxID ABCD1234")
			},
			expectedCode: http.StatusAccepted,
			expectedBody: &NotificationAcceptedResponse{
				Status: "accepted",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &NotificationErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name: "missing sender",
			inputBody: NotificationRequest{
				Message: "some message",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &NotificationErrorResponse{
				Error: "sender and message are required",
			},
		},
		{
			name: "missing message",
			inputBody: NotificationRequest{
				Sender: "bKash",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &NotificationErrorResponse{
				Error: "sender and message are required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/notifications", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewNotificationHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var respBody interface{}
			switch tt.expectedCode {
			case http.StatusAccepted:
				respBody = &NotificationAcceptedResponse{}
			default:
				respBody = &NotificationErrorResponse{}
			}
			err := json.Unmarshal(w.Body.Bytes(), respBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, respBody)
		})
	}
}
