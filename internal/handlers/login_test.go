package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockDeviceLoginer(ctrl)

	expiry := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name: "success",
			inputBody: DeviceLoginRequest{
				DeviceKey: "device-1",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "device-1").
					Return(expiry, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &DeviceLoginResponse{
				Expiry: "2026-09-01T12:00:00Z",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &DeviceLoginErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name: "empty device key",
			inputBody: DeviceLoginRequest{
				DeviceKey: "",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "").
					Return(time.Time{}, services.ErrEmptyDeviceKey)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &DeviceLoginErrorResponse{
				Error: "device key is required",
			},
		},
		{
			name: "rejected by ledger",
			inputBody: DeviceLoginRequest{
				DeviceKey: "bad-key",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "bad-key").
					Return(time.Time{}, &facades.AuthError{Message: "Invalid Device Key"})
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &DeviceLoginErrorResponse{
				Error: "Invalid Device Key",
			},
		},
		{
			name: "internal error",
			inputBody: DeviceLoginRequest{
				DeviceKey: "device-1",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "device-1").
					Return(time.Time{}, errors.New("disk full"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &DeviceLoginErrorResponse{
				Error: "Internal server error",
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

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewLoginHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var respBody interface{}
			switch tt.expectedCode {
			case http.StatusOK:
				respBody = &DeviceLoginResponse{}
			default:
				respBody = &DeviceLoginErrorResponse{}
			}
			err := json.Unmarshal(w.Body.Bytes(), respBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, respBody)
		})
	}
}
