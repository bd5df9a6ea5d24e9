// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package authentication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestMiddlewareAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string

		expectedStatus int
	}{
		{
			name:           "Valid token",
			authHeader:     "Bearer shared-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong token",
			authHeader:     "Bearer wrong-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Raw token without Bearer prefix",
			authHeader:     "shared-token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Middleware.Authenticate").Times(1).Return(context.TODO(), trace.SpanFromContext(context.TODO()))

			m := NewMiddleware("shared-token", mockTracer, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			request := httptest.NewRequest(http.MethodGet, "/api/v1/query", nil)
			if test.authHeader != "" {
				request.Header.Set("Authorization", test.authHeader)
			}
			recorder := httptest.NewRecorder()

			m.Authenticate()(handler).ServeHTTP(recorder, request)

			if recorder.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, recorder.Code)
			}
		})
	}
}

func TestMiddlewareGetBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string

		expectedToken string
		expectedFound bool
	}{
		{
			name:       "No Authorization header",
			authHeader: "",
		},
		{
			name:          "Bearer token",
			authHeader:    "Bearer my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
		{
			name:       "Raw token without Bearer prefix",
			authHeader: "my-token-123",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMiddleware("shared-token", NewMockTracingInterface(ctrl), NewMockLoggerInterface(ctrl))

			headers := http.Header{}
			if test.authHeader != "" {
				headers.Set("Authorization", test.authHeader)
			}

			token, found := m.getBearerToken(headers)

			if token != test.expectedToken {
				t.Fatalf("expected token %q, got %q", test.expectedToken, token)
			}
			if found != test.expectedFound {
				t.Fatalf("expected found %v, got %v", test.expectedFound, found)
			}
		})
	}
}
