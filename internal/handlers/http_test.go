package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/handlers"
	"github.com/abrezinsky/judgedesk/internal/services"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		message      string
		expectedCode string
	}{
		{"Request body is empty", handlers.ErrCodeBadRequest},
		{"Invalid id parameter", handlers.ErrCodeValidation},
		{"judge_id must be a positive integer", handlers.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := handlers.BadRequest(tt.message)
			if err.Status != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", err.Status)
			}
			if err.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, err.Code)
			}
		})
	}
}

func TestInternalError(t *testing.T) {
	err := handlers.InternalError()

	if err.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.Status)
	}
	// Internal errors should not expose the original message
	if err.Message != "Internal server error" {
		t.Errorf("expected generic message, got %q", err.Message)
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            *handlers.APIError
		expectedStatus int
	}{
		{"ErrInternalServer", handlers.ErrInternalServer, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, tt.err.Status)
			}
		})
	}
}

func TestToAPIError_DirectTests(t *testing.T) {
	tests := []struct {
		name           string
		inputErr       error
		expectedStatus int
		expectedMsg    string
		expectedCode   string
	}{
		{
			name:           "NotFoundError",
			inputErr:       errors.NotFound("participant not found"),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "participant not found",
			expectedCode:   handlers.ErrCodeNotFound,
		},
		{
			name:           "ValidationError",
			inputErr:       errors.Validation("invalid rubric"),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid rubric",
			expectedCode:   handlers.ErrCodeValidation,
		},
		{
			name:           "ConflictError",
			inputErr:       errors.Conflict("registrant filter changed while loading"),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "registrant filter changed while loading",
			expectedCode:   handlers.ErrCodeConflict,
		},
		{
			name:           "UnavailableError",
			inputErr:       fmt.Errorf("wrapped: %w", errors.Unavailable("failed to connect to event API", nil)),
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "failed to connect to event API",
			expectedCode:   handlers.ErrCodeUnavailable,
		},
		{
			name:           "InternalError_DefaultCase",
			inputErr:       errors.Internal(fmt.Errorf("boom")),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
			expectedCode:   handlers.ErrCodeInternalServer,
		},
		{
			name:           "ServiceError",
			inputErr:       services.ErrInvalidPaymentStatus,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    services.ErrInvalidPaymentStatus.Message,
			expectedCode:   handlers.ErrCodeValidation,
		},
		{
			name:           "ServiceError_NotConfigured",
			inputErr:       services.ErrBaseURLNotSet,
			expectedStatus: http.StatusConflict,
			expectedMsg:    services.ErrBaseURLNotSet.Message,
			expectedCode:   handlers.ErrCodeNotConfigured,
		},
		{
			name:           "InvalidSettingError",
			inputErr:       &services.InvalidSettingError{Key: "api_url", Reason: "must be an absolute URL"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid setting api_url: must be an absolute URL",
			expectedCode:   handlers.ErrCodeValidation,
		},
		{
			name:           "GenericError",
			inputErr:       fmt.Errorf("generic error"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
			expectedCode:   handlers.ErrCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tt.inputErr)
			if apiErr.Status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, apiErr.Status)
			}
			if apiErr.Message != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, apiErr.Message)
			}
			if apiErr.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, apiErr.Code)
			}
		})
	}
}
