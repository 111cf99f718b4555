package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("Missing required fields: amount"), ErrorTypeValidation, http.StatusBadRequest},
		{"bad request", NewBadRequestError("Invalid amount"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("Unauthorized: Invalid token."), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"not found", NewNotFoundError("Endpoint not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"method", NewMethodNotAllowedError("Method Not Allowed"), ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rejection", NewUpstreamRejectionError("Failed to notify CRM", 500, "boom"), ErrorTypeUpstreamRejection, http.StatusBadGateway},
		{"unreachable", NewUpstreamUnreachableError("Failed to notify CRM - network error"), ErrorTypeUpstreamUnreachable, http.StatusBadGateway},
		{"internal", NewInternalError("Internal Server Error."), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "bad_request: Invalid amount", NewBadRequestError("Invalid amount").Error())
	assert.Equal(t, "upstream_unreachable: down (dial tcp: refused)",
		NewUpstreamUnreachableError("down", "dial tcp: refused").Error())
}

func TestUpstreamRejection_KeepsStatusAndBody(t *testing.T) {
	body := map[string]any{"message": "nope"}
	err := NewUpstreamRejectionError("Failed to notify CRM", http.StatusConflict, body)

	assert.Equal(t, http.StatusConflict, err.UpstreamStatus)
	assert.Equal(t, body, err.UpstreamBody)
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := NewUpstreamUnreachableError("psp unreachable").WithCause(cause)
	wrapped := fmt.Errorf("create session: %w", appErr)

	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Same(t, appErr, got)
	assert.NotNil(t, GetAppError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsUpstreamError(wrapped))
	assert.False(t, IsValidationError(wrapped))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorTypeBadRequest, TypeOf(NewBadRequestError("x")))
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsUpstreamError(nil))
	assert.True(t, IsValidationError(NewValidationError("x")))
}
