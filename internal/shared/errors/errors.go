// Package errors provides application-level error types and utilities.
// Every failure surfaced to a caller is an AppError whose Type selects the
// HTTP status code; anything else is treated as an internal error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeBadRequest          ErrorType = "bad_request"
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeMethodNotAllowed    ErrorType = "method_not_allowed"
	ErrorTypeUpstreamRejection   ErrorType = "upstream_rejection"
	ErrorTypeUpstreamUnreachable ErrorType = "upstream_unreachable"
	ErrorTypeInternal            ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	// UpstreamStatus and UpstreamBody echo what a downstream service
	// answered. Only set for ErrorTypeUpstreamRejection.
	UpstreamStatus int `json:"-"`
	UpstreamBody   any `json:"-"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error so it stays reachable through errors.Is/As.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error, used for missing input
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewBadRequestError creates a new bad request error, used for malformed values
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewMethodNotAllowedError creates a new method not allowed error
func NewMethodNotAllowedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed, message, details)
}

// NewUpstreamRejectionError reports a downstream service that answered with a
// non-2xx status. The status and body are kept so they can be echoed back.
func NewUpstreamRejectionError(message string, status int, body any) *AppError {
	e := newAppError(ErrorTypeUpstreamRejection, http.StatusBadGateway, message, nil)
	e.UpstreamStatus = status
	e.UpstreamBody = body
	return e
}

// NewUpstreamUnreachableError reports a transport failure (timeout, DNS,
// refused connection) talking to a downstream service.
func NewUpstreamUnreachableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUpstreamUnreachable, http.StatusBadGateway, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for anything
// that is not an AppError.
func TypeOf(err error) ErrorType {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsValidationError checks if the error is a validation or bad request error
func IsValidationError(err error) bool {
	t := TypeOf(err)
	return err != nil && (t == ErrorTypeValidation || t == ErrorTypeBadRequest)
}

// IsUpstreamError checks if the error came from a downstream service
func IsUpstreamError(err error) bool {
	t := TypeOf(err)
	return err != nil && (t == ErrorTypeUpstreamRejection || t == ErrorTypeUpstreamUnreachable)
}
