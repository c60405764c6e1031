package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is a machine-readable error kind
type ErrorCode string

const (
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInvalidState    ErrorCode = "INVALID_STATE"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodeInternal        ErrorCode = "INTERNAL"
)

// ErrorResponse is the JSON error body: {"error": "...", "code": "..."}.
// Clients display Message directly.
type ErrorResponse struct {
	Status  int          `json:"-"`
	Message string       `json:"error"`
	Code    ErrorCode    `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.Status, e.Code, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *ErrorResponse) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusBadRequest,
		Message: message,
		Code:    ErrCodeInvalidInput,
	}
}

func NewValidationError(fields []FieldError) *ErrorResponse {
	message := "One or more fields failed validation"
	if len(fields) > 0 {
		message = fields[0].Message
		if len(fields) > 1 {
			message = fmt.Sprintf("%s (and %d more errors)", message, len(fields)-1)
		}
	}
	return &ErrorResponse{
		Status:  http.StatusBadRequest,
		Message: message,
		Code:    ErrCodeInvalidInput,
		Fields:  fields,
	}
}

func NewUnauthorizedError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusUnauthorized,
		Message: message,
		Code:    ErrCodeUnauthenticated,
	}
}

func NewForbiddenError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusForbidden,
		Message: message,
		Code:    ErrCodeForbidden,
	}
}

func NewNotFoundError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusNotFound,
		Message: message,
		Code:    ErrCodeNotFound,
	}
}

func NewConflictError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusConflict,
		Message: message,
		Code:    ErrCodeConflict,
	}
}

// NewInvalidStateError reports an operation the entity's current state does
// not allow. It shares the 400 status with invalid input.
func NewInvalidStateError(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusBadRequest,
		Message: message,
		Code:    ErrCodeInvalidState,
	}
}

func NewInternalError(message string) *ErrorResponse {
	if message == "" {
		message = "Internal server error"
	}
	return &ErrorResponse{
		Status:  http.StatusInternalServerError,
		Message: message,
		Code:    ErrCodeInternal,
	}
}

func NewRateLimitError(retryAfter int) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
		Code:    ErrCodeRateLimited,
	}
}

func NewMethodNotAllowedError(allowed string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusMethodNotAllowed,
		Message: fmt.Sprintf("Only %s method is allowed", allowed),
		Code:    ErrCodeInvalidInput,
	}
}
