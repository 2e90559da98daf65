package model

import "fmt"

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation       ErrorCode = "VALIDATION_ERROR"
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrInternal         ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the schedopt API. Only the
// HTTP boundary produces these; the solver itself never fails a request.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a VALIDATION_ERROR APIError.
func NewValidationError(msg string) *APIError {
	return &APIError{Code: ErrValidation, Message: msg}
}

// NewNotFoundError creates a NOT_FOUND APIError for an unknown route.
func NewNotFoundError(path string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("no such route: %s", path),
	}
}
