package model

import "testing"

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrValidation, Message: "invalid JSON body"}
	want := "VALIDATION_ERROR: invalid JSON body"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("/nope")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "no such route: /nope" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("tasks must be a list")
	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
	if err.Message != "tasks must be a list" {
		t.Errorf("Message = %q", err.Message)
	}
}
