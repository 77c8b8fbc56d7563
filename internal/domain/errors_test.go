package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("text", "required")

	if got := err.Error(); got != "validation: text: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFieldsListedInOrder(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "message", Message: "required"},
		{Field: "notify_via", Message: "must be one of email, push, both"},
	})

	want := "validation: message: required; notify_via: must be one of email, push, both"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_EmptyFallsBackToSentinelText(t *testing.T) {
	t.Parallel()

	err := &ValidationError{}
	if got := err.Error(); got != ErrValidation.Error() {
		t.Fatalf("Error() = %q, want %q", got, ErrValidation.Error())
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("update todo: %w", NewValidationError("title", "required"))

	if !errors.Is(wrapped, ErrValidation) {
		t.Fatal("wrapped error should still match ErrValidation")
	}
	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatalf("errors.As failed for %v", wrapped)
	}
	if ve.Errors[0].Field != "title" {
		t.Fatalf("field = %q, want title", ve.Errors[0].Field)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
