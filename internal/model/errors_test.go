package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		err      *ValidationError
		expected string
	}{
		{&ValidationError{Field: "name", Reason: "is required", Index: -1}, "name: is required"},
		{&ValidationError{Field: "duration", Reason: "must not be negative", Index: 3}, "programs[3].duration: must not be negative"},
	}

	for _, test := range tests {
		if got := test.err.Error(); got != test.expected {
			t.Errorf("Error() = %q, expected %q", got, test.expected)
		}
	}
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", &NotFoundError{Name: "Clock"})
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped NotFoundError should match ErrNotFound")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Error("NotFoundError should not match ErrValidation")
	}
	if got := (&NotFoundError{Name: "Clock"}).Error(); got != `program "Clock" not found` {
		t.Errorf("Error() = %q", got)
	}
}
