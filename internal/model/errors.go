package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("program not found")

	// ErrNoActiveProgram is returned when Programs.Active is empty
	ErrNoActiveProgram = errors.New("no active program")
)

// ValidationError reports a missing or malformed field.
// Index is the position inside Programs.Programs, or -1 for a standalone value.
type ValidationError struct {
	Field  string
	Reason string
	Index  int
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("programs[%d].%s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a program name that is not in the collection
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("program %q not found", e.Name)
}

// Is makes errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Index: -1}
}

// atIndex stamps the program position onto a validation error
func atIndex(err error, index int) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		cp := *ve
		cp.Index = index
		return &cp
	}
	return err
}
