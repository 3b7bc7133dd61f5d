package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation on an identifier the store does not hold.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicate marks an add for an identifier that is already present.
	ErrDuplicate = errors.New("product already exists")
)

// ValidationError carries the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports the missing identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateError reports an identifier that is already taken.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("product %q already exists", e.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }
