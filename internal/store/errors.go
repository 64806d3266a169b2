package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates a lifecycle transition was attempted
	// on an entity in the wrong state, e.g. completing a plan twice.
	ErrInvalidState = errors.New("invalid state")
)

// ValidationError reports rejected input. No state is mutated when one
// is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
