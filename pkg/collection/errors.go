package collection

import (
	"errors"
	"fmt"
)

// ErrValidation marks a record rejected before any mutation took place.
var ErrValidation = errors.New("collection: invalid record")

// ReadError reports a stored collection that could not be read or decoded.
// The store keeps its current (possibly seeded) list when this happens.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("collection: load %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a mutation that was applied in memory but could not be
// written through. The next successful save reconciles storage.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("collection: save %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWarning reports whether err only signals a storage problem that left the
// in-memory state usable. A joined error is a warning only when every error
// in it is one.
func IsWarning(err error) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *WriteError, *ReadError:
		return true
	case interface{ Unwrap() []error }:
		errs := e.Unwrap()
		if len(errs) == 0 {
			return false
		}
		for _, inner := range errs {
			if !IsWarning(inner) {
				return false
			}
		}
		return true
	case interface{ Unwrap() error }:
		return IsWarning(e.Unwrap())
	}
	return false
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
