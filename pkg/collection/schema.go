// Package collection keeps an in-memory list of records consistent with a
// key in durable storage. Every mutation is written through before it
// returns.
package collection

import "errors"

// Placement decides where Add inserts new records.
type Placement int

const (
	// Prepend keeps the newest record first.
	Prepend Placement = iota
	// Append keeps records in creation order.
	Append
)

// Schema describes one record type to a Store.
type Schema[T any] struct {
	// Key is the storage key holding the serialized list.
	Key string
	// ID returns the identifier of a record.
	ID func(T) string
	// WithID returns a copy of the record carrying id.
	WithID func(T, string) T
	// Validate rejects records that must never be stored. Optional.
	Validate  func(T) error
	Placement Placement
}

func (s Schema[T]) check() error {
	switch {
	case s.Key == "":
		return errors.New("collection: schema key required")
	case s.ID == nil || s.WithID == nil:
		return errors.New("collection: schema id accessors required")
	}
	return nil
}
