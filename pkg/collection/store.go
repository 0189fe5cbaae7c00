package collection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/daybook/pkg/store"
)

// Store owns the authoritative list of one record type.
//
// Mutations run one at a time. Each computes the new list, replaces the
// in-memory list and then writes the current list through to storage, so the
// last write for the key always carries the newest state.
type Store[T any] struct {
	mu      sync.Mutex
	schema  Schema[T]
	storage store.Storage
	items   []T
	newID   func() string
	warn    func(error)
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithSeed sets the list used until a stored list is loaded.
func WithSeed[T any](items []T) Option[T] {
	return func(s *Store[T]) {
		s.items = append([]T{}, items...)
	}
}

// WithIDGenerator replaces the UUID based identifier generator.
func WithIDGenerator[T any](fn func() string) Option[T] {
	return func(s *Store[T]) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithWarn receives read and write failures. The default logs them.
func WithWarn[T any](fn func(error)) Option[T] {
	return func(s *Store[T]) {
		if fn != nil {
			s.warn = fn
		}
	}
}

// New creates a store for schema backed by storage. It panics on an
// incomplete schema.
func New[T any](storage store.Storage, schema Schema[T], opts ...Option[T]) *Store[T] {
	if err := schema.check(); err != nil {
		panic(err)
	}
	s := &Store[T]{
		schema:  schema,
		storage: storage,
		items:   []T{},
		newID:   func() string { return uuid.NewString() },
		warn: func(err error) {
			log.Printf("warning: %v", err)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key of the collection.
func (s *Store[T]) Key() string {
	return s.schema.Key
}

// Load replaces the in-memory list with the stored one. A missing key keeps
// the current list; an unreadable or malformed blob keeps it too and is
// returned as a *ReadError.
func (s *Store[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, s.schema.Key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return s.readFailed(err)
	}
	items, err := UnmarshalList[T](data)
	if err != nil {
		return s.readFailed(err)
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := s.schema.ID(item)
		if id == "" {
			return s.readFailed(errors.New("record without id"))
		}
		if _, dup := seen[id]; dup {
			return s.readFailed(fmt.Errorf("duplicate id %q", id))
		}
		seen[id] = struct{}{}
	}
	s.items = items
	return nil
}

// List returns a copy of the current list.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T{}, s.items...)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the record with id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Add stores rec, assigning a fresh identifier when it has none, and returns
// the stored record. A *WriteError means the record was added in memory only.
func (s *Store[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := s.validate(rec); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.schema.ID(rec)
	switch {
	case id == "":
		fresh, err := s.uniqueID()
		if err != nil {
			return zero, err
		}
		rec = s.schema.WithID(rec, fresh)
	case s.indexOf(id) >= 0:
		return zero, invalid(fmt.Errorf("duplicate id %q", id))
	}

	next := make([]T, 0, len(s.items)+1)
	if s.schema.Placement == Prepend {
		next = append(next, rec)
		next = append(next, s.items...)
	} else {
		next = append(next, s.items...)
		next = append(next, rec)
	}
	s.items = next
	return rec, s.save(ctx)
}

// Update replaces the record with id by patch applied to it. An unknown id is
// a no-op reported by ok=false. The identifier itself cannot be patched.
func (s *Store[T]) Update(ctx context.Context, id string, patch func(T) T) (rec T, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return rec, false, nil
	}
	updated := s.schema.WithID(patch(s.items[i]), id)
	if err := s.validate(updated); err != nil {
		return rec, false, err
	}

	next := append([]T{}, s.items...)
	next[i] = updated
	s.items = next
	return updated, true, s.save(ctx)
}

// Remove deletes the record with id. An unknown id is a no-op and does not
// touch storage.
func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
	return true, s.save(ctx)
}

// Save writes the current list through. Mutations call it implicitly.
func (s *Store[T]) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// save must be called with mu held.
func (s *Store[T]) save(ctx context.Context) error {
	data, err := MarshalList(s.items)
	if err == nil {
		err = s.storage.Set(ctx, s.schema.Key, data)
	}
	if err != nil {
		werr := &WriteError{Key: s.schema.Key, Err: err}
		s.warn(werr)
		return werr
	}
	return nil
}

func (s *Store[T]) readFailed(err error) error {
	rerr := &ReadError{Key: s.schema.Key, Err: err}
	s.warn(rerr)
	return rerr
}

func (s *Store[T]) validate(rec T) error {
	if s.schema.Validate == nil {
		return nil
	}
	if err := s.schema.Validate(rec); err != nil {
		return invalid(err)
	}
	return nil
}

func (s *Store[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range s.items {
		if s.schema.ID(item) == id {
			return i
		}
	}
	return -1
}

const maxIDAttempts = 16

// uniqueID must be called with mu held.
func (s *Store[T]) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("collection: no unique id after %d attempts", maxIDAttempts)
}
