// Package store provides the key/value storage adapters that back every
// daybook collection. A Storage holds one serialized blob per key.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("store: not found")

// Storage is the sole gateway to durable storage.
type Storage interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, data []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists the stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Driver names a Storage implementation.
type Driver string

const (
	// DriverDiskv keeps one file per key under the base path.
	DriverDiskv Driver = "diskv"
	// DriverSQLite keeps all keys in a single sqlite database file.
	DriverSQLite Driver = "sqlite"
	// DriverMemory keeps everything in process memory.
	DriverMemory Driver = "memory"
)

// Drivers returns the supported drivers.
func Drivers() []Driver {
	return []Driver{DriverDiskv, DriverSQLite, DriverMemory}
}

// ParseDriver converts raw into a Driver. Empty selects diskv.
func ParseDriver(raw string) (Driver, error) {
	d := Driver(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DriverDiskv, nil
	}
	for _, candidate := range Drivers() {
		if candidate == d {
			return candidate, nil
		}
	}
	return DriverDiskv, fmt.Errorf("store: unknown driver %q", raw)
}

// Config selects and locates a Storage.
type Config interface {
	Driver() string
	BasePath() string
}

// Open creates the Storage described by cfg.
func Open(cfg Config) (Storage, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	driver, err := ParseDriver(cfg.Driver())
	if err != nil {
		return nil, err
	}
	if driver == DriverMemory {
		return NewMemory(), nil
	}
	path, err := homedir.Expand(cfg.BasePath())
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if path == "" {
		return nil, errors.New("store: base path required")
	}
	switch driver {
	case DriverSQLite:
		return NewSQLite(path)
	default:
		return NewDiskv(path)
	}
}

func checkKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("store: key required")
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("store: key %q must not contain path separators", key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("store: key %q must not start with a dot", key)
	}
	return nil
}
