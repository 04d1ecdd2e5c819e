// Package kv provides the string key-value capability reminders are persisted
// on, with interchangeable memory, JSON file and SQLite backends.
package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded is returned when a write would grow the store past its quota.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("kv: store closed")
)

// Store is an asynchronous-safe string key-value store.
type Store interface {
	// GetItem returns the value stored at key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the JSON file or SQLite database location.
	Path string
	// QuotaBytes caps the memory backend; zero means unlimited.
	QuotaBytes int
}

// New opens the backend named by opts.Backend.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		var mopts []MemoryOption
		if opts.QuotaBytes > 0 {
			mopts = append(mopts, WithQuota(opts.QuotaBytes))
		}
		return NewMemoryStore(mopts...), nil
	case BackendFile:
		s, err := NewFileStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q (supported: memory, file, sqlite)", opts.Backend)
	}
}
