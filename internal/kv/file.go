package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps every item in one JSON object on disk. Each write rewrites
// the file atomically, so a crash leaves either the old or the new contents.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	items  map[string]string
	closed bool
}

// NewFileStore loads the store at path. A missing or empty file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("kv: file backend requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kv: failed to create data directory: %w", err)
	}

	s := &FileStore{path: path, items: make(map[string]string)}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("kv: failed to load %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem persists before updating memory, so a failed write leaves the
// visible contents untouched.
func (s *FileStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := s.cloneItems()
	next[key] = value
	if err := atomicWriteFileJSON(s.path, next); err != nil {
		return fmt.Errorf("kv: failed to write %s: %w", s.path, err)
	}
	s.items = next
	return nil
}

func (s *FileStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.items[key]; !ok {
		return nil
	}

	next := s.cloneItems()
	delete(next, key)
	if err := atomicWriteFileJSON(s.path, next); err != nil {
		return fmt.Errorf("kv: failed to write %s: %w", s.path, err)
	}
	s.items = next
	return nil
}

func (s *FileStore) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) cloneItems() map[string]string {
	next := make(map[string]string, len(s.items)+1)
	for k, v := range s.items {
		next[k] = v
	}
	return next
}

var _ Store = (*FileStore)(nil)
