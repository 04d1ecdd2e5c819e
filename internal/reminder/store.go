package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/notexe/lembretes/internal/kv"
	"github.com/notexe/lembretes/internal/logging"
)

// DefaultNamespace prefixes every key the store writes.
const DefaultNamespace = "@lembretes_pwa:"

// Key names under the namespace.
const (
	KeyReminders = "reminders"
	KeySettings  = "settings"
	KeyUserData  = "user_data"
)

// ErrNotFound is returned when no reminder has the requested id.
var ErrNotFound = errors.New("reminder not found")

// Store provides typed, namespaced storage for reminders and settings on top
// of a kv.Store.
//
// Reads fail soft: undecodable values are logged and treated as absent.
// Writes return the backend error to the caller.
//
// The reminder collection lives under a single key. Store serializes every
// read-modify-write of that key, so it must be the only writer of its
// namespace.
type Store struct {
	kv        kv.Store
	namespace string
	defaults  Settings
	loc       *time.Location
	logger    *zap.Logger

	mu sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) StoreOption {
	return func(s *Store) {
		s.namespace = ns
	}
}

// WithDefaultSettings overrides DefaultSettings as the base stored settings
// are merged over.
func WithDefaultSettings(defaults Settings) StoreOption {
	return func(s *Store) {
		s.defaults = defaults
	}
}

// WithLocation makes loaded reminders carry their times in loc instead of
// the fixed offsets they were serialized with, so calendar arithmetic on them
// follows loc's daylight saving rules.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		s.loc = loc
	}
}

// NewStore wraps backend. A nil logger disables logging.
func NewStore(backend kv.Store, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		kv:        backend,
		namespace: DefaultNamespace,
		defaults:  DefaultSettings(),
		logger:    logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) key(name string) string {
	return s.namespace + name
}

// Get decodes the value stored under name into v and reports whether it was
// found. Backend and decode failures are logged and reported as not found.
func (s *Store) Get(ctx context.Context, name string, v any) bool {
	raw, ok, err := s.kv.GetItem(ctx, s.key(name))
	if err != nil {
		s.logger.Warn("failed to load item from storage",
			zap.String("key", s.key(name)), zap.Error(err))
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("failed to decode stored item",
			zap.String("key", s.key(name)), zap.Error(err))
		return false
	}
	return true
}

// Set encodes v as JSON and stores it under name.
func (s *Store) Set(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.kv.SetItem(ctx, s.key(name), string(data)); err != nil {
		s.logger.Error("failed to save item to storage",
			zap.String("key", s.key(name)), zap.Error(err))
		return fmt.Errorf("failed to save %s to storage: %w", name, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.kv.RemoveItem(ctx, s.key(name)); err != nil {
		return fmt.Errorf("failed to remove %s from storage: %w", name, err)
	}
	return nil
}

// Clear removes every key under the namespace and nothing else.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.kv.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, s.namespace) {
			continue
		}
		if err := s.kv.RemoveItem(ctx, k); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
	}
	return nil
}

// ListReminders returns the stored collection in storage order. It never
// returns nil.
func (s *Store) ListReminders(ctx context.Context) []Reminder {
	var reminders []Reminder
	if !s.Get(ctx, KeyReminders, &reminders) || reminders == nil {
		return []Reminder{}
	}
	if s.loc != nil {
		for i := range reminders {
			reminders[i].localize(s.loc)
		}
	}
	return reminders
}

// SaveReminders replaces the whole collection.
func (s *Store) SaveReminders(ctx context.Context, reminders []Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveReminders(ctx, reminders)
}

func (s *Store) saveReminders(ctx context.Context, reminders []Reminder) error {
	if reminders == nil {
		reminders = []Reminder{}
	}
	return s.Set(ctx, KeyReminders, reminders)
}

// SaveReminder replaces the reminder with the same id, or appends it.
func (s *Store) SaveReminder(ctx context.Context, r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders := s.ListReminders(ctx)
	if i := indexOf(reminders, r.ID); i >= 0 {
		reminders[i] = r
	} else {
		reminders = append(reminders, r)
	}
	return s.saveReminders(ctx, reminders)
}

// DeleteReminder removes the reminder with id. An unknown id is a no-op.
func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders := s.ListReminders(ctx)
	kept := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reminders) {
		return nil
	}
	return s.saveReminders(ctx, kept)
}

// GetReminderByID returns the reminder with id, or nil.
func (s *Store) GetReminderByID(ctx context.Context, id string) *Reminder {
	reminders := s.ListReminders(ctx)
	if i := indexOf(reminders, id); i >= 0 {
		r := reminders[i]
		return &r
	}
	return nil
}

// UpdateReminder applies fn to the reminder with id and persists the result
// as one serialized read-modify-write. If fn fails nothing is written.
func (s *Store) UpdateReminder(ctx context.Context, id string, fn func(*Reminder) error) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders := s.ListReminders(ctx)
	i := indexOf(reminders, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := reminders[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	reminders[i] = updated

	if err := s.saveReminders(ctx, reminders); err != nil {
		return nil, err
	}
	return &updated, nil
}

// LoadSettings returns stored settings layered over the store defaults, so
// fields added after the data was written get their defaults.
func (s *Store) LoadSettings(ctx context.Context) Settings {
	merged := s.defaults
	if s.Get(ctx, KeySettings, &merged) {
		return merged
	}
	return s.defaults
}

func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	return s.Set(ctx, KeySettings, settings)
}

func indexOf(reminders []Reminder, id string) int {
	for i, r := range reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}
