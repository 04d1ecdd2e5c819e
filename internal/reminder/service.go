package reminder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notexe/lembretes/internal/logging"
	"github.com/notexe/lembretes/internal/recurrence"
)

// Service implements the reminder operations on top of a Store: creation
// with validation, edits, completion toggling with streak and recurrence
// bookkeeping, and settings.
type Service struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the source of the current instant.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator sets how new reminder ids are produced.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(store *Store, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		logger: logging.OrNop(logger),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service's current instant.
func (s *Service) Now() time.Time {
	return s.now()
}

// Create validates in and stores a new reminder.
func (s *Service) Create(ctx context.Context, in Input) (*Reminder, error) {
	now := s.now()
	if err := in.Validate(now, true); err != nil {
		return nil, err
	}

	r := Reminder{
		ID:                  s.newID(),
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		DateTime:            in.DateTime,
		CreatedAt:           now,
		UpdatedAt:           now,
		IsRecurring:         in.IsRecurring,
		NotificationEnabled: notificationDefault(in.NotificationEnabled),
	}
	if in.IsRecurring {
		r.RecurringType = in.RecurringType
	}

	if err := s.store.SaveReminder(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("reminder created", zap.String("id", r.ID), zap.Time("due", r.DateTime))
	return &r, nil
}

// Get returns the reminder with id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Reminder, error) {
	r := s.store.GetReminderByID(ctx, id)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

// List returns reminders sorted by due instant, optionally filtered by status
// (StatusPending, StatusCompleted or StatusAll).
func (s *Service) List(ctx context.Context, status string) ([]Reminder, error) {
	switch status {
	case StatusAll, StatusPending, StatusCompleted:
	default:
		return nil, fmt.Errorf("unknown status %q (supported: pending, completed)", status)
	}

	all := s.store.ListReminders(ctx)
	out := make([]Reminder, 0, len(all))
	for _, r := range all {
		if status == StatusPending && r.IsCompleted {
			continue
		}
		if status == StatusCompleted && !r.IsCompleted {
			continue
		}
		out = append(out, r)
	}
	sortByDue(out)
	return out, nil
}

// Due returns pending reminders whose due instant is at or before now.
func (s *Service) Due(ctx context.Context) []Reminder {
	now := s.now()
	var due []Reminder
	for _, r := range s.store.ListReminders(ctx) {
		if !r.IsCompleted && !recurrence.IsFuture(r.DateTime, now) {
			due = append(due, r)
		}
	}
	sortByDue(due)
	return due
}

// Update applies fields to the reminder with id after validating the result.
func (s *Service) Update(ctx context.Context, id string, fields UpdateFields) (*Reminder, error) {
	now := s.now()
	updated, err := s.store.UpdateReminder(ctx, id, func(r *Reminder) error {
		in := Input{
			Title:               r.Title,
			Description:         r.Description,
			DateTime:            r.DateTime,
			IsRecurring:         r.IsRecurring,
			RecurringType:       r.RecurringType,
			NotificationEnabled: &r.NotificationEnabled,
		}
		fields.apply(&in)
		if err := in.Validate(now, false); err != nil {
			return err
		}

		r.Title = strings.TrimSpace(in.Title)
		r.Description = in.Description
		r.DateTime = in.DateTime
		r.IsRecurring = in.IsRecurring
		r.RecurringType = ""
		if in.IsRecurring {
			r.RecurringType = in.RecurringType
		}
		r.NotificationEnabled = notificationDefault(in.NotificationEnabled)
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("reminder updated", zap.String("id", id))
	return updated, nil
}

// ToggleComplete flips the completion state of the reminder with id.
//
// Completing records a completion at the current instant and recomputes the
// streak. A recurring reminder then stays pending with its due instant moved
// to the next occurrence; a one-off reminder becomes completed. Toggling a
// completed reminder reopens it and withdraws its latest completion.
func (s *Service) ToggleComplete(ctx context.Context, id string) (*Reminder, error) {
	now := s.now()
	updated, err := s.store.UpdateReminder(ctx, id, func(r *Reminder) error {
		if r.IsCompleted {
			reopen(r, now)
		} else {
			complete(r, now)
		}
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("reminder completion toggled",
		zap.String("id", id),
		zap.Bool("completed", updated.IsCompleted),
		zap.Int("streak", updated.Streak),
		zap.Time("due", updated.DateTime))
	return updated, nil
}

func complete(r *Reminder, now time.Time) {
	r.CompletionHistory = append(r.CompletionHistory, now)
	completedAt := now
	r.LastCompletedDate = &completedAt
	r.Streak = recurrence.Streak(r.CompletionHistory, now)

	if r.IsRecurring {
		r.DateTime = recurrence.NextOccurrence(r.DateTime, r.RecurringType, now)
		r.IsCompleted = false
		return
	}
	r.IsCompleted = true
}

func reopen(r *Reminder, now time.Time) {
	r.IsCompleted = false
	if n := len(r.CompletionHistory); n > 0 {
		r.CompletionHistory = r.CompletionHistory[:n-1]
	}
	if n := len(r.CompletionHistory); n > 0 {
		last := r.CompletionHistory[n-1]
		r.LastCompletedDate = &last
	} else {
		r.LastCompletedDate = nil
		r.CompletionHistory = nil
	}
	r.Streak = recurrence.Streak(r.CompletionHistory, now)
}

// Delete removes the reminder with id. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteReminder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("reminder deleted", zap.String("id", id))
	return nil
}

// Settings loads the settings merged over defaults.
func (s *Service) Settings(ctx context.Context) Settings {
	return s.store.LoadSettings(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, settings Settings) error {
	if err := settings.validate(); err != nil {
		return err
	}
	return s.store.SaveSettings(ctx, settings)
}

func (s *Service) Export(ctx context.Context) (string, error) {
	return s.store.Export(ctx, s.now())
}

func (s *Service) Import(ctx context.Context, doc string) error {
	return s.store.Import(ctx, doc)
}

func (f UpdateFields) apply(in *Input) {
	if f.Title != nil {
		in.Title = *f.Title
	}
	if f.Description != nil {
		in.Description = *f.Description
	}
	if f.DateTime != nil {
		in.DateTime = *f.DateTime
	}
	if f.IsRecurring != nil {
		in.IsRecurring = *f.IsRecurring
	}
	if f.RecurringType != nil {
		in.RecurringType = *f.RecurringType
		if f.IsRecurring == nil && *f.RecurringType != "" {
			in.IsRecurring = true
		}
	}
	if f.NotificationEnabled != nil {
		in.NotificationEnabled = f.NotificationEnabled
	}
}

func notificationDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func sortByDue(reminders []Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DateTime.Before(reminders[j].DateTime)
	})
}
