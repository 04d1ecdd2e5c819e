package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/notexe/lembretes/internal/logging"
	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
)

// Notification is one due reminder occurrence to deliver.
type Notification struct {
	Reminder reminder.Reminder
	Language recurrence.Language
	Now      time.Time
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Scheduler runs periodic due-reminder checks and sends notifications.
type Scheduler struct {
	service  *reminder.Service
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger

	// sent holds id+due keys already delivered. Only the Run loop touches it.
	sent map[string]struct{}
}

// New creates a new Scheduler that checks service every interval.
func New(service *reminder.Service, notifier Notifier, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		notifier: notifier,
		interval: interval,
		logger:   logging.OrNop(logger).Named("scheduler"),
		sent:     make(map[string]struct{}),
	}
}

// Run blocks and runs tick() on interval + immediately on start.
// It exits when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}

	s.logger.Info("started", zap.Duration("interval", s.interval))

	// Run immediately on start
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick sends a notification for every due occurrence not sent yet and
// returns how many were delivered.
func (s *Scheduler) tick(ctx context.Context) int {
	settings := s.service.Settings(ctx)
	if !settings.NotificationsEnabled {
		s.logger.Debug("notifications disabled, skipping check")
		return 0
	}

	now := s.service.Now()
	delivered := 0
	for _, r := range s.service.Due(ctx) {
		if !r.NotificationEnabled {
			continue
		}
		key := occurrenceKey(r)
		if _, done := s.sent[key]; done {
			continue
		}

		err := s.notifier.Notify(ctx, Notification{Reminder: r, Language: settings.Language, Now: now})
		if err != nil {
			s.logger.Error("failed to send notification", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		s.sent[key] = struct{}{}
		delivered++
		s.logger.Info("notification sent", zap.String("id", r.ID), zap.Time("due", r.DateTime))
	}

	if delivered == 0 {
		s.logger.Debug("no reminders to report")
	}
	return delivered
}

func occurrenceKey(r reminder.Reminder) string {
	return fmt.Sprintf("%s@%d", r.ID, r.DateTime.Unix())
}

// RunOnce performs a single check and returns how many notifications were sent.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	return s.tick(ctx)
}
