package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SnapshotVersion is written into every exported document.
const SnapshotVersion = "1.0"

// ErrInvalidSnapshot is returned for documents Import cannot apply.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the backup document format.
type Snapshot struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

// SnapshotData bundles everything a snapshot restores.
type SnapshotData struct {
	Reminders []Reminder `json:"reminders"`
	Settings  Settings   `json:"settings"`
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Export renders the reminders and settings as an indented snapshot document.
func (s *Store) Export(ctx context.Context, now time.Time) (string, error) {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: now.UTC().Format(isoMillis),
		Data: SnapshotData{
			Reminders: s.ListReminders(ctx),
			Settings:  s.LoadSettings(ctx),
		},
	}

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export data: %w", err)
	}
	return string(out), nil
}

// rawSnapshot keeps data sections undecoded so absent sections can be told
// apart from empty ones.
type rawSnapshot struct {
	Version string `json:"version"`
	Data    *struct {
		Reminders json.RawMessage `json:"reminders"`
		Settings  json.RawMessage `json:"settings"`
	} `json:"data"`
}

// Import overwrites reminders and/or settings with the sections present in
// doc. The whole document is decoded and checked before anything is written;
// if the second write fails the first one is rolled back, so a failed import
// leaves the store as it was.
func (s *Store) Import(ctx context.Context, doc string) error {
	reminders, settings, err := parseSnapshot(doc, s.defaults)
	if err != nil {
		s.logger.Warn("rejected snapshot import", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var previous []Reminder
	hadReminders := false
	if reminders != nil {
		hadReminders = s.Get(ctx, KeyReminders, &previous)
		if err := s.saveReminders(ctx, reminders); err != nil {
			return fmt.Errorf("failed to import reminders: %w", err)
		}
	}

	if settings != nil {
		if err := s.SaveSettings(ctx, *settings); err != nil {
			if reminders != nil {
				s.rollbackReminders(ctx, previous, hadReminders)
			}
			return fmt.Errorf("failed to import settings: %w", err)
		}
	}

	s.logger.Info("imported snapshot",
		zap.Bool("reminders", reminders != nil),
		zap.Int("reminder_count", len(reminders)),
		zap.Bool("settings", settings != nil))
	return nil
}

func (s *Store) rollbackReminders(ctx context.Context, previous []Reminder, existed bool) {
	var err error
	if existed {
		err = s.saveReminders(ctx, previous)
	} else {
		err = s.Remove(ctx, KeyReminders)
	}
	if err != nil {
		s.logger.Error("failed to roll back reminders after import failure", zap.Error(err))
	}
}

func parseSnapshot(doc string, defaults Settings) ([]Reminder, *Settings, error) {
	var raw rawSnapshot
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !strings.HasPrefix(raw.Version, "1.") {
		return nil, nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidSnapshot, raw.Version)
	}
	if raw.Data == nil {
		return nil, nil, fmt.Errorf("%w: missing data", ErrInvalidSnapshot)
	}

	var reminders []Reminder
	if present(raw.Data.Reminders) {
		if err := json.Unmarshal(raw.Data.Reminders, &reminders); err != nil {
			return nil, nil, fmt.Errorf("%w: reminders: %v", ErrInvalidSnapshot, err)
		}
		if reminders == nil {
			reminders = []Reminder{}
		}
		seen := make(map[string]struct{}, len(reminders))
		for _, r := range reminders {
			if err := r.checkInvariants(); err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
			}
			if _, dup := seen[r.ID]; dup {
				return nil, nil, fmt.Errorf("%w: duplicate reminder id %s", ErrInvalidSnapshot, r.ID)
			}
			seen[r.ID] = struct{}{}
		}
	}

	var settings *Settings
	if present(raw.Data.Settings) {
		merged := defaults
		if err := json.Unmarshal(raw.Data.Settings, &merged); err != nil {
			return nil, nil, fmt.Errorf("%w: settings: %v", ErrInvalidSnapshot, err)
		}
		if err := merged.validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: settings: %v", ErrInvalidSnapshot, err)
		}
		settings = &merged
	}

	return reminders, settings, nil
}

func present(msg json.RawMessage) bool {
	return len(msg) > 0 && !bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
