package reminder

import (
	"time"

	"github.com/notexe/lembretes/internal/recurrence"
)

// Status filters for listing reminders.
const (
	StatusAll       = ""
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Reminder represents a scheduled reminder item.
//
// JSON keys match the export document of the web app, so snapshots move
// between both unchanged.
type Reminder struct {
	ID                  string          `json:"id" validate:"required"`
	Title               string          `json:"title"`
	Description         string          `json:"description,omitempty"`
	DateTime            time.Time       `json:"dateTime"`
	IsCompleted         bool            `json:"isCompleted"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" validate:"gtefield=CreatedAt"`
	Streak              int             `json:"streak" validate:"gte=0"`
	LastCompletedDate   *time.Time      `json:"lastCompletedDate,omitempty"`
	IsRecurring         bool            `json:"isRecurring"`
	RecurringType       recurrence.Type `json:"recurringType,omitempty" validate:"required_if=IsRecurring true,recurrence"`
	NotificationEnabled bool            `json:"notificationEnabled"`
	CompletionHistory   []time.Time     `json:"completionHistory,omitempty"`
}

func (r *Reminder) localize(loc *time.Location) {
	r.DateTime = r.DateTime.In(loc)
	r.CreatedAt = r.CreatedAt.In(loc)
	r.UpdatedAt = r.UpdatedAt.In(loc)
	if r.LastCompletedDate != nil {
		t := r.LastCompletedDate.In(loc)
		r.LastCompletedDate = &t
	}
	for i, c := range r.CompletionHistory {
		r.CompletionHistory[i] = c.In(loc)
	}
}

// Input holds user-entered fields for creating or editing a reminder.
type Input struct {
	Title         string          `json:"title" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=500"`
	DateTime      time.Time       `json:"dateTime" validate:"required"`
	IsRecurring   bool            `json:"isRecurring"`
	RecurringType recurrence.Type `json:"recurringType" validate:"required_if=IsRecurring true,recurrence"`
	// NotificationEnabled defaults to true when nil.
	NotificationEnabled *bool `json:"notificationEnabled"`
}

// UpdateFields holds optional fields for a partial update.
type UpdateFields struct {
	Title               *string
	Description         *string
	DateTime            *time.Time
	IsRecurring         *bool
	RecurringType       *recurrence.Type
	NotificationEnabled *bool
}

// Theme is the UI color scheme preference.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Settings are the application-wide preferences.
type Settings struct {
	Theme                Theme               `json:"theme" validate:"oneof=light dark auto"`
	NotificationsEnabled bool                `json:"notificationsEnabled"`
	SoundEnabled         bool                `json:"soundEnabled"`
	Language             recurrence.Language `json:"language" validate:"oneof=pt en"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		Theme:                ThemeAuto,
		NotificationsEnabled: true,
		SoundEnabled:         true,
		Language:             recurrence.Portuguese,
	}
}
