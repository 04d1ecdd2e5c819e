package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
)

var now = time.Date(2025, time.July, 10, 11, 0, 0, 0, time.UTC)

func TestFormatReminder_Plain(t *testing.T) {
	f := NewFormatter(false, recurrence.Portuguese)
	r := reminder.Reminder{
		ID:                  "abc",
		Title:               "Academia",
		DateTime:            time.Date(2025, time.July, 10, 14, 0, 0, 0, time.UTC),
		IsRecurring:         true,
		RecurringType:       recurrence.Daily,
		Streak:              4,
		NotificationEnabled: true,
	}

	assert.Equal(t, "[ ]  Academia  Hoje às 14:00 (em 3h)  ↻ diário  🔥 4  abc", f.FormatReminder(r, now))

	r.Description = "perna"
	r.NotificationEnabled = false
	r.IsRecurring = false
	r.Streak = 0
	assert.Equal(t, "[ ]  Academia  Hoje às 14:00 (em 3h)  🔕  abc\n    perna", f.FormatReminder(r, now))
}

func TestFormatReminder_English(t *testing.T) {
	f := NewFormatter(false, recurrence.English)
	r := reminder.Reminder{
		ID:                  "x",
		Title:               "Call",
		DateTime:            now.Add(-30 * time.Minute),
		IsCompleted:         true,
		NotificationEnabled: true,
	}
	assert.Equal(t, "[x]  Call  Today at 10:30 (30 min ago)  x", f.FormatReminder(r, now))
}

func TestFormatReminderList(t *testing.T) {
	f := NewFormatter(false, recurrence.English)
	assert.Equal(t, "No reminders.", f.FormatReminderList(nil, now))

	list := []reminder.Reminder{
		{ID: "1", Title: "a", DateTime: now.Add(time.Hour), NotificationEnabled: true},
		{ID: "2", Title: "b", DateTime: now.Add(2 * time.Hour), NotificationEnabled: true},
	}
	out := f.FormatReminderList(list, now)
	assert.Contains(t, out, "a  Today at 12:00")
	assert.Contains(t, out, "\n[ ]  b  Today at 13:00")
}

func TestFormatSettings(t *testing.T) {
	f := NewFormatter(false, recurrence.English)
	out := f.FormatSettings(reminder.DefaultSettings())
	assert.Equal(t, "Settings\nTheme          auto\nNotifications  on\nSound          on\nLanguage       pt", out)
}

func TestFormatMessages(t *testing.T) {
	f := NewFormatter(false, recurrence.Portuguese)
	assert.Equal(t, "Erro: boom", f.FormatError(errors.New("boom")))
	assert.Equal(t, "✓ saved", f.FormatSuccess("saved"))
	assert.Equal(t, "hi", f.FormatInfo("hi"))

	colored := NewFormatter(true, recurrence.Portuguese)
	assert.Contains(t, colored.FormatError(errors.New("boom")), "boom")
	assert.Contains(t, colored.FormatBox("T", "body"), "body")
}

func TestNewFormatter_UnknownLanguageFallsBack(t *testing.T) {
	f := NewFormatter(false, "de")
	assert.Equal(t, "Nenhum lembrete.", f.FormatReminderList(nil, now))
}
