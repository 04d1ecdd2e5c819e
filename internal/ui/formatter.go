package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	StreakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)
)

type labels struct {
	empty      string
	settings   string
	theme      string
	notify     string
	sound      string
	language   string
	on, off    string
	errPrefix  string
	recurrence map[recurrence.Type]string
}

var catalog = map[recurrence.Language]labels{
	recurrence.Portuguese: {
		empty:     "Nenhum lembrete.",
		settings:  "Configurações",
		theme:     "Tema",
		notify:    "Notificações",
		sound:     "Som",
		language:  "Idioma",
		on:        "ativado",
		off:       "desativado",
		errPrefix: "Erro: ",
		recurrence: map[recurrence.Type]string{
			recurrence.Daily:   "diário",
			recurrence.Weekly:  "semanal",
			recurrence.Monthly: "mensal",
		},
	},
	recurrence.English: {
		empty:     "No reminders.",
		settings:  "Settings",
		theme:     "Theme",
		notify:    "Notifications",
		sound:     "Sound",
		language:  "Language",
		on:        "on",
		off:       "off",
		errPrefix: "Error: ",
		recurrence: map[recurrence.Type]string{
			recurrence.Daily:   "daily",
			recurrence.Weekly:  "weekly",
			recurrence.Monthly: "monthly",
		},
	},
}

type Formatter struct {
	colored bool
	lang    recurrence.Language
	l       labels
}

// NewFormatter returns a formatter for lang. Unknown languages fall back to
// Portuguese.
func NewFormatter(colored bool, lang recurrence.Language) *Formatter {
	if !lang.Valid() {
		lang = recurrence.Portuguese
	}
	return &Formatter{
		colored: colored,
		lang:    lang,
		l:       catalog[lang],
	}
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if f.colored {
		return style.Render(s)
	}
	return s
}

// FormatReminder renders one reminder as a single line:
//
//	[ ] Title  Hoje às 14:00 (em 3h)  ↻ diário  🔥 4  id
func (f *Formatter) FormatReminder(r reminder.Reminder, now time.Time) string {
	box := "[ ]"
	if r.IsCompleted {
		box = f.render(SuccessStyle, "[x]")
	}

	title := r.Title
	if r.IsCompleted {
		title = f.render(DimStyle, title)
	} else {
		title = f.render(TitleStyle, title)
	}

	due := fmt.Sprintf("%s (%s)",
		recurrence.DueLabel(r.DateTime, now, f.lang),
		recurrence.FormatRelative(r.DateTime, now, f.lang))
	if !r.IsCompleted && !recurrence.IsFuture(r.DateTime, now) {
		due = f.render(OverdueStyle, due)
	}

	parts := []string{box, title, due}
	if r.IsRecurring {
		parts = append(parts, f.render(AccentStyle, "↻ "+f.l.recurrence[r.RecurringType]))
	}
	if r.Streak > 0 {
		parts = append(parts, f.render(StreakStyle, fmt.Sprintf("🔥 %d", r.Streak)))
	}
	if !r.NotificationEnabled {
		parts = append(parts, "🔕")
	}
	parts = append(parts, f.render(DimStyle, r.ID))

	line := strings.Join(parts, "  ")
	if r.Description != "" {
		line += "\n    " + f.render(DimStyle, r.Description)
	}
	return line
}

// FormatReminderList renders reminders in the given order, one per line.
func (f *Formatter) FormatReminderList(reminders []reminder.Reminder, now time.Time) string {
	if len(reminders) == 0 {
		return f.FormatInfo(f.l.empty)
	}
	lines := make([]string, 0, len(reminders))
	for _, r := range reminders {
		lines = append(lines, f.FormatReminder(r, now))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatSettings(s reminder.Settings) string {
	onOff := func(v bool) string {
		if v {
			return f.l.on
		}
		return f.l.off
	}
	rows := [][2]string{
		{f.l.theme, string(s.Theme)},
		{f.l.notify, onOff(s.NotificationsEnabled)},
		{f.l.sound, onOff(s.SoundEnabled)},
		{f.l.language, string(s.Language)},
	}

	width := 0
	for _, row := range rows {
		if w := lipgloss.Width(row[0]); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		label := row[0] + strings.Repeat(" ", width-lipgloss.Width(row[0]))
		lines = append(lines, f.render(DimStyle, label)+"  "+row[1])
	}
	return f.FormatBox(f.l.settings, strings.Join(lines, "\n"))
}

func (f *Formatter) FormatError(err error) string {
	prefix := f.l.errPrefix
	if f.colored {
		prefix = ErrorStyle.Render(prefix)
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatSuccess(msg string) string {
	return f.render(SuccessStyle, "✓ ") + msg
}

func (f *Formatter) FormatInfo(info string) string {
	return f.render(InfoStyle, info)
}

// FormatBox wraps content in a styled box
func (f *Formatter) FormatBox(title, content string) string {
	if f.colored {
		return TitleStyle.Render(title) + "\n" + BoxStyle.Render(content)
	}
	return title + "\n" + content
}
