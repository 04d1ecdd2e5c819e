package recurrence

import (
	"fmt"
	"time"
)

// Language selects the wording of formatted dates.
type Language string

// Supported languages.
const (
	Portuguese Language = "pt"
	English    Language = "en"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Portuguese || l == English
}

type phrases struct {
	dateLayout     string
	minutesAgo     string
	hoursAgo       string
	daysAgo        string
	inMinutes      string
	inHours        string
	inDays         string
	todayAt        string
	tomorrowAt     string
	yesterdayAt    string
	dateTimeLayout string
}

var catalog = map[Language]phrases{
	Portuguese: {
		dateLayout:     "02/01/2006",
		dateTimeLayout: "02/01/2006 15:04",
		minutesAgo:     "%d min atrás",
		hoursAgo:       "%dh atrás",
		daysAgo:        "%d dias atrás",
		inMinutes:      "em %d min",
		inHours:        "em %dh",
		inDays:         "em %d dias",
		todayAt:        "Hoje às %s",
		tomorrowAt:     "Amanhã às %s",
		yesterdayAt:    "Ontem às %s",
	},
	English: {
		dateLayout:     "01/02/2006",
		dateTimeLayout: "01/02/2006 15:04",
		minutesAgo:     "%d min ago",
		hoursAgo:       "%dh ago",
		daysAgo:        "%d days ago",
		inMinutes:      "in %d min",
		inHours:        "in %dh",
		inDays:         "in %d days",
		todayAt:        "Today at %s",
		tomorrowAt:     "Tomorrow at %s",
		yesterdayAt:    "Yesterday at %s",
	},
}

func lookup(lang Language) phrases {
	if p, ok := catalog[lang]; ok {
		return p
	}
	return catalog[Portuguese]
}

// RelativeHorizon is how far from now FormatRelative keeps relative wording.
const RelativeHorizon = 7 * 24 * time.Hour

func FormatDate(t time.Time, lang Language) string {
	return t.Format(lookup(lang).dateLayout)
}

func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

func FormatDateTime(t time.Time, lang Language) string {
	return t.Format(lookup(lang).dateTimeLayout)
}

// FormatRelative renders t relative to now, such as "em 3 dias" or "2h ago".
// Differences are floored to whole minutes, then hours, then days. Beyond a
// week in either direction the absolute date in now's location is returned.
func FormatRelative(t, now time.Time, lang Language) string {
	p := lookup(lang)
	t = t.In(now.Location())

	diffMinutes := floorDiv(t.Sub(now).Milliseconds(), int64(time.Minute/time.Millisecond))
	diffHours := floorDiv(diffMinutes, 60)
	diffDays := floorDiv(diffHours, 24)

	if diffMinutes < 0 {
		pastMinutes, pastHours, pastDays := -diffMinutes, -diffHours, -diffDays
		switch {
		case pastMinutes < 60:
			return fmt.Sprintf(p.minutesAgo, pastMinutes)
		case pastHours < 24:
			return fmt.Sprintf(p.hoursAgo, pastHours)
		case pastDays < 7:
			return fmt.Sprintf(p.daysAgo, pastDays)
		default:
			return FormatDate(t, lang)
		}
	}

	switch {
	case diffMinutes < 60:
		return fmt.Sprintf(p.inMinutes, diffMinutes)
	case diffHours < 24:
		return fmt.Sprintf(p.inHours, diffHours)
	case diffDays < 7:
		return fmt.Sprintf(p.inDays, diffDays)
	default:
		return FormatDate(t, lang)
	}
}

// DueLabel renders a due instant in now's location the way reminder lists
// show it: "Hoje às 14:00", "Amanhã às 09:30", "Ontem às 18:00", otherwise
// the full date and time.
func DueLabel(t, now time.Time, lang Language) string {
	p := lookup(lang)
	t = t.In(now.Location())
	switch {
	case IsToday(t, now):
		return fmt.Sprintf(p.todayAt, FormatTime(t))
	case IsTomorrow(t, now):
		return fmt.Sprintf(p.tomorrowAt, FormatTime(t))
	case IsYesterday(t, now):
		return fmt.Sprintf(p.yesterdayAt, FormatTime(t))
	default:
		return FormatDateTime(t, lang)
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
