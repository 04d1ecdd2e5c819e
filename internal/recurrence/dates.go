// Package recurrence holds the date arithmetic behind reminders: next-occurrence
// computation for recurring reminders, consecutive-day completion streaks and
// human readable due dates.
//
// Every function is pure. Functions that depend on the current instant take it
// as an explicit now argument, so callers decide which clock is in effect.
package recurrence

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by whole calendar days, keeping the wall clock time.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func IsToday(t, now time.Time) bool {
	return SameDay(now, t)
}

func IsTomorrow(t, now time.Time) bool {
	return SameDay(AddDays(now, 1), t)
}

func IsYesterday(t, now time.Time) bool {
	return SameDay(AddDays(now, -1), t)
}

// IsFuture reports whether t is strictly after now.
func IsFuture(t, now time.Time) bool {
	return t.After(now)
}

// Default preset time of day.
const (
	DefaultPresetHour   = 9
	DefaultPresetMinute = 0
)

// Today returns today at hour:minute.
func Today(now time.Time, hour, minute int) time.Time {
	return atClock(now, hour, minute)
}

func Tomorrow(now time.Time, hour, minute int) time.Time {
	return atClock(AddDays(now, 1), hour, minute)
}

func NextWeek(now time.Time, hour, minute int) time.Time {
	return atClock(AddDays(now, 7), hour, minute)
}

func NextMonth(now time.Time, hour, minute int) time.Time {
	return atClock(now.AddDate(0, 1, 0), hour, minute)
}

func atClock(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}
