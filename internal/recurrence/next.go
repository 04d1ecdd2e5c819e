package recurrence

import (
	"fmt"
	"time"
)

// Type is the cadence of a recurring reminder.
type Type string

// Recurrence types.
const (
	Daily   Type = "daily"
	Weekly  Type = "weekly"
	Monthly Type = "monthly"
)

// Types lists every supported recurrence type.
var Types = []Type{Daily, Weekly, Monthly}

// Valid reports whether t is a supported recurrence type.
func (t Type) Valid() bool {
	switch t {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// ParseType converts s into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown recurrence type %q (supported: daily, weekly, monthly)", s)
	}
	return t, nil
}

// NextOccurrence returns the instant a recurring reminder is next due.
//
// A base still in the future is returned unchanged. Otherwise exactly one
// period is added in now's location: one day, seven days or one calendar
// month, keeping the local wall clock across daylight saving changes. Month
// arithmetic uses time.AddDate normalization, so Jan 31 advances to Mar 3
// (Mar 2 in leap years). Missed periods are not skipped; callers that need
// to catch up call NextOccurrence again.
func NextOccurrence(base time.Time, typ Type, now time.Time) time.Time {
	if IsFuture(base, now) {
		return base
	}

	local := base.In(now.Location())
	switch typ {
	case Daily:
		return local.AddDate(0, 0, 1)
	case Weekly:
		return local.AddDate(0, 0, 7)
	case Monthly:
		return local.AddDate(0, 1, 0)
	default:
		return base
	}
}
