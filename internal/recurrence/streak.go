package recurrence

import (
	"sort"
	"time"
)

// Streak counts consecutive calendar days with at least one completion,
// ending today or yesterday relative to now.
//
// Completions are normalized to the start of their day in now's location.
// Several completions on the same day count once. If the most recent day is
// neither today nor yesterday the streak is already broken and Streak
// returns 0.
func Streak(completions []time.Time, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	loc := now.Location()
	seen := make(map[int64]struct{}, len(completions))
	days := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		day := StartOfDay(c.In(loc))
		if _, dup := seen[day.Unix()]; dup {
			continue
		}
		seen[day.Unix()] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := StartOfDay(now)
	yesterday := AddDays(today, -1)

	check := today
	switch {
	case days[0].Equal(today):
	case days[0].Equal(yesterday):
		check = yesterday
	default:
		return 0
	}

	streak := 0
	for _, day := range days {
		if !day.Equal(check) {
			break
		}
		streak++
		check = AddDays(check, -1)
	}
	return streak
}
