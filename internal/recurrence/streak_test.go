package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreak(t *testing.T) {
	now := time.Date(2025, time.May, 20, 18, 0, 0, 0, time.UTC)
	today := now.Add(-3 * time.Hour)
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	tests := []struct {
		name        string
		completions []time.Time
		want        int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{today}, 1},
		{"three consecutive days", []time.Time{today, daysAgo(1), daysAgo(2)}, 3},
		{"gap after today", []time.Time{today, daysAgo(3)}, 1},
		{"anchored yesterday", []time.Time{daysAgo(1), daysAgo(2)}, 2},
		{"two days ago breaks", []time.Time{daysAgo(2)}, 0},
		{"unsorted input", []time.Time{daysAgo(2), today, daysAgo(1)}, 3},
		{"same day duplicates count once", []time.Time{today, today.Add(-time.Hour), daysAgo(1)}, 2},
		{"time of day ignored", []time.Time{StartOfDay(now), daysAgo(1).Add(5 * time.Hour)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.completions, now))
		})
	}
}

func TestStreak_NormalizesToNowLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*3600)
	now := time.Date(2025, time.May, 20, 10, 0, 0, 0, saoPaulo)

	// 01:00 UTC on the 20th is still the 19th in BRT.
	lateYesterday := time.Date(2025, time.May, 20, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Streak([]time.Time{lateYesterday}, now))
	assert.Equal(t, 2, Streak([]time.Time{now, lateYesterday}, now))
}
