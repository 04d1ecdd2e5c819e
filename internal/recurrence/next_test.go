package recurrence

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

func TestNextOccurrence_FutureBaseUnchanged(t *testing.T) {
	base := refNow.Add(2 * time.Hour)
	for _, typ := range Types {
		assert.Equal(t, base, NextOccurrence(base, typ, refNow), typ)
	}
}

func TestNextOccurrence_PastBaseAdvancesOnePeriod(t *testing.T) {
	base := time.Date(2025, time.March, 9, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		typ  Type
		want time.Time
	}{
		{Daily, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)},
		{Weekly, time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)},
		{Monthly, time.Date(2025, time.April, 9, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(base, tt.typ, refNow))
		})
	}
}

func TestNextOccurrence_BaseEqualToNowAdvances(t *testing.T) {
	got := NextOccurrence(refNow, Daily, refNow)
	assert.Equal(t, refNow.Add(24*time.Hour), got)
}

func TestNextOccurrence_DoesNotCatchUp(t *testing.T) {
	base := refNow.AddDate(0, 0, -14)
	got := NextOccurrence(base, Daily, refNow)
	assert.Equal(t, base.AddDate(0, 0, 1), got)
	assert.True(t, got.Before(refNow))
}

func TestNextOccurrence_MonthlyOverflow(t *testing.T) {
	base := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := NextOccurrence(base, Monthly, now)
	assert.Equal(t, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC), got)
}

func TestNextOccurrence_UnknownTypeUnchanged(t *testing.T) {
	base := refNow.Add(-time.Hour)
	assert.Equal(t, base, NextOccurrence(base, Type("yearly"), refNow))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("weekly")
	require.NoError(t, err)
	assert.Equal(t, Weekly, typ)

	_, err = ParseType("hourly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown recurrence type")
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestNextOccurrence_KeepsLocalClockAcrossDaylightSaving(t *testing.T) {
	newYork := mustLoad(t, "America/New_York")
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	tests := []struct {
		name string
		base time.Time
		typ  Type
		now  time.Time
		want time.Time
	}{
		{
			name: "daily into spring forward",
			base: time.Date(2025, time.March, 8, 9, 0, 0, 0, newYork),
			typ:  Daily,
			now:  time.Date(2025, time.March, 8, 10, 0, 0, 0, newYork),
			want: time.Date(2025, time.March, 9, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "daily into fall back",
			base: time.Date(2025, time.November, 1, 9, 0, 0, 0, newYork),
			typ:  Daily,
			now:  time.Date(2025, time.November, 1, 9, 30, 0, 0, newYork),
			want: time.Date(2025, time.November, 2, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly across spring forward",
			base: time.Date(2025, time.February, 10, 9, 0, 0, 0, newYork),
			typ:  Monthly,
			now:  time.Date(2025, time.February, 10, 12, 0, 0, 0, newYork),
			want: time.Date(2025, time.March, 10, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "fixed offset base from storage",
			base: time.Date(2025, time.March, 8, 14, 0, 0, 0, time.UTC).In(time.FixedZone("", -5*3600)),
			typ:  Daily,
			now:  time.Date(2025, time.March, 8, 10, 0, 0, 0, newYork),
			want: time.Date(2025, time.March, 9, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly into brazilian summer time",
			base: time.Date(2018, time.October, 31, 9, 0, 0, 0, saoPaulo),
			typ:  Weekly,
			now:  time.Date(2018, time.October, 31, 10, 0, 0, 0, saoPaulo),
			want: time.Date(2018, time.November, 7, 11, 0, 0, 0, time.UTC),
		},
		{
			name: "daily into brazilian summer time",
			base: time.Date(2018, time.November, 3, 9, 0, 0, 0, saoPaulo),
			typ:  Daily,
			now:  time.Date(2018, time.November, 3, 9, 5, 0, 0, saoPaulo),
			want: time.Date(2018, time.November, 4, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.base, tt.typ, tt.now)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got.UTC(), tt.want)
			assert.Equal(t, tt.now.Location(), got.Location())
			assert.Equal(t, tt.base.In(tt.now.Location()).Hour(), got.Hour())
		})
	}
}
