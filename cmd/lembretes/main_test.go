package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEMBRETES_CONFIG", filepath.Join(dir, "absent.yaml"))
	t.Setenv("LEMBRETES_STORAGE_BACKEND", "file")
	t.Setenv("LEMBRETES_STORAGE_PATH", filepath.Join(dir, "data.json"))
	t.Setenv("LEMBRETES_LOG_LEVEL", "error")
	t.Setenv("LEMBRETES_LOCALE_TIMEZONE", "UTC")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		return errOut.String(), err
	}
	return out.String(), nil
}

func addJSON(t *testing.T, args ...string) reminder.Reminder {
	t.Helper()
	out, err := run(t, append([]string{"--json", "add"}, args...)...)
	require.NoError(t, err, out)
	var r reminder.Reminder
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	return r
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		assert.NotEmpty(t, c.Short, c.Name())
	}
	for _, want := range []string{"list", "add", "edit", "done", "rm", "export", "import", "settings", "notify"} {
		assert.True(t, names[want], want)
	}
}

func TestAddListDone(t *testing.T) {
	setupEnv(t)

	r := addJSON(t, "Water", "plants", "--when", "tomorrow", "--time", "08:15", "--repeat", "weekly")
	assert.Equal(t, "Water plants", r.Title)
	assert.True(t, r.IsRecurring)
	assert.Equal(t, recurrence.Weekly, r.RecurringType)
	assert.Equal(t, 8, r.DateTime.Hour())
	assert.Equal(t, 15, r.DateTime.Minute())

	out, err := run(t, "--no-color", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Water plants")
	assert.Contains(t, out, "↻ semanal")

	out, err = run(t, "--json", "done", r.ID)
	require.NoError(t, err)
	var done reminder.Reminder
	require.NoError(t, json.Unmarshal([]byte(out), &done))
	assert.Equal(t, 1, done.Streak)
	assert.False(t, done.IsCompleted)

	out, err = run(t, "--json", "list", "--status", "completed")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestAddRejectsPastAndMissingTime(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "late", "--at", "2001-01-01 10:00")
	require.Error(t, err)

	out, err := run(t, "add", "no time")
	require.Error(t, err)
	assert.Contains(t, out, "--at or --when")

	_, err = run(t, "add", "x", "--when", "tomorrow", "--repeat", "yearly")
	assert.Error(t, err)
}

func TestEditAndRemove(t *testing.T) {
	setupEnv(t)
	r := addJSON(t, "draft", "--when", "next-week", "--repeat", "daily")

	out, err := run(t, "--json", "edit", r.ID, "--title", "final", "--repeat", "none", "--notify=false")
	require.NoError(t, err)
	var edited reminder.Reminder
	require.NoError(t, json.Unmarshal([]byte(out), &edited))
	assert.Equal(t, "final", edited.Title)
	assert.False(t, edited.IsRecurring)
	assert.False(t, edited.NotificationEnabled)
	assert.Equal(t, r.DateTime, edited.DateTime)

	_, err = run(t, "rm", r.ID)
	require.NoError(t, err)

	_, err = run(t, "edit", r.ID, "--title", "gone")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	dir := setupEnv(t)
	addJSON(t, "keep me", "--when", "tomorrow")

	backup := filepath.Join(dir, "backup.json")
	_, err := run(t, "export", backup)
	require.NoError(t, err)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0"`)

	t.Setenv("LEMBRETES_STORAGE_PATH", filepath.Join(dir, "fresh.json"))
	_, err = run(t, "import", backup)
	require.NoError(t, err)

	out, err := run(t, "--no-color", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "keep me")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version":"2.0","data":{}}`), 0o600))
	_, err = run(t, "import", bad)
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "--no-color", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Configurações")

	out, err = run(t, "--no-color", "settings", "--language", "en", "--sound=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Sound          off")

	_, err = run(t, "settings", "--theme", "neon")
	assert.Error(t, err)
}

func TestNotifyRequiresTelegram(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "notify", "--once")
	require.Error(t, err)
	assert.Contains(t, out, "telegram")
}

func TestResolveDue(t *testing.T) {
	now := time.Date(2025, time.January, 31, 18, 0, 0, 0, time.UTC)

	got, err := resolveDue("", "next-month", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC), got)

	got, err = resolveDue("", "today", "20:30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 31, 20, 30, 0, 0, time.UTC), got)

	_, err = resolveDue("", "someday", "", now)
	assert.Error(t, err)
	_, err = resolveDue("", "today", "25:00", now)
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	now := time.Date(2025, time.January, 10, 8, 0, 0, 0, loc)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-02-01T10:00:00Z", time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)},
		{"2025-02-01 10:00", time.Date(2025, time.February, 1, 10, 0, 0, 0, loc)},
		{"2025-02-01T10:00", time.Date(2025, time.February, 1, 10, 0, 0, 0, loc)},
		{"2025-02-01", time.Date(2025, time.February, 1, 0, 0, 0, 0, loc)},
		{"17:45", time.Date(2025, time.January, 10, 17, 45, 0, 0, loc)},
	}
	for _, tt := range tests {
		got, err := parseDateTime(tt.in, now)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	_, err := parseDateTime("next tuesday", now)
	assert.Error(t, err)
}
