package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
	"github.com/notexe/lembretes/internal/ui"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		status  string
		dueOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders ordered by due date",
		Long: `List reminders ordered by due date.

Examples:
  lembretes list
  lembretes list --status pending
  lembretes list --due`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				var (
					list []reminder.Reminder
					err  error
				)
				if dueOnly {
					list = a.Service.Due(cmd.Context())
				} else if list, err = a.Service.List(cmd.Context(), status); err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), list, func() string {
					return f.FormatReminderList(list, a.Service.Now())
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: pending or completed")
	cmd.Flags().BoolVar(&dueOnly, "due", false, "Only pending reminders that are due or overdue")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		at          string
		when        string
		clock       string
		description string
		repeat      string
		noNotify    bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reminder",
		Long: `Add a reminder due at a future date and time.

The due time is either an explicit --at or a --when preset (today, tomorrow,
next-week, next-month) at --time, 09:00 by default.

Examples:
  lembretes add "Pay rent" --at "2025-08-01 10:00"
  lembretes add "Gym" --when tomorrow --time 07:30 --repeat daily`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				now := a.Service.Now()
				due, err := resolveDue(at, when, clock, now)
				if err != nil {
					return err
				}

				in := reminder.Input{
					Title:       strings.Join(args, " "),
					Description: description,
					DateTime:    due,
				}
				if repeat != "" {
					typ, err := recurrence.ParseType(repeat)
					if err != nil {
						return err
					}
					in.IsRecurring = true
					in.RecurringType = typ
				}
				notify := !noNotify
				in.NotificationEnabled = &notify

				r, err := a.Service.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), r, func() string {
					return f.FormatSuccess(f.FormatReminder(*r, now))
				})
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `Due date/time: RFC3339, "2006-01-02 15:04" or "15:04" (today)`)
	cmd.Flags().StringVar(&when, "when", "", "Preset day: today, tomorrow, next-week, next-month")
	cmd.Flags().StringVar(&clock, "time", "", "Time of day for --when (default 09:00)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence: daily, weekly, monthly")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Do not send a notification when due")
	cmd.MarkFlagsMutuallyExclusive("at", "when")
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		title       string
		description string
		at          string
		repeat      string
		notify      bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a reminder",
		Long: `Change fields of a reminder. Only the flags given are changed.

Examples:
  lembretes edit 3f2a --title "Pay rent (transfer)"
  lembretes edit 3f2a --repeat none
  lembretes edit 3f2a --notify=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				now := a.Service.Now()
				var fields reminder.UpdateFields
				flags := cmd.Flags()

				if flags.Changed("title") {
					fields.Title = &title
				}
				if flags.Changed("description") {
					fields.Description = &description
				}
				if flags.Changed("at") {
					t, err := parseDateTime(at, now)
					if err != nil {
						return err
					}
					fields.DateTime = &t
				}
				if flags.Changed("repeat") {
					recurring := repeat != "none" && repeat != ""
					fields.IsRecurring = &recurring
					if recurring {
						typ, err := recurrence.ParseType(repeat)
						if err != nil {
							return err
						}
						fields.RecurringType = &typ
					}
				}
				if flags.Changed("notify") {
					fields.NotificationEnabled = &notify
				}

				r, err := a.Service.Update(cmd.Context(), args[0], fields)
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), r, func() string {
					return f.FormatSuccess(f.FormatReminder(*r, now))
				})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&at, "at", "", "New due date/time")
	cmd.Flags().StringVar(&repeat, "repeat", "", "New recurrence: daily, weekly, monthly or none")
	cmd.Flags().BoolVar(&notify, "notify", true, "Send a notification when due")
	return cmd
}

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a reminder",
		Long: `Toggle completion of a reminder.

Recurring reminders move to their next occurrence and extend their streak.
Running done on a completed reminder reopens it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				r, err := a.Service.ToggleComplete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), r, func() string {
					return f.FormatSuccess(f.FormatReminder(*r, a.Service.Now()))
				})
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Short:   "Delete reminders",
		Aliases: []string{"delete"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				for _, id := range args {
					if err := a.Service.Delete(cmd.Context(), id); err != nil {
						return err
					}
					if !opts.asJSON {
						fmt.Fprintln(cmd.OutOrStdout(), f.FormatSuccess(id))
					}
				}
				return nil
			})
		},
	}
}

// print writes v as JSON when --json is set, otherwise the rendered text.
func (o *rootOptions) print(w io.Writer, v any, render func() string) error {
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, render())
	return err
}

// resolveDue picks the due instant from --at or a --when preset.
func resolveDue(at, when, clock string, now time.Time) (time.Time, error) {
	if at != "" {
		return parseDateTime(at, now)
	}
	if when == "" {
		return time.Time{}, fmt.Errorf("a due time is required: use --at or --when")
	}

	hour, minute := recurrence.DefaultPresetHour, recurrence.DefaultPresetMinute
	if clock != "" {
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --time %q: use HH:MM", clock)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	switch when {
	case "today":
		return recurrence.Today(now, hour, minute), nil
	case "tomorrow":
		return recurrence.Tomorrow(now, hour, minute), nil
	case "next-week":
		return recurrence.NextWeek(now, hour, minute), nil
	case "next-month":
		return recurrence.NextMonth(now, hour, minute), nil
	default:
		return time.Time{}, fmt.Errorf("unknown --when %q (supported: today, tomorrow, next-week, next-month)", when)
	}
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDateTime accepts RFC3339, a local date with optional time, or a bare
// HH:MM meaning today. Values without an offset are in now's location.
func parseDateTime(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return recurrence.Today(now, t.Hour(), t.Minute()), nil
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q (use RFC3339, \"2006-01-02 15:04\" or \"15:04\")", s)
}
