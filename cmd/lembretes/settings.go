package main

import (
	"github.com/spf13/cobra"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
	"github.com/notexe/lembretes/internal/ui"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	var (
		theme         string
		language      string
		notifications bool
		sound         bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Show settings, or change the ones given as flags.

Examples:
  lembretes settings
  lembretes settings --language en --sound=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				ctx := cmd.Context()
				s := a.Service.Settings(ctx)
				flags := cmd.Flags()

				changed := false
				if flags.Changed("theme") {
					s.Theme = reminder.Theme(theme)
					changed = true
				}
				if flags.Changed("language") {
					s.Language = recurrence.Language(language)
					changed = true
				}
				if flags.Changed("notifications") {
					s.NotificationsEnabled = notifications
					changed = true
				}
				if flags.Changed("sound") {
					s.SoundEnabled = sound
					changed = true
				}

				if changed {
					if err := a.Service.UpdateSettings(ctx, s); err != nil {
						return err
					}
					f = ui.NewFormatter(!opts.noColor, s.Language)
				}
				return opts.print(cmd.OutOrStdout(), s, func() string {
					return f.FormatSettings(s)
				})
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light, dark, auto")
	cmd.Flags().StringVar(&language, "language", "", "Language: pt, en")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Enable notifications")
	cmd.Flags().BoolVar(&sound, "sound", true, "Play sound with notifications")
	return cmd
}
