// Command lembretes manages reminders from the terminal.
//
// Usage:
//
//	lembretes add "Water plants" --when tomorrow --repeat weekly
//	lembretes list --status pending
//	lembretes done <id>
//	lembretes export backup.json
//	lembretes notify            # deliver due reminders to Telegram until interrupted
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/config"
	"github.com/notexe/lembretes/internal/ui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	noColor    bool
	asJSON     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lembretes",
		Short: "Reminders with recurrence and streaks",
		Long: `lembretes keeps reminders with optional daily, weekly or monthly
recurrence, tracks completion streaks, and can send due reminders to Telegram.

Configuration is read from ~/.lembretes/config.yaml (or $LEMBRETES_CONFIG)
and any LEMBRETES_* environment variable, e.g. LEMBRETES_STORAGE_PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Output results as JSON")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDoneCmd(opts),
		newRemoveCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSettingsCmd(opts),
		newNotifyCmd(opts),
	)
	return root
}

// withApp opens the configured app, runs fn and reports its error through
// the formatter.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(a *app.App, f *ui.Formatter) error) error {
	a, err := app.Open(config.ResolvePath(o.configPath))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer a.Close()

	lang := a.Service.Settings(cmd.Context()).Language
	f := ui.NewFormatter(!o.noColor, lang)

	if err := fn(a, f); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), f.FormatError(err))
		return err
	}
	return nil
}
