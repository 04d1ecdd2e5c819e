package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/ui"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export reminders and settings as a JSON backup",
		Long: `Export reminders and settings as a versioned JSON backup document.

Examples:
  lembretes export > backup.json
  lembretes export backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				doc, err := a.Service.Export(cmd.Context())
				if err != nil {
					return err
				}

				if len(args) == 0 || args[0] == "-" {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), doc)
					return err
				}
				if err := os.WriteFile(args[0], []byte(doc+"\n"), 0o600); err != nil {
					return fmt.Errorf("failed to write %s: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), f.FormatSuccess(args[0]))
				return nil
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore reminders and settings from a JSON backup",
		Long: `Restore reminders and settings from a backup produced by export.

Sections present in the document replace the stored ones. An invalid document
is rejected without changing anything.

Examples:
  lembretes import backup.json
  cat backup.json | lembretes import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				var (
					content []byte
					err     error
				)
				if args[0] == "-" {
					content, err = io.ReadAll(cmd.InOrStdin())
				} else {
					content, err = os.ReadFile(args[0])
				}
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}

				if err := a.Service.Import(cmd.Context(), string(content)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), f.FormatSuccess(args[0]))
				return nil
			})
		},
	}
}
