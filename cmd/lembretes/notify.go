package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/ui"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send due reminders to Telegram",
		Long: `Check for due reminders every scheduler.interval seconds and send each
occurrence once to the configured Telegram chat. Runs until interrupted.

Requires scheduler.telegram.bot_token and scheduler.telegram.chat_id
(LEMBRETES_SCHEDULER_TELEGRAM_BOT_TOKEN, LEMBRETES_SCHEDULER_TELEGRAM_CHAT_ID).

Examples:
  lembretes notify
  lembretes notify --once`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(a *app.App, f *ui.Formatter) error {
				tg := a.Config.Scheduler.Telegram
				if tg.BotToken == "" || tg.ChatID == "" {
					return fmt.Errorf("telegram bot_token and chat_id must be configured")
				}
				s := a.Scheduler()

				if once {
					n := s.RunOnce(cmd.Context())
					fmt.Fprintln(cmd.OutOrStdout(), f.FormatInfo(fmt.Sprintf("%d", n)))
					return nil
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return s.Run(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	return cmd
}
