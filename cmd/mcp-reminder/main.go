// Command mcp-reminder provides an MCP server for reminder management.
//
// This server provides tools for creating, listing, completing, and managing
// reminders, their streaks and application settings.
//
// Usage:
//
//	./mcp-reminder          # Start MCP server (stdio)
//	./mcp-reminder --help   # Show help
//
// Environment:
//
//	LEMBRETES_CONFIG  Path to config file (default: ~/.lembretes/config.yaml)
//	LEMBRETES_*       Overrides any config key, e.g. LEMBRETES_STORAGE_PATH
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/notexe/lembretes/internal/app"
	"github.com/notexe/lembretes/internal/config"
	"github.com/notexe/lembretes/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	a, err := app.Open(config.ResolvePath(""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	s := reminder.NewServer(a.Service)
	stopScheduler := a.StartScheduler(context.Background())

	a.Logger.Info("serving MCP on stdio",
		zap.String("backend", a.Config.Storage.Backend),
		zap.Bool("scheduler", a.Config.Scheduler.Enabled))
	err = server.ServeStdio(s.MCPServer())
	stopScheduler()
	if err != nil {
		a.Logger.Error("server error", zap.Error(err))
		a.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder          Start MCP server (communicates via stdio)
    mcp-reminder --help   Show this help

ENVIRONMENT:
    LEMBRETES_CONFIG  Path to the YAML config file
                      Default: ~/.lembretes/config.yaml
    LEMBRETES_*       Override a config key, e.g.
                      LEMBRETES_STORAGE_BACKEND=file
                      LEMBRETES_STORAGE_PATH=~/.lembretes/data.json
                      LEMBRETES_SCHEDULER_ENABLED=true also sends due
                      reminders to Telegram while the server runs

TOOLS:
    add_reminder       Add a new reminder (title, date_time, description, recurrence)
    list_reminders     List reminders ordered by due date (optional status filter)
    get_reminder       Get one reminder by id
    get_due_reminders  Get pending reminders that are due or overdue
    complete_reminder  Toggle completion; recurring reminders advance and keep a streak
    delete_reminder    Delete a reminder permanently
    update_reminder    Update reminder fields
    get_settings       Show theme, notification, sound and language settings
    update_settings    Change settings
    export_data        Export everything as a JSON backup document
    import_data        Restore a JSON backup document

CONFIGURATION:
    Register with an MCP client:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
