package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/lembretes/internal/recurrence"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	service   *Service
}

// NewServer creates a new Reminder MCP server backed by the given service.
func NewServer(service *Service) *Server {
	s := &Server{
		service: service,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with a title and a future due date/time, optionally recurring"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title (max 100 characters)")),
			mcp.WithString("date_time", mcp.Required(), mcp.Description("Due date/time in RFC3339 format (e.g. 2025-01-15T09:00:00-03:00)")),
			mcp.WithString("description", mcp.Description("Optional description (max 500 characters)")),
			mcp.WithBoolean("is_recurring", mcp.Description("Whether the reminder repeats")),
			mcp.WithString("recurring_type", mcp.Description("Recurrence: daily, weekly, monthly (default: daily when is_recurring)")),
			mcp.WithBoolean("notification_enabled", mcp.Description("Send a notification when due (default: true)")),
		),
		s.handleAddReminder,
	)

	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders ordered by due date, optionally filtered by status (pending or completed)"),
			mcp.WithString("status", mcp.Description("Filter by status: pending, completed, or empty for all")),
		),
		s.handleListReminders,
	)

	// get_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder",
			mcp.WithDescription("Get a single reminder by ID"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleGetReminder,
	)

	// get_due_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("get_due_reminders",
			mcp.WithDescription("Get all pending reminders that are due now or overdue"),
		),
		s.handleGetDueReminders,
	)

	// complete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Toggle a reminder's completion. Recurring reminders move to their next occurrence and keep a streak"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleCompleteReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields (title, description, date_time, recurrence, notifications)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("date_time", mcp.Description("New due date/time in RFC3339 format")),
			mcp.WithString("recurring_type", mcp.Description("New recurrence: daily, weekly, monthly, or none")),
			mcp.WithBoolean("notification_enabled", mcp.Description("Enable or disable notifications")),
		),
		s.handleUpdateReminder,
	)

	// get_settings
	s.mcpServer.AddTool(
		mcp.NewTool("get_settings",
			mcp.WithDescription("Get application settings (theme, notifications, sound, language)"),
		),
		s.handleGetSettings,
	)

	// update_settings
	s.mcpServer.AddTool(
		mcp.NewTool("update_settings",
			mcp.WithDescription("Update application settings; omitted fields keep their current value"),
			mcp.WithString("theme", mcp.Description("Theme: light, dark, auto")),
			mcp.WithBoolean("notifications_enabled", mcp.Description("Globally enable notifications")),
			mcp.WithBoolean("sound_enabled", mcp.Description("Play sound with notifications")),
			mcp.WithString("language", mcp.Description("Language: pt, en")),
		),
		s.handleUpdateSettings,
	)

	// export_data
	s.mcpServer.AddTool(
		mcp.NewTool("export_data",
			mcp.WithDescription("Export all reminders and settings as a versioned JSON backup document"),
		),
		s.handleExportData,
	)

	// import_data
	s.mcpServer.AddTool(
		mcp.NewTool("import_data",
			mcp.WithDescription("Restore reminders and settings from a backup document produced by export_data"),
			mcp.WithString("document", mcp.Required(), mcp.Description("JSON backup document")),
		),
		s.handleImportData,
	)
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateTimeStr := req.GetString("date_time", "")
	if dateTimeStr == "" {
		return mcp.NewToolResultError("date_time is required"), nil
	}
	dateTime, err := time.Parse(time.RFC3339, dateTimeStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date_time format: %v (use RFC3339, e.g. 2025-01-15T09:00:00Z)", err)), nil
	}

	in := Input{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		DateTime:    dateTime,
		IsRecurring: req.GetBool("is_recurring", false),
	}
	if in.IsRecurring {
		in.RecurringType = recurrence.Type(req.GetString("recurring_type", string(recurrence.Daily)))
	}
	notify := req.GetBool("notification_enabled", true)
	in.NotificationEnabled = &notify

	added, err := s.service.Create(ctx, in)
	if err != nil {
		return toolError("failed to add reminder", err), nil
	}
	return jsonResult(added), nil
}

func (s *Server) handleListReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, err := s.service.List(ctx, req.GetString("status", StatusAll))
	if err != nil {
		return toolError("failed to list reminders", err), nil
	}

	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(reminders), nil
}

func (s *Server) handleGetReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	r, err := s.service.Get(ctx, id)
	if err != nil {
		return toolError("failed to get reminder", err), nil
	}
	return jsonResult(r), nil
}

func (s *Server) handleGetDueReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders := s.service.Due(ctx)
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No due reminders."), nil
	}
	return jsonResult(reminders), nil
}

func (s *Server) handleCompleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	updated, err := s.service.ToggleComplete(ctx, id)
	if err != nil {
		return toolError("failed to complete reminder", err), nil
	}
	return jsonResult(updated), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.service.Delete(ctx, id); err != nil {
		return toolError("failed to delete reminder", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (s *Server) handleUpdateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	var fields UpdateFields
	args := req.GetArguments()

	if v := req.GetString("title", ""); v != "" {
		fields.Title = &v
	}
	if _, ok := args["description"]; ok {
		v := req.GetString("description", "")
		fields.Description = &v
	}
	if v := req.GetString("date_time", ""); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date_time: %v", err)), nil
		}
		fields.DateTime = &t
	}
	if v := req.GetString("recurring_type", ""); v != "" {
		recurring := v != "none"
		fields.IsRecurring = &recurring
		if recurring {
			typ := recurrence.Type(v)
			fields.RecurringType = &typ
		}
	}
	if _, ok := args["notification_enabled"]; ok {
		v := req.GetBool("notification_enabled", true)
		fields.NotificationEnabled = &v
	}

	updated, err := s.service.Update(ctx, id, fields)
	if err != nil {
		return toolError("failed to update reminder", err), nil
	}
	return jsonResult(updated), nil
}

func (s *Server) handleGetSettings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.service.Settings(ctx)), nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := s.service.Settings(ctx)
	args := req.GetArguments()

	if v := req.GetString("theme", ""); v != "" {
		settings.Theme = Theme(v)
	}
	if v := req.GetString("language", ""); v != "" {
		settings.Language = recurrence.Language(v)
	}
	if _, ok := args["notifications_enabled"]; ok {
		settings.NotificationsEnabled = req.GetBool("notifications_enabled", settings.NotificationsEnabled)
	}
	if _, ok := args["sound_enabled"]; ok {
		settings.SoundEnabled = req.GetBool("sound_enabled", settings.SoundEnabled)
	}

	if err := s.service.UpdateSettings(ctx, settings); err != nil {
		return toolError("failed to update settings", err), nil
	}
	return jsonResult(settings), nil
}

func (s *Server) handleExportData(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.service.Export(ctx)
	if err != nil {
		return toolError("failed to export data", err), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func (s *Server) handleImportData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := req.GetString("document", "")
	if doc == "" {
		return mcp.NewToolResultError("document is required"), nil
	}

	if err := s.service.Import(ctx, doc); err != nil {
		return toolError("failed to import data", err), nil
	}
	return mcp.NewToolResultText("Data imported."), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(output))
}

func toolError(prefix string, err error) *mcp.CallToolResult {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}
