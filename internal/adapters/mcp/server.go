// Package mcp provides the MCP (Model Context Protocol) server, exposing
// schedules and session control as tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"minder/internal/domain"
	"minder/internal/services"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server    *server.MCPServer
	schedules *services.ScheduleService
	sessions  *services.SessionService
}

// NewServer creates a new MCP server instance.
func NewServer(schedules *services.ScheduleService, sessions *services.SessionService) *Server {
	s := &Server{
		schedules: schedules,
		sessions:  sessions,
	}

	s.server = server.NewMCPServer(
		"minder",
		"1.0.0",
		server.WithLogging(),
	)
	s.registerTools()
	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"list_schedules",
			mcp.WithDescription("List all schedules with their anchor mode and activity count"),
		),
		s.handleListSchedules,
	)

	statusTool := mcp.NewTool(
		"get_status",
		mcp.WithDescription("Get the evaluated status of a schedule: per-activity state, countdowns, and whole-plan progress"),
		mcp.WithString(
			"schedule",
			mcp.Required(),
			mcp.Description("The name of the schedule"),
		),
	)
	s.server.AddTool(statusTool, s.handleGetStatus)

	startTool := mcp.NewTool(
		"start_session",
		mcp.WithDescription("Start a session for a schedule; reports skipped activities on a late start"),
		mcp.WithString(
			"schedule",
			mcp.Required(),
			mcp.Description("The name of the schedule"),
		),
	)
	s.server.AddTool(startTool, s.handleStartSession)

	stopTool := mcp.NewTool(
		"stop_session",
		mcp.WithDescription("Stop a schedule's session and cancel its reminders"),
		mcp.WithString(
			"schedule",
			mcp.Required(),
			mcp.Description("The name of the schedule"),
		),
	)
	s.server.AddTool(stopTool, s.handleStopSession)

	rolloverTool := mcp.NewTool(
		"accept_rollover",
		mcp.WithDescription("Accept a pending proposal to re-schedule today's passed reminders for tomorrow"),
		mcp.WithString(
			"schedule",
			mcp.Required(),
			mcp.Description("The name of the schedule"),
		),
	)
	s.server.AddTool(rolloverTool, s.handleAcceptRollover)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

func (s *Server) scheduleByName(ctx context.Context, request mcp.CallToolRequest) (*domain.Schedule, *mcp.CallToolResult, error) {
	name, err := request.RequireString("schedule")
	if err != nil {
		return nil, mcp.NewToolResultError("schedule is required: " + err.Error()), nil
	}
	schedule, err := s.schedules.GetByName(ctx, name)
	if errors.Is(err, domain.ErrScheduleNotFound) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("no schedule named %q", name)), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return schedule, nil, nil
}

// handleListSchedules handles the list_schedules tool.
func (s *Server) handleListSchedules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	var list []map[string]interface{}
	for _, schedule := range schedules {
		entry := map[string]interface{}{
			"name":           schedule.Name,
			"mode":           string(schedule.Mode),
			"activities":     len(schedule.Activities),
			"total_duration": schedule.TotalDuration().String(),
		}
		if schedule.Deadline != nil {
			entry["deadline"] = schedule.Deadline.String()
		}
		list = append(list, entry)
	}

	return marshalResult(map[string]interface{}{
		"schedules":   list,
		"total_count": len(list),
	})
}

// handleGetStatus handles the get_status tool.
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedule, toolErr, err := s.scheduleByName(ctx, request)
	if toolErr != nil || err != nil {
		return toolErr, err
	}

	snap, err := s.sessions.Snapshot(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate schedule: %w", err)
	}

	var activities []map[string]interface{}
	for _, st := range snap.Statuses {
		entry := map[string]interface{}{
			"name":   st.Name,
			"state":  string(st.State),
			"starts": st.Window.Start.Format("2006-01-02T15:04:05"),
			"ends":   st.Window.End.Format("2006-01-02T15:04:05"),
		}
		if st.Skipped {
			entry["skipped"] = true
		}
		if st.State == domain.StateCurrent {
			entry["remaining"] = st.Remaining.String()
		}
		if st.State == domain.StateUpcoming {
			entry["until_start"] = st.UntilStart.String()
		}
		activities = append(activities, entry)
	}

	result := map[string]interface{}{
		"schedule":   schedule.Name,
		"active":     snap.Active,
		"progress":   snap.Progress,
		"activities": activities,
	}
	if !snap.Anchor.IsZero() {
		result["deadline"] = snap.Anchor.Format("2006-01-02T15:04:05")
	}
	return marshalResult(result)
}

// handleStartSession handles the start_session tool.
func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedule, toolErr, err := s.scheduleByName(ctx, request)
	if toolErr != nil || err != nil {
		return toolErr, err
	}

	res, err := s.sessions.Start(ctx, schedule)
	var tooLate *domain.TooLateError
	if errors.As(err, &tooLate) {
		return mcp.NewToolResultError(tooLate.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"started":    true,
		"started_at": res.Session.StartedAt.Format("2006-01-02T15:04:05"),
		"skipped":    res.Skipped,
	}
	if res.Rollover != nil {
		result["rollover_pending"] = len(res.Rollover.Boundaries)
	}
	return marshalResult(result)
}

// handleStopSession handles the stop_session tool.
func (s *Server) handleStopSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedule, toolErr, err := s.scheduleByName(ctx, request)
	if toolErr != nil || err != nil {
		return toolErr, err
	}

	if err := s.sessions.Stop(ctx, schedule.ID); err != nil {
		return nil, fmt.Errorf("failed to stop session: %w", err)
	}
	return marshalResult(map[string]interface{}{"stopped": true})
}

// handleAcceptRollover handles the accept_rollover tool.
func (s *Server) handleAcceptRollover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedule, toolErr, err := s.scheduleByName(ctx, request)
	if toolErr != nil || err != nil {
		return toolErr, err
	}

	count, err := s.sessions.AcceptRollover(ctx, schedule)
	if errors.Is(err, domain.ErrNoPendingRollover) {
		return mcp.NewToolResultError("no pending rollover for this schedule"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept rollover: %w", err)
	}
	return marshalResult(map[string]interface{}{"scheduled": count})
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
