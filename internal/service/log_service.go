package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

var flowNames = map[string]string{
	"leads":  "Leads Flow",
	"bundle": "Bundle Flow",
}

type LogFilter struct {
	Flow   string
	Search string
	Level  string
}

type LogService struct {
	Executions ExecutionSource
	Flows      config.FlowConfig
}

func (s *LogService) workflow(flow string) (id, name string, err error) {
	if flow == "" {
		flow = "leads"
	}
	id, ok := s.Flows.WorkflowID(flow)
	if !ok {
		return "", "", appErrors.NewValidation("unknown flow: %s", flow)
	}
	return id, flowNames[flow], nil
}

// List maps the flow's executions to log entries, then applies the search
// and level filters. A failed fetch is returned as an error; no
// placeholder entries are made up.
func (s *LogService) List(ctx context.Context, f LogFilter) ([]model.LogEntry, error) {
	level := strings.ToLower(strings.TrimSpace(f.Level))
	if level != "" && level != "all" {
		switch model.LogLevel(level) {
		case model.LogInfo, model.LogWarning, model.LogError, model.LogSuccess:
		default:
			return nil, appErrors.NewValidation("unknown level: %s", f.Level)
		}
	}
	id, name, err := s.workflow(f.Flow)
	if err != nil {
		return nil, err
	}

	execs, err := s.Executions.ListExecutions(ctx, id)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	entries := make([]model.LogEntry, 0, len(execs))
	for _, e := range execs {
		entry := toLogEntry(name, e)
		if level != "" && level != "all" && string(entry.Level) != level {
			continue
		}
		if search != "" && !matches(entry, search) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *LogService) Get(ctx context.Context, flow, id string) (model.ExecutionDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.NewValidation("Execution ID is required")
	}
	workflowID, _, err := s.workflow(flow)
	if err != nil {
		return nil, err
	}
	return s.Executions.GetExecution(ctx, id, workflowID)
}

// toLogEntry reads an unfinished run with a stop time as completed and one
// without as still running. Anything else was stopped.
func toLogEntry(flowName string, e webhook.Execution) model.LogEntry {
	status, level := "stopped", model.LogError
	switch {
	case !e.Finished && e.StoppedAt != nil:
		status, level = "completed", model.LogSuccess
	case !e.Finished && e.StoppedAt == nil:
		status, level = "running", model.LogWarning
	}

	entry := model.LogEntry{
		ID:        string(e.ID),
		Timestamp: "Unknown",
		Level:     level,
		Message:   fmt.Sprintf("%s execution %s", flowName, status),
		Campaign:  fmt.Sprintf("%s %s", flowName, or(e.Mode, "Execution")),
		Action:    "Mode: " + or(e.Mode, "Unknown"),
		Details:   "In progress",
	}
	if e.StartedAt != nil {
		entry.Timestamp = e.StartedAt.UTC().Format(time.RFC3339)
	}
	if e.StoppedAt != nil {
		entry.Details = "Stopped at " + e.StoppedAt.UTC().Format(time.RFC3339)
	}
	return entry
}

func matches(e model.LogEntry, needle string) bool {
	for _, field := range []string{e.Message, e.Campaign, e.Action, e.Details} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
