package model

import "encoding/json"

type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
	LogSuccess LogLevel = "success"
)

// LogEntry is one workflow execution as shown on the logs screen.
type LogEntry struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
	Campaign  string   `json:"campaign"`
	Action    string   `json:"action"`
	Details   string   `json:"details,omitempty"`
}

// ExecutionDetail is passed through to the caller untouched.
type ExecutionDetail = json.RawMessage
