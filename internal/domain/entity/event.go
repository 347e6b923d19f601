package entity

import (
	"encoding/json"
	"time"
)

type LogEventKind string

const (
	EventToolUse    LogEventKind = "tool_use"
	EventToolResult LogEventKind = "tool_result"
	EventMessage    LogEventKind = "message"
	EventError      LogEventKind = "error"
)

// AgentLogEvent is one observable step of a turn, streamed to the caller
// for live progress display. Append-only and purely observational.
type AgentLogEvent struct {
	Kind      LogEventKind    `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	ToolName  ToolName        `json:"tool,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	Output    string          `json:"output,omitempty"`
	Text      string          `json:"text,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ClearRevisedFunc deletes every revised document in a session and reports
// how many were removed. Injected by the session owner; the agent core
// never mutates the catalogue directly.
type ClearRevisedFunc func(sessionID string) (removed int, err error)

// DeleteDocumentsFunc deletes the requested revised documents and skips
// originals, reporting both counts.
type DeleteDocumentsFunc func(sessionID string, ids []string) (deleted, skippedOriginals int, err error)
