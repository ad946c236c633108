// Package api holds the wire shapes exchanged with the thread backend and
// the downstream agent service, plus the error taxonomy shared by the
// client and the history layer.
package api

import (
	"encoding/json"
	"time"
)

// ThreadResponse is the thread metadata payload: the registry of runs that
// make up one conversation thread.
type ThreadResponse struct {
	RoomID   string             `json:"room_id"`
	ThreadID string             `json:"thread_id"`
	Runs     map[string]RunInfo `json:"runs"`
}

// RunInfo is one entry of the run registry. A nil Finished means the run is
// still in progress.
type RunInfo struct {
	RunID    string     `json:"run_id"`
	Created  time.Time  `json:"created"`
	Finished *time.Time `json:"finished,omitempty"`
}

// RunResponse is the per-run detail payload: the event log plus the input
// the run was started with.
type RunResponse struct {
	RunID    string    `json:"run_id"`
	RunInput *RunInput `json:"run_input,omitempty"`
	Events   []Event   `json:"events"`
}

// RunInput carries the messages the caller supplied when starting the run.
type RunInput struct {
	Messages []InputMessage `json:"messages"`
}

// InputMessage is a loosely-typed message descriptor inside a run input.
// Role is a pointer because an absent role and an empty role are treated
// differently by the extractor.
type InputMessage struct {
	ID      string  `json:"id,omitempty"`
	Role    *string `json:"role,omitempty"`
	Content string  `json:"content"`
}

// Event type constants. These are wire-protocol names, stable across
// backend versions.
const (
	EventMessageStart    = "message-start"
	EventMessageContent  = "message-content"
	EventMessageThinking = "message-thinking"
	EventMessageEnd      = "message-end"
	EventToolCallStart   = "tool-call-start"
	EventToolCallArgs    = "tool-call-args"
	EventToolCallEnd     = "tool-call-end"
	EventWidget          = "widget"
)

// Event is one entry of a run's event log. Which fields are set depends on
// Type; unknown types are skipped by the reducer.
type Event struct {
	Type       string          `json:"type"`
	MessageID  string          `json:"messageId"`
	Role       string          `json:"role,omitempty"`
	Delta      string          `json:"delta,omitempty"`
	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Result     string          `json:"result,omitempty"`
	Widget     string          `json:"widget,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
