package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the author of a message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ToolCallStatus is the lifecycle state of a single tool call
type ToolCallStatus string

const (
	ToolCallStatusPending   ToolCallStatus = "pending"
	ToolCallStatusExecuting ToolCallStatus = "executing"
	ToolCallStatusCompleted ToolCallStatus = "completed"
	ToolCallStatusFailed    ToolCallStatus = "failed"
)

// Message is one entry in a thread transcript. The set of variants is
// closed: TextMessage, ToolCallMessage, WidgetMessage, ErrorMessage and
// LoadingMessage. Identity is the ID alone; two messages with the same ID
// are the same message regardless of field contents.
type Message interface {
	isMessage()
	GetID() string
	GetCreatedAt() time.Time
}

// TextMessage is a complete text turn from a user, assistant or the system.
type TextMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Thinking  string      `json:"thinking,omitempty"`
	Streaming bool        `json:"streaming,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (m *TextMessage) isMessage()              {}
func (m *TextMessage) GetID() string           { return m.ID }
func (m *TextMessage) GetCreatedAt() time.Time { return m.CreatedAt }

// ToolCallRecord is one tool invocation carried by a ToolCallMessage,
// in call order.
type ToolCallRecord struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments string         `json:"arguments"`
	Status    ToolCallStatus `json:"status"`
	Result    string         `json:"result,omitempty"`
}

// ToolCallMessage is an assistant turn made of one or more tool calls.
type ToolCallMessage struct {
	ID        string           `json:"id"`
	ToolCalls []ToolCallRecord `json:"tool_calls"`
	CreatedAt time.Time        `json:"created_at"`
}

func (m *ToolCallMessage) isMessage()              {}
func (m *ToolCallMessage) GetID() string           { return m.ID }
func (m *ToolCallMessage) GetCreatedAt() time.Time { return m.CreatedAt }

// WidgetMessage is an assistant turn rendered as a generative widget rather
// than text. Payload is kept opaque for the rendering layer.
type WidgetMessage struct {
	ID        string          `json:"id"`
	Widget    string          `json:"widget"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (m *WidgetMessage) isMessage()              {}
func (m *WidgetMessage) GetID() string           { return m.ID }
func (m *WidgetMessage) GetCreatedAt() time.Time { return m.CreatedAt }

// ErrorMessage is a transient, client-side error notice. It is never sent
// to a backend run.
type ErrorMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ErrorMessage) isMessage()              {}
func (m *ErrorMessage) GetID() string           { return m.ID }
func (m *ErrorMessage) GetCreatedAt() time.Time { return m.CreatedAt }

// LoadingMessage is a transient placeholder shown while a run is in flight.
type LoadingMessage struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *LoadingMessage) isMessage()              {}
func (m *LoadingMessage) GetID() string           { return m.ID }
func (m *LoadingMessage) GetCreatedAt() time.Time { return m.CreatedAt }

// NewUserMessage builds a user text message with a fresh id, for the
// outgoing send path.
func NewUserMessage(content string) *TextMessage {
	return &TextMessage{
		ID:        uuid.New().String(),
		Role:      MessageRoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewErrorMessage builds a transient error notice.
func NewErrorMessage(content string) *ErrorMessage {
	return &ErrorMessage{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewLoadingMessage builds a transient loading placeholder.
func NewLoadingMessage() *LoadingMessage {
	return &LoadingMessage{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
}
