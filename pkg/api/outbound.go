package api

// OutboundMessage is a message shape consumed by the downstream agent
// service. The set of variants is closed: UserMessage, AssistantMessage,
// SystemMessage and ToolResultMessage.
type OutboundMessage interface {
	isOutbound()
}

// ToolCall is the OpenAI-like tool call descriptor carried by assistant
// messages.
type ToolCall struct {
	ID       string       `json:"id"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// UserMessage is an outbound user turn.
type UserMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (m *UserMessage) isOutbound() {}

// AssistantMessage is an outbound assistant turn, optionally carrying tool
// call descriptors.
type AssistantMessage struct {
	ID        string     `json:"id"`
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

func (m *AssistantMessage) isOutbound() {}

// SystemMessage is an outbound system turn.
type SystemMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (m *SystemMessage) isOutbound() {}

// ToolResultMessage carries the output of one completed tool call.
type ToolResultMessage struct {
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
}

func (m *ToolResultMessage) isOutbound() {}
