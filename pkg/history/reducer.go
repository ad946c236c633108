// Package history reconstructs a thread's transcript from the run registry
// and per-run event logs, caching run fetches along the way.
package history

import (
	"strings"
	"time"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
)

// builder accumulates one in-flight message while folding an event log.
type builder struct {
	role      chat.MessageRole
	content   strings.Builder
	thinking  strings.Builder
	toolCalls []chat.ToolCallRecord
}

// Reduce folds one run's ordered event log into complete domain messages,
// stamped with the run's creation time. Messages are emitted in end-event
// order. A message that was started but never ended yields nothing: a run
// cut off mid-stream degrades to omission, never to an error.
func Reduce(events []api.Event, at time.Time) []chat.Message {
	open := make(map[string]*builder)

	var messages []chat.Message
	for _, event := range events {
		if event.MessageID == "" {
			continue
		}

		switch event.Type {
		case api.EventMessageStart:
			role := chat.MessageRole(event.Role)
			if role == "" {
				role = chat.MessageRoleAssistant
			}
			open[event.MessageID] = &builder{role: role}

		case api.EventMessageContent:
			if b, ok := open[event.MessageID]; ok {
				b.content.WriteString(event.Delta)
			}

		case api.EventMessageThinking:
			if b, ok := open[event.MessageID]; ok {
				b.thinking.WriteString(event.Delta)
			}

		case api.EventToolCallStart:
			b, ok := open[event.MessageID]
			if !ok {
				b = &builder{role: chat.MessageRoleAssistant}
				open[event.MessageID] = b
			}
			b.toolCalls = append(b.toolCalls, chat.ToolCallRecord{
				ID:     event.ToolCallID,
				Name:   event.ToolName,
				Status: chat.ToolCallStatusPending,
			})

		case api.EventToolCallArgs:
			if b, ok := open[event.MessageID]; ok {
				if record := b.findToolCall(event.ToolCallID); record != nil {
					record.Arguments += event.Delta
				}
			}

		case api.EventToolCallEnd:
			if b, ok := open[event.MessageID]; ok {
				if record := b.findToolCall(event.ToolCallID); record != nil {
					record.Status = chat.ToolCallStatusCompleted
					record.Result = event.Result
				}
			}

		case api.EventMessageEnd:
			b, ok := open[event.MessageID]
			if !ok {
				continue
			}
			delete(open, event.MessageID)
			messages = append(messages, b.finalize(event.MessageID, at))

		case api.EventWidget:
			messages = append(messages, &chat.WidgetMessage{
				ID:        event.MessageID,
				Widget:    event.Widget,
				Payload:   event.Payload,
				CreatedAt: at,
			})
		}
	}

	return messages
}

func (b *builder) findToolCall(id string) *chat.ToolCallRecord {
	for i := range b.toolCalls {
		if b.toolCalls[i].ID == id {
			return &b.toolCalls[i]
		}
	}
	return nil
}

func (b *builder) finalize(id string, at time.Time) chat.Message {
	if len(b.toolCalls) > 0 {
		return &chat.ToolCallMessage{
			ID:        id,
			ToolCalls: b.toolCalls,
			CreatedAt: at,
		}
	}
	return &chat.TextMessage{
		ID:        id,
		Role:      b.role,
		Content:   b.content.String(),
		Thinking:  b.thinking.String(),
		CreatedAt: at,
	}
}
