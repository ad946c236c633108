// Package protocol converts domain messages into the wire message shapes
// the downstream agent service expects.
package protocol

import (
	"fmt"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
)

// ConvertMessages maps a message list to outbound wire messages, preserving
// order. A tool-call message yields one assistant message carrying every
// descriptor, immediately followed by one tool-result message per completed
// call. Transient error and loading messages are never forwarded.
func ConvertMessages(messages []chat.Message) []api.OutboundMessage {
	outbound := make([]api.OutboundMessage, 0, len(messages))

	for _, message := range messages {
		switch msg := message.(type) {
		case *chat.TextMessage:
			outbound = append(outbound, convertText(msg))

		case *chat.ToolCallMessage:
			toolCalls := make([]api.ToolCall, len(msg.ToolCalls))
			for i, record := range msg.ToolCalls {
				toolCalls[i] = api.ToolCall{
					ID: record.ID,
					Function: api.FunctionCall{
						Name:      record.Name,
						Arguments: record.Arguments,
					},
				}
			}
			outbound = append(outbound, &api.AssistantMessage{
				ID:        msg.ID,
				ToolCalls: toolCalls,
			})
			for _, record := range msg.ToolCalls {
				if record.Status != chat.ToolCallStatusCompleted {
					continue
				}
				outbound = append(outbound, &api.ToolResultMessage{
					ToolCallID: record.ID,
					Content:    record.Result,
				})
			}

		case *chat.WidgetMessage:
			outbound = append(outbound, &api.AssistantMessage{
				ID:      msg.ID,
				Content: fmt.Sprintf("[Generated a %s widget]", msg.Widget),
			})

		case *chat.ErrorMessage, *chat.LoadingMessage:
			// Transient, client-side only.
		}
	}

	return outbound
}

func convertText(msg *chat.TextMessage) api.OutboundMessage {
	switch msg.Role {
	case chat.MessageRoleSystem:
		return &api.SystemMessage{ID: msg.ID, Content: msg.Content}
	case chat.MessageRoleAssistant:
		return &api.AssistantMessage{ID: msg.ID, Content: msg.Content}
	default:
		return &api.UserMessage{ID: msg.ID, Content: msg.Content}
	}
}
