package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
)

func TestConvertMessages_TextRoles(t *testing.T) {
	now := time.Now()
	messages := []chat.Message{
		&chat.TextMessage{ID: "s1", Role: chat.MessageRoleSystem, Content: "be nice", CreatedAt: now},
		&chat.TextMessage{ID: "u1", Role: chat.MessageRoleUser, Content: "hi", CreatedAt: now},
		&chat.TextMessage{ID: "a1", Role: chat.MessageRoleAssistant, Content: "hello", CreatedAt: now},
	}

	outbound := ConvertMessages(messages)
	require.Len(t, outbound, 3)

	system, ok := outbound[0].(*api.SystemMessage)
	require.True(t, ok)
	assert.Equal(t, "be nice", system.Content)

	user, ok := outbound[1].(*api.UserMessage)
	require.True(t, ok)
	assert.Equal(t, "hi", user.Content)

	assistant, ok := outbound[2].(*api.AssistantMessage)
	require.True(t, ok)
	assert.Equal(t, "hello", assistant.Content)
}

func TestConvertMessages_ToolCalls(t *testing.T) {
	messages := []chat.Message{
		&chat.ToolCallMessage{
			ID: "m1",
			ToolCalls: []chat.ToolCallRecord{
				{ID: "t1", Name: "search", Arguments: `{"q":"x"}`, Status: chat.ToolCallStatusCompleted, Result: "found it"},
				{ID: "t2", Name: "fetch", Arguments: `{"url":"y"}`, Status: chat.ToolCallStatusPending},
			},
		},
		&chat.TextMessage{ID: "a1", Role: chat.MessageRoleAssistant, Content: "done"},
	}

	outbound := ConvertMessages(messages)
	require.Len(t, outbound, 3)

	assistant, ok := outbound[0].(*api.AssistantMessage)
	require.True(t, ok)
	require.Len(t, assistant.ToolCalls, 2)
	assert.Equal(t, "t1", assistant.ToolCalls[0].ID)
	assert.Equal(t, "search", assistant.ToolCalls[0].Function.Name)
	assert.Equal(t, `{"q":"x"}`, assistant.ToolCalls[0].Function.Arguments)
	assert.Equal(t, "t2", assistant.ToolCalls[1].ID)

	// Only the completed call yields a result message, directly after the
	// assistant message.
	result, ok := outbound[1].(*api.ToolResultMessage)
	require.True(t, ok)
	assert.Equal(t, "t1", result.ToolCallID)
	assert.Equal(t, "found it", result.Content)

	_, ok = outbound[2].(*api.AssistantMessage)
	assert.True(t, ok)
}

func TestConvertMessages_WidgetEmbedsName(t *testing.T) {
	messages := []chat.Message{
		&chat.WidgetMessage{ID: "w1", Widget: "stock-ticker"},
	}

	outbound := ConvertMessages(messages)
	require.Len(t, outbound, 1)

	assistant, ok := outbound[0].(*api.AssistantMessage)
	require.True(t, ok)
	assert.Contains(t, assistant.Content, "stock-ticker")
}

func TestConvertMessages_DropsTransientMessages(t *testing.T) {
	messages := []chat.Message{
		&chat.ErrorMessage{ID: "e1", Content: "boom"},
		&chat.TextMessage{ID: "u1", Role: chat.MessageRoleUser, Content: "hi"},
		&chat.LoadingMessage{ID: "l1"},
	}

	outbound := ConvertMessages(messages)
	require.Len(t, outbound, 1)

	user, ok := outbound[0].(*api.UserMessage)
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)
}

func TestConvertMessages_Empty(t *testing.T) {
	assert.Empty(t, ConvertMessages(nil))
}
