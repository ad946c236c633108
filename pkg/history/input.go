package history

import (
	"fmt"
	"time"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
)

// ExtractInput pulls the user-authored messages out of a run's input
// payload. The input may echo prior assistant or system turns; only user
// entries are kept. A role that is present but not "user" drops the entry,
// even when malformed. Only an entirely absent role field defaults to user.
func ExtractInput(input *api.RunInput, at time.Time) []chat.Message {
	if input == nil {
		return nil
	}

	var messages []chat.Message
	for i, entry := range input.Messages {
		if entry.Role != nil && *entry.Role != string(chat.MessageRoleUser) {
			continue
		}

		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("user-%d", i)
		}

		messages = append(messages, &chat.TextMessage{
			ID:        id,
			Role:      chat.MessageRoleUser,
			Content:   entry.Content,
			CreatedAt: at,
		})
	}

	return messages
}
