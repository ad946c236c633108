package api

import (
	"fmt"
	"strconv"

	"github.com/docker/threadview/pkg/chat"
)

type PaginationParams struct {
	Limit  int
	Before string
}

const DefaultLimit = 50

const MaxLimit = 200

// PaginationMetadata describes one page of a transcript.
type PaginationMetadata struct {
	TotalMessages int    `json:"total_messages"`
	Limit         int    `json:"limit"`
	PrevCursor    string `json:"prev_cursor,omitempty"`
}

// PaginateMessages windows a transcript for infinite scroll: without a
// cursor it returns the most recent messages, with a cursor it returns the
// page of older messages ending just before it.
func PaginateMessages(messages []chat.Message, params PaginationParams) ([]chat.Message, *PaginationMetadata, error) {
	totalCount := len(messages)

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var beforeIndex int
	var err error

	if params.Before != "" {
		beforeIndex, err = strconv.Atoi(params.Before)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid before cursor: %w", err)
		}
	}

	startIdx := 0
	endIdx := totalCount

	if params.Before != "" {
		endIdx = min(beforeIndex, totalCount)
		if endIdx <= 0 {
			return []chat.Message{}, &PaginationMetadata{
				TotalMessages: totalCount,
				Limit:         0,
			}, nil
		}
		actualStart := max(endIdx-limit, startIdx)
		startIdx = actualStart
	} else {
		actualStart := max(totalCount-limit, 0)
		startIdx = actualStart
		endIdx = totalCount
	}

	paginatedMessages := messages[startIdx:endIdx]

	metadata := &PaginationMetadata{
		TotalMessages: totalCount,
		Limit:         len(paginatedMessages),
	}

	// Only set cursor if there are more (older) messages available
	if len(paginatedMessages) > 0 && startIdx > 0 {
		metadata.PrevCursor = strconv.Itoa(startIdx)
	}

	return paginatedMessages, metadata, nil
}
