package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

const maxChatPageSize = 100

// ChatMessageStore persists chat sidebar messages.
type ChatMessageStore struct {
	db *gorm.DB
}

func (s *ChatMessageStore) Create(ctx context.Context, msg *domain.ChatMessage) error {
	return translate(s.db.WithContext(ctx).Create(msg).Error)
}

// ListByEvent returns the most recent messages for an event, oldest first.
func (s *ChatMessageStore) ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > maxChatPageSize {
		limit = maxChatPageSize
	}

	var messages []domain.ChatMessage
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}

	// Reverse to chronological order for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
