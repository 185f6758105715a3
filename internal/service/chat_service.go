package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/store"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

const maxChatBodyLength = 2000

// ChatService persists sidebar messages and fans them out on the event's
// channel.
type ChatService struct {
	store       *store.Store
	broadcaster Broadcaster
}

func NewChatService(st *store.Store, broadcaster Broadcaster) *ChatService {
	return &ChatService{
		store:       st,
		broadcaster: broadcaster,
	}
}

// PostMessage stores a chat line and broadcasts it. The broadcast is best
// effort; the call succeeds once the message is persisted.
func (s *ChatService) PostMessage(ctx context.Context, eventID string, userID *string, displayName, body string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(body) > maxChatBodyLength {
		// Back up to a rune boundary so the cut never leaves a partial
		// UTF-8 sequence in the stored body.
		cut := maxChatBodyLength
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}

	if _, err := s.store.Events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:          uuid.New().String(),
		EventID:     eventID,
		UserID:      userID,
		DisplayName: displayName,
		Body:        body,
	}
	if err := s.store.Chat.Create(ctx, msg); err != nil {
		return nil, err
	}

	out := &domain.ChatMessageOut{
		Type:        domain.MsgTypeChatMessage,
		MessageID:   msg.ID,
		EventID:     eventID,
		DisplayName: displayName,
		Body:        body,
		Timestamp:   time.Now().UnixMilli(),
	}
	if userID != nil {
		out.UserID = *userID
	}
	if err := s.broadcaster.Broadcast(eventID, out); err != nil {
		log.L().Warn().Err(err).Str(log.FieldEventID, eventID).Msg("chat broadcast failed")
	}

	return msg, nil
}

// History returns the most recent messages for an event in display order.
func (s *ChatService) History(ctx context.Context, eventID string, limit int) ([]domain.ChatMessage, error) {
	return s.store.Chat.ListByEvent(ctx, eventID, limit)
}
