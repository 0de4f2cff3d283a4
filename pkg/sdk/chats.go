package chatdock

import (
	"context"
	"fmt"
	"time"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// ChatService manages chats and their messages.
type ChatService struct {
	svc chatUseCase
	obs *observer
}

// Create starts a new chat for an existing user. An empty name falls back to
// the default chat name.
func (s *ChatService) Create(ctx context.Context, userID, name string) (_ Chat, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat.create", start, err) }()

	c, err := s.svc.Create(ctx, userID, name)
	if err != nil {
		return Chat{}, fmt.Errorf("create chat: %w", err)
	}
	return fromInternalChat(c), nil
}

// Get retrieves a chat with its full message history.
func (s *ChatService) Get(ctx context.Context, chatID string) (_ Chat, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat.get", start, err) }()

	c, err := s.svc.Get(ctx, chatID)
	if err != nil {
		return Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return fromInternalChat(c), nil
}

// AppendMessage adds a message at the end of the chat's conversation.
func (s *ChatService) AppendMessage(ctx context.Context, chatID string, m Message) (_ Message, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat.append_message", start, err) }()

	stored, err := s.svc.AppendMessage(ctx, chatID, domain.Message{
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Sender:    m.Sender,
	})
	if err != nil {
		return Message{}, fmt.Errorf("append message: %w", err)
	}
	return Message{Content: stored.Content, Timestamp: stored.Timestamp, Sender: stored.Sender}, nil
}
