package chat

import (
	"context"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// Service handles chat CRUD and message appends.
type Service struct {
	repo  Repository
	users UserStore
}

// New creates a chat service.
func New(repo Repository, users UserStore) *Service {
	return &Service{repo: repo, users: users}
}

// Create stores a new chat under an existing user and records the chat ID on
// the user document.
//
// The user update is a read-modify-write with no transactional guard: two
// concurrent creates for the same user can interleave so that one chat_ids
// append is lost. Known hazard, left unfixed; a compare-and-swap here would
// change observable semantics.
func (s *Service) Create(ctx context.Context, userID, name string) (domain.Chat, error) {
	id := domain.NormalizeUserID(userID)

	u, err := s.users.Get(ctx, id)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("get user: %w", err)
	}

	c := domain.NewChat(id, name)
	if err := s.repo.Insert(ctx, c); err != nil {
		return domain.Chat{}, fmt.Errorf("insert chat: %w", err)
	}

	u.AppendChatID(c.ChatID())
	if err := s.users.Replace(ctx, u); err != nil {
		return domain.Chat{}, fmt.Errorf("record chat on user: %w", err)
	}

	return c, nil
}

// Get returns a chat by ID.
func (s *Service) Get(ctx context.Context, chatID string) (domain.Chat, error) {
	c, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return c, nil
}

// AppendMessage adds a message at the end of the chat's conversation and
// returns it. Append-only: existing messages are never updated or removed.
func (s *Service) AppendMessage(ctx context.Context, chatID string, m domain.Message) (domain.Message, error) {
	if m.Content == "" {
		return domain.Message{}, fmt.Errorf("message content is required")
	}

	c, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("get chat: %w", err)
	}

	c.AppendMessage(m)
	if err := s.repo.Replace(ctx, c); err != nil {
		return domain.Message{}, fmt.Errorf("replace chat: %w", err)
	}

	return m, nil
}
