package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	"github.com/kovan-labs/chatdock/internal/logger"
)

// Service handles user CRUD operations. User IDs are normalized at this
// boundary; everything below works with normalized IDs only.
type Service struct {
	repo  Repository
	chats ChatReader
}

// New creates a user service.
func New(repo Repository, chats ChatReader) *Service {
	return &Service{repo: repo, chats: chats}
}

// Create stores a new user with no chats. Fails with domain.ErrAlreadyExists
// if the user is present.
func (s *Service) Create(ctx context.Context, userID, name string) (domain.User, error) {
	u, err := domain.NewUser(domain.NormalizeUserID(userID), name)
	if err != nil {
		return domain.User{}, fmt.Errorf("validate user: %w", err)
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetOrCreate returns the user, lazily creating one on first lookup with the
// user ID doubling as the display name.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (domain.User, error) {
	id := domain.NormalizeUserID(userID)

	u, err := s.repo.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	u = domain.ReconstructUser(id, id, []string{})
	if err := s.repo.Insert(ctx, u); err != nil {
		// Lost a creation race; the stored document wins.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.repo.Get(ctx, id) //nolint:wrapcheck // direct passthrough
		}
		return domain.User{}, fmt.Errorf("create user lazily: %w", err)
	}
	return u, nil
}

// ListChats returns the user's chats in creation order. A fetch failure for
// one chat is logged and skipped rather than failing the whole request:
// partial results beat all-or-nothing on this read path.
func (s *Service) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	u, err := s.repo.Get(ctx, domain.NormalizeUserID(userID))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	chats := make([]domain.Chat, 0, len(u.ChatIDs()))
	for _, chatID := range u.ChatIDs() {
		c, err := s.chats.Get(ctx, chatID)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping unfetchable chat",
				zap.String("chat_id", chatID),
				zap.String("user_id", u.UserID()),
				zap.Error(err),
			)
			continue
		}
		chats = append(chats, c)
	}
	return chats, nil
}
