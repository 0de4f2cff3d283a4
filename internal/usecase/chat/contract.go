package chat

import (
	"context"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// Repository defines the storage contract for chat documents.
type Repository interface {
	Get(ctx context.Context, chatID string) (domain.Chat, error)
	Insert(ctx context.Context, c domain.Chat) error
	Replace(ctx context.Context, c domain.Chat) error
}

// UserStore reads and rewrites user documents for chat-ownership bookkeeping.
type UserStore interface {
	Get(ctx context.Context, userID string) (domain.User, error)
	Replace(ctx context.Context, u domain.User) error
}
