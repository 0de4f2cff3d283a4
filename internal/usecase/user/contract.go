package user

import (
	"context"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// Repository defines the storage contract for user documents.
type Repository interface {
	Get(ctx context.Context, userID string) (domain.User, error)
	Insert(ctx context.Context, u domain.User) error
}

// ChatReader reads chat documents for the chat-list fan-out.
type ChatReader interface {
	Get(ctx context.Context, chatID string) (domain.Chat, error)
}
