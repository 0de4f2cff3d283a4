package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/db"
	"github.com/kovan-labs/chatdock/internal/domain"
)

// store is the consumer interface for chat documents (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONSetNX(ctx context.Context, key, path string, data []byte) error
	JSONSetXX(ctx context.Context, key, path string, data []byte) error
}

// Repo implements the document store adapter for chat documents, keyed as
// "chat::<chat_id>".
type Repo struct {
	store store
}

// New creates a chat repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a chat by ID.
func (r *Repo) Get(ctx context.Context, chatID string) (domain.Chat, error) {
	key := domain.ChatKey(chatID)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Chat{}, domain.ErrChatNotFound
		}
		return domain.Chat{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return chatFromJSON(raw)
}

// Insert stores a new chat document. Chat IDs are fresh UUIDs, so a key
// collision is a caller bug rather than an expected outcome.
func (r *Repo) Insert(ctx context.Context, c domain.Chat) error {
	key := domain.ChatKey(c.ChatID())
	data, err := chatToJSON(c)
	if err != nil {
		return err
	}
	if err := r.store.JSONSetNX(ctx, key, "$", data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Replace overwrites an existing chat document. Fails with
// domain.ErrChatNotFound if the key is absent.
func (r *Repo) Replace(ctx context.Context, c domain.Chat) error {
	key := domain.ChatKey(c.ChatID())
	data, err := chatToJSON(c)
	if err != nil {
		return err
	}
	if err := r.store.JSONSetXX(ctx, key, "$", data); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrChatNotFound
		}
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}
