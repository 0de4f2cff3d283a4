package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/db"
	"github.com/kovan-labs/chatdock/internal/domain"
)

// store is the consumer interface for user documents (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONSetNX(ctx context.Context, key, path string, data []byte) error
	JSONSetXX(ctx context.Context, key, path string, data []byte) error
}

// Repo implements the document store adapter for user documents, keyed as
// "user::<normalized_user_id>".
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a user by normalized ID.
func (r *Repo) Get(ctx context.Context, userID string) (domain.User, error) {
	key := domain.UserKey(userID)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return userFromJSON(raw)
}

// Insert stores a new user document. Fails with domain.ErrAlreadyExists if
// the key is taken.
func (r *Repo) Insert(ctx context.Context, u domain.User) error {
	key := domain.UserKey(u.UserID())
	data, err := userToJSON(u)
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

// Replace overwrites an existing user document. Fails with
// domain.ErrUserNotFound if the key is absent.
func (r *Repo) Replace(ctx context.Context, u domain.User) error {
	key := domain.UserKey(u.UserID())
	data, err := userToJSON(u)
	if err != nil {
		return err
	}
	if err := r.store.JSONSetXX(ctx, key, "$", data); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}
