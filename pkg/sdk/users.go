package chatdock

import (
	"context"
	"fmt"
	"time"
)

// UserService manages users.
type UserService struct {
	svc userUseCase
	obs *observer
}

// Create registers a new user with no chats. The user ID is normalized
// (trimmed and lowercased); a duplicate fails with ErrAlreadyExists.
func (s *UserService) Create(ctx context.Context, userID, name string) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.create", start, err) }()

	u, err := s.svc.Create(ctx, userID, name)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return fromInternalUser(u), nil
}

// Get returns the user, lazily creating one on first lookup.
func (s *UserService) Get(ctx context.Context, userID string) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.get", start, err) }()

	u, err := s.svc.GetOrCreate(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return fromInternalUser(u), nil
}

// Chats returns the user's chats in creation order. Chats that cannot be
// fetched are skipped.
func (s *UserService) Chats(ctx context.Context, userID string) (_ []Chat, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.chats", start, err) }()

	chats, err := s.svc.ListChats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	out := make([]Chat, len(chats))
	for i, c := range chats {
		out[i] = fromInternalChat(c)
	}
	return out, nil
}
