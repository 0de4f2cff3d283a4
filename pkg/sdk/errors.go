package chatdock

import "github.com/kovan-labs/chatdock/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUserNotFound  = domain.ErrUserNotFound
	ErrChatNotFound  = domain.ErrChatNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrInvalidUser   = domain.ErrInvalidUser
	ErrEmptyQuery    = domain.ErrEmptyQuery
)
