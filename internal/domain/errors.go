package domain

import "errors"

var (
	// ErrUserNotFound signals a missing user document.
	ErrUserNotFound = errors.New("user not found")
	// ErrChatNotFound signals a missing chat document.
	ErrChatNotFound = errors.New("chat not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidUser signals a user that fails validation.
	ErrInvalidUser = errors.New("invalid user")
	// ErrEmptyQuery signals an empty or whitespace-only search query.
	ErrEmptyQuery = errors.New("search query cannot be empty")
	// ErrEmptyTask signals an empty agent task description.
	ErrEmptyTask = errors.New("agent task cannot be empty")
	// ErrAgentProviderError signals an agent provider failure.
	ErrAgentProviderError = errors.New("agent provider error")
)
