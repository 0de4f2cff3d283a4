package domain

import "strings"

// Document key prefixes. A document's kind is recoverable from its key alone.
const (
	UserKeyPrefix = "user::"
	ChatKeyPrefix = "chat::"
)

// Document type discriminators stored in the "type" field.
const (
	DocTypeUser = "user"
	DocTypeChat = "chat"
)

// NormalizeUserID canonicalizes a user identifier: trimmed, lowercased.
// User IDs are email-like and case discrepancies between callers are common.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// UserKey builds the document key for a normalized user ID.
func UserKey(userID string) string {
	return UserKeyPrefix + userID
}

// ChatKey builds the document key for a chat ID.
func ChatKey(chatID string) string {
	return ChatKeyPrefix + chatID
}
