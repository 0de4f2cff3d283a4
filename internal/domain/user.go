package domain

import "fmt"

// User is the user aggregate. user_id is stored normalized; name may be
// empty, which the storage layer persists as null.
type User struct {
	userID  string
	name    string
	chatIDs []string
}

// NewUser validates and creates a User with no chats.
// userID must already be normalized (see NormalizeUserID).
func NewUser(userID, name string) (User, error) {
	if userID == "" {
		return User{}, fmt.Errorf("user ID is required: %w", ErrInvalidUser)
	}
	if userID != NormalizeUserID(userID) {
		return User{}, fmt.Errorf("user ID %q is not normalized: %w", userID, ErrInvalidUser)
	}
	return User{userID: userID, name: name, chatIDs: []string{}}, nil
}

// ReconstructUser creates a User without validation (storage hydration).
func ReconstructUser(userID, name string, chatIDs []string) User {
	return User{userID: userID, name: name, chatIDs: chatIDs}
}

// UserID returns the normalized user identifier.
func (u *User) UserID() string { return u.userID }

// Name returns the display name; empty means unset.
func (u *User) Name() string { return u.name }

// ChatIDs returns the chat IDs owned by the user, in creation order.
func (u *User) ChatIDs() []string { return u.chatIDs }

// AppendChatID records ownership of a new chat. Append order is creation order.
func (u *User) AppendChatID(chatID string) {
	u.chatIDs = append(u.chatIDs, chatID)
}
