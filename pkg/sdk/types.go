package chatdock

// User represents a registered user.
type User struct {
	UserID  string
	Name    string
	ChatIDs []string
}

// Message is a single conversation entry. Content is required; Timestamp and
// Sender are free-form and may be empty.
type Message struct {
	Content   string
	Timestamp string
	Sender    string
}

// Chat is a named conversation owned by a user.
type Chat struct {
	ChatID   string
	UserID   string
	Name     string
	Messages []Message
}

// SearchRecord is one reassembled full-text search hit. Messages carries the
// matched chat's reconstructed message list; after a projection length
// mismatch only Content is populated.
type SearchRecord struct {
	ChatID   string
	UserID   string
	Name     string
	Messages []Message
}
