package domain

import "github.com/google/uuid"

// DefaultChatName is used when a chat is created without a name.
const DefaultChatName = "Unlabeled Chat"

// Message is a single chat message. Messages are immutable once appended;
// their identity is positional within the parent chat's message sequence.
type Message struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	Sender    string `json:"sender,omitempty"`
}

// Chat is the chat aggregate. A chat is owned by exactly one user via userID;
// the store enforces nothing, so an orphaned chat is possible if the user
// document vanishes.
type Chat struct {
	chatID   string
	userID   string
	name     string
	messages []Message
}

// NewChat creates a Chat with a fresh UUID. An empty name falls back to
// DefaultChatName. userID must already be normalized.
func NewChat(userID, name string) Chat {
	if name == "" {
		name = DefaultChatName
	}
	return Chat{
		chatID:   uuid.NewString(),
		userID:   userID,
		name:     name,
		messages: []Message{},
	}
}

// ReconstructChat creates a Chat without validation (storage hydration).
func ReconstructChat(chatID, userID, name string, messages []Message) Chat {
	return Chat{chatID: chatID, userID: userID, name: name, messages: messages}
}

// ChatID returns the chat identifier.
func (c *Chat) ChatID() string { return c.chatID }

// UserID returns the owning user's identifier.
func (c *Chat) UserID() string { return c.userID }

// Name returns the chat name.
func (c *Chat) Name() string { return c.name }

// Messages returns the messages in conversation (append) order.
func (c *Chat) Messages() []Message { return c.messages }

// AppendMessage adds a message at the end of the conversation.
// There is no update or delete of existing messages.
func (c *Chat) AppendMessage(m Message) {
	c.messages = append(c.messages, m)
}
