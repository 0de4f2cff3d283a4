package chat

import (
	"encoding/json"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// chatDoc is the persisted JSON layout of a chat document. The messages
// array is what the FT index projects into the flattened messages.* fields.
type chatDoc struct {
	Type     string           `json:"type"`
	ChatID   string           `json:"chat_id"`
	UserID   string           `json:"user_id"`
	Name     string           `json:"name"`
	Messages []domain.Message `json:"messages"`
}

func chatToJSON(c domain.Chat) ([]byte, error) {
	doc := chatDoc{
		Type:     domain.DocTypeChat,
		ChatID:   c.ChatID(),
		UserID:   c.UserID(),
		Name:     c.Name(),
		Messages: c.Messages(),
	}
	if doc.Messages == nil {
		doc.Messages = []domain.Message{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal chat: %w", err)
	}
	return data, nil
}

// chatFromJSON hydrates a domain Chat from stored document bytes.
// JSON.GET with a "$" path wraps the document in a one-element array.
func chatFromJSON(raw []byte) (domain.Chat, error) {
	var docs []chatDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		var single chatDoc
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domain.Chat{}, fmt.Errorf("unmarshal chat: %w", err)
		}
		docs = []chatDoc{single}
	}
	if len(docs) == 0 {
		return domain.Chat{}, fmt.Errorf("unmarshal chat: empty document")
	}

	doc := docs[0]
	return domain.ReconstructChat(doc.ChatID, doc.UserID, doc.Name, doc.Messages), nil
}
