package user

import (
	"encoding/json"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// userDoc is the persisted JSON layout of a user document.
type userDoc struct {
	Type    string   `json:"type"`
	UserID  string   `json:"user_id"`
	Name    *string  `json:"name"`
	ChatIDs []string `json:"chat_ids"`
}

// userToJSON converts a domain User into its stored document bytes.
// An empty name is persisted as null.
func userToJSON(u domain.User) ([]byte, error) {
	doc := userDoc{
		Type:    domain.DocTypeUser,
		UserID:  u.UserID(),
		ChatIDs: u.ChatIDs(),
	}
	if doc.ChatIDs == nil {
		doc.ChatIDs = []string{}
	}
	if n := u.Name(); n != "" {
		doc.Name = &n
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	return data, nil
}

// userFromJSON hydrates a domain User from stored document bytes.
// JSON.GET with a "$" path wraps the document in a one-element array.
func userFromJSON(raw []byte) (domain.User, error) {
	var docs []userDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		var single userDoc
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
		}
		docs = []userDoc{single}
	}
	if len(docs) == 0 {
		return domain.User{}, fmt.Errorf("unmarshal user: empty document")
	}

	doc := docs[0]
	name := ""
	if doc.Name != nil {
		name = *doc.Name
	}
	return domain.ReconstructUser(doc.UserID, name, doc.ChatIDs), nil
}
