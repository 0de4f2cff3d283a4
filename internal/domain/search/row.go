// Package search holds the wire-adjacent types of the search result
// reassembly pipeline: flattened index hits and the reassembled chat records.
package search

import (
	"encoding/json"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// Keys under which the index projects the nested message arrays as
// independent parallel top-level fields.
const (
	FieldMessagesContent   = "messages.content"
	FieldMessagesTimestamp = "messages.timestamp"
	FieldMessagesSender    = "messages.sender"
)

// MessagesKey is the nested form the flattened keys are folded into.
const MessagesKey = "messages"

// Row is a flattened search hit: field name to projected value. Values for
// the messages.* keys are sequences; everything else is a scalar. The set of
// keys is a wildcard-selected superset of the indexed fields.
type Row map[string]any

// StringField returns the named field as a string, or "" when absent or
// non-string.
func (r Row) StringField(name string) string {
	s, _ := r[name].(string)
	return s
}

// Record is a reassembled chat record: the row's scalar fields plus the
// reconstructed nested message list. The flattened messages.* keys are never
// present in Fields.
type Record struct {
	Fields   map[string]any
	Messages []domain.Message
}

// UserID returns the owning user's ID field, or "" when absent.
func (rec Record) UserID() string {
	s, _ := rec.Fields["user_id"].(string)
	return s
}

// ChatID returns the chat ID field, or "" when absent.
func (rec Record) ChatID() string {
	s, _ := rec.Fields["chat_id"].(string)
	return s
}

// MarshalJSON renders the record as a single flat object with the nested
// messages list under "messages". The messages key is always present, as an
// empty array for a chat with no messages.
func (rec Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(rec.Fields)+1)
	for k, v := range rec.Fields {
		out[k] = v
	}
	msgs := rec.Messages
	if msgs == nil {
		msgs = []domain.Message{}
	}
	out[MessagesKey] = msgs
	return json.Marshal(out) //nolint:wrapcheck // stdlib marshal of a plain map
}
