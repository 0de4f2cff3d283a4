package search

import (
	"encoding/json"
	"testing"

	"github.com/kovan-labs/chatdock/internal/domain"
)

func TestRowStringField(t *testing.T) {
	r := Row{"user_id": "alice", "count": 3}

	if got := r.StringField("user_id"); got != "alice" {
		t.Errorf("StringField(user_id) = %q, want %q", got, "alice")
	}
	if got := r.StringField("count"); got != "" {
		t.Errorf("StringField(count) = %q, want empty for non-string", got)
	}
	if got := r.StringField("missing"); got != "" {
		t.Errorf("StringField(missing) = %q, want empty", got)
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{Fields: map[string]any{"user_id": "alice", "chat_id": "c1"}}

	if rec.UserID() != "alice" {
		t.Errorf("UserID = %q, want %q", rec.UserID(), "alice")
	}
	if rec.ChatID() != "c1" {
		t.Errorf("ChatID = %q, want %q", rec.ChatID(), "c1")
	}

	empty := Record{Fields: map[string]any{}}
	if empty.UserID() != "" || empty.ChatID() != "" {
		t.Error("accessors should return empty string for absent fields")
	}
}

func TestRecordMarshalJSON(t *testing.T) {
	rec := Record{
		Fields: map[string]any{"chat_id": "c1", "user_id": "alice", "name": "Trip"},
		Messages: []domain.Message{
			{Content: "hi", Timestamp: "t1", Sender: "alice"},
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if out["chat_id"] != "c1" || out["user_id"] != "alice" || out["name"] != "Trip" {
		t.Errorf("scalar fields lost: %v", out)
	}
	msgs, ok := out["messages"].([]any)
	if !ok {
		t.Fatalf("messages should be an array, got %T", out["messages"])
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	m := msgs[0].(map[string]any)
	if m["content"] != "hi" || m["timestamp"] != "t1" || m["sender"] != "alice" {
		t.Errorf("unexpected message: %v", m)
	}
}

func TestRecordMarshalJSON_NilMessages(t *testing.T) {
	rec := Record{Fields: map[string]any{"chat_id": "c1"}}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	msgs, ok := out["messages"].([]any)
	if !ok {
		t.Fatalf("messages key must always be present as array, got %T", out["messages"])
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty messages array, got %v", msgs)
	}
}
