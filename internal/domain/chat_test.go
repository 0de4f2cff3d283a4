package domain

import "testing"

func TestNewChat(t *testing.T) {
	c := NewChat("alice", "Trip planning")
	if c.ChatID() == "" {
		t.Error("chat ID should be generated")
	}
	if c.UserID() != "alice" {
		t.Errorf("UserID = %q, want %q", c.UserID(), "alice")
	}
	if c.Name() != "Trip planning" {
		t.Errorf("Name = %q, want %q", c.Name(), "Trip planning")
	}
	if len(c.Messages()) != 0 {
		t.Errorf("new chat should have no messages, got %v", c.Messages())
	}
}

func TestNewChat_DefaultName(t *testing.T) {
	c := NewChat("alice", "")
	if c.Name() != DefaultChatName {
		t.Errorf("Name = %q, want %q", c.Name(), DefaultChatName)
	}
}

func TestNewChat_UniqueIDs(t *testing.T) {
	a := NewChat("alice", "a")
	b := NewChat("alice", "b")
	if a.ChatID() == b.ChatID() {
		t.Errorf("chat IDs should be unique, both %q", a.ChatID())
	}
}

func TestAppendMessage_PreservesOrder(t *testing.T) {
	c := NewChat("alice", "")
	c.AppendMessage(Message{Content: "first"})
	c.AppendMessage(Message{Content: "second", Timestamp: "t2", Sender: "bob"})

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first" {
		t.Errorf("messages[0] = %q, want %q", msgs[0].Content, "first")
	}
	if msgs[1].Content != "second" || msgs[1].Sender != "bob" {
		t.Errorf("messages[1] = %+v", msgs[1])
	}
}
