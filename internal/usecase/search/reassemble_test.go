package search

import (
	"testing"

	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
)

func row(chatID, userID string, content, timestamps, senders any) domsearch.Row {
	r := domsearch.Row{
		"type":    "chat",
		"chat_id": chatID,
		"user_id": userID,
		"name":    "Chat " + chatID,
	}
	if content != nil {
		r[domsearch.FieldMessagesContent] = content
	}
	if timestamps != nil {
		r[domsearch.FieldMessagesTimestamp] = timestamps
	}
	if senders != nil {
		r[domsearch.FieldMessagesSender] = senders
	}
	return r
}

func TestReassemble_HappyPath(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice",
			[]string{"hello", "hi there"},
			[]string{"t1", "t2"},
			[]string{"alice", "bob"},
		),
	}

	records, repairs := Reassemble(rows)

	if len(repairs) != 0 {
		t.Fatalf("expected no repairs, got %v", repairs)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if len(rec.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(rec.Messages))
	}
	if rec.Messages[0].Content != "hello" || rec.Messages[0].Timestamp != "t1" || rec.Messages[0].Sender != "alice" {
		t.Errorf("messages[0] = %+v", rec.Messages[0])
	}
	if rec.Messages[1].Content != "hi there" || rec.Messages[1].Timestamp != "t2" || rec.Messages[1].Sender != "bob" {
		t.Errorf("messages[1] = %+v", rec.Messages[1])
	}
}

func TestReassemble_StripsFlattenedKeys(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice", []string{"a"}, []string{"t"}, []string{"s"}),
	}

	records, _ := Reassemble(rows)

	rec := records[0]
	for _, k := range []string{
		domsearch.FieldMessagesContent,
		domsearch.FieldMessagesTimestamp,
		domsearch.FieldMessagesSender,
	} {
		if _, ok := rec.Fields[k]; ok {
			t.Errorf("flattened key %q must not survive reassembly", k)
		}
	}
	if rec.Fields["chat_id"] != "c1" || rec.Fields["user_id"] != "alice" || rec.Fields["name"] != "Chat c1" {
		t.Errorf("scalar fields lost: %v", rec.Fields)
	}
}

func TestReassemble_LengthMismatch_ContentOnly(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice",
			[]string{"a", "b"},
			[]string{"t1"},
			[]string{},
		),
	}

	records, repairs := Reassemble(rows)

	if len(repairs) != 1 {
		t.Fatalf("expected 1 repair, got %d", len(repairs))
	}
	rep := repairs[0]
	if rep.ChatID != "c1" || rep.ContentLen != 2 || rep.TimestampLen != 1 || rep.SenderLen != 0 {
		t.Errorf("repair = %+v", rep)
	}

	rec := records[0]
	if len(rec.Messages) != 2 {
		t.Fatalf("expected 2 content-only messages, got %d", len(rec.Messages))
	}
	for i, m := range rec.Messages {
		if m.Timestamp != "" || m.Sender != "" {
			t.Errorf("messages[%d] should carry content only, got %+v", i, m)
		}
	}
	if rec.Messages[0].Content != "a" || rec.Messages[1].Content != "b" {
		t.Errorf("content order not preserved: %+v", rec.Messages)
	}
}

func TestReassemble_NoMessageKeys(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice", nil, nil, nil),
	}

	records, repairs := Reassemble(rows)

	if len(repairs) != 0 {
		t.Fatalf("a chat with no messages is not a mismatch, got %v", repairs)
	}
	rec := records[0]
	if rec.Messages == nil {
		t.Fatal("Messages must be non-nil")
	}
	if len(rec.Messages) != 0 {
		t.Errorf("expected no messages, got %v", rec.Messages)
	}
}

func TestReassemble_ScalarProjection(t *testing.T) {
	// A single-element array projection may arrive collapsed to a bare scalar.
	rows := []domsearch.Row{
		row("c1", "alice", "only", "t1", "alice"),
	}

	records, repairs := Reassemble(rows)

	if len(repairs) != 0 {
		t.Fatalf("expected no repairs, got %v", repairs)
	}
	rec := records[0]
	if len(rec.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(rec.Messages))
	}
	m := rec.Messages[0]
	if m.Content != "only" || m.Timestamp != "t1" || m.Sender != "alice" {
		t.Errorf("message = %+v", m)
	}
}

func TestReassemble_AnySliceProjection(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice",
			[]any{"a", "b"},
			[]any{"t1", "t2"},
			[]any{"alice", "bob"},
		),
	}

	records, repairs := Reassemble(rows)

	if len(repairs) != 0 {
		t.Fatalf("expected no repairs, got %v", repairs)
	}
	if len(records[0].Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(records[0].Messages))
	}
	if records[0].Messages[1].Sender != "bob" {
		t.Errorf("messages[1] = %+v", records[0].Messages[1])
	}
}

func TestReassemble_OrderPreserved(t *testing.T) {
	rows := []domsearch.Row{
		row("c1", "alice", []string{"x"}, []string{"t"}, []string{"s"}),
		row("c2", "bob", nil, nil, nil),
		row("c3", "alice", []string{"y"}, []string{"t"}, []string{"s"}),
	}

	records, _ := Reassemble(rows)

	if len(records) != 3 {
		t.Fatalf("expected one record per row, got %d", len(records))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if records[i].ChatID() != want {
			t.Errorf("records[%d].ChatID = %q, want %q", i, records[i].ChatID(), want)
		}
	}
}

func TestReassemble_MismatchDoesNotFailOtherRows(t *testing.T) {
	rows := []domsearch.Row{
		row("good", "alice", []string{"a"}, []string{"t"}, []string{"s"}),
		row("bad", "alice", []string{"a", "b"}, []string{"t"}, []string{"s"}),
	}

	records, repairs := Reassemble(rows)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(repairs) != 1 || repairs[0].ChatID != "bad" {
		t.Errorf("repairs = %+v", repairs)
	}
	if records[0].Messages[0].Sender != "s" {
		t.Error("intact row should keep full messages")
	}
}

func TestFilterByOwner(t *testing.T) {
	records, _ := Reassemble([]domsearch.Row{
		row("c1", "alice", nil, nil, nil),
		row("c2", "bob", nil, nil, nil),
		row("c3", "alice", nil, nil, nil),
	})

	owned := FilterByOwner(records, "alice")

	if len(owned) != 2 {
		t.Fatalf("expected 2 owned records, got %d", len(owned))
	}
	if owned[0].ChatID() != "c1" || owned[1].ChatID() != "c3" {
		t.Errorf("ownership filter must preserve order: %q, %q", owned[0].ChatID(), owned[1].ChatID())
	}
}

func TestFilterByOwner_ExactEquality(t *testing.T) {
	records, _ := Reassemble([]domsearch.Row{
		row("c1", "Alice", nil, nil, nil),
		row("c2", "alice ", nil, nil, nil),
	})

	if owned := FilterByOwner(records, "alice"); len(owned) != 0 {
		t.Errorf("filter must compare exactly, got %d records", len(owned))
	}
}

func TestFilterByOwner_MissingUserID(t *testing.T) {
	records := []domsearch.Record{
		{Fields: map[string]any{"chat_id": "c1"}},
	}

	if owned := FilterByOwner(records, "alice"); len(owned) != 0 {
		t.Errorf("records without user_id must be dropped, got %d", len(owned))
	}
}
