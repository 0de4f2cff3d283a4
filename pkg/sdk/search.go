package chatdock

import (
	"context"
	"fmt"
	"time"

	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
)

// SearchService runs full-text searches over chat messages.
type SearchService struct {
	svc     searchUseCase
	indexer indexEnsurer
	obs     *observer
}

// EnsureIndex creates the full-text index if it does not exist.
func (s *SearchService) EnsureIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.ensure_index", start, err) }()

	if err = s.indexer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

// Query returns the user's chats whose messages match the query, with the
// flattened index projections reassembled into ordered message lists.
func (s *SearchService) Query(ctx context.Context, userID, query string) (_ []SearchRecord, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, err) }()

	records, err := s.svc.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]SearchRecord, len(records))
	for i, rec := range records {
		out[i] = fromInternalRecord(rec)
	}
	return out, nil
}

func fromInternalRecord(rec domsearch.Record) SearchRecord {
	msgs := make([]Message, len(rec.Messages))
	for i, m := range rec.Messages {
		msgs[i] = Message{Content: m.Content, Timestamp: m.Timestamp, Sender: m.Sender}
	}
	name, _ := rec.Fields["name"].(string)
	return SearchRecord{
		ChatID:   rec.ChatID(),
		UserID:   rec.UserID(),
		Name:     name,
		Messages: msgs,
	}
}
