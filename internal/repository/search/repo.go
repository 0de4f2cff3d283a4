package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kovan-labs/chatdock/internal/db"
	"github.com/kovan-labs/chatdock/internal/domain"
	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo issues full-text queries against the chat index and returns flattened
// rows. The query carries no user scoping; ownership filtering happens in the
// use case layer.
type Repo struct {
	store store
	index string
	limit int
}

// New creates a search repository for the named index.
func New(s store, indexName string, maxResults int) *Repo {
	return &Repo{store: s, index: indexName, limit: maxResults}
}

// returnFields projects the chat scalars plus the three parallel message
// arrays. Multi-value JSONPaths come back as JSON-encoded arrays under the
// flattened messages.* aliases.
var returnFields = []db.ReturnField{
	{Identifier: "$.type", As: "type"},
	{Identifier: "$.chat_id", As: "chat_id"},
	{Identifier: "$.user_id", As: "user_id"},
	{Identifier: "$.name", As: "name"},
	{Identifier: "$.messages[*].content", As: domsearch.FieldMessagesContent},
	{Identifier: "$.messages[*].timestamp", As: domsearch.FieldMessagesTimestamp},
	{Identifier: "$.messages[*].sender", As: domsearch.FieldMessagesSender},
}

// Query runs a free-text search and decodes each hit into a flattened row.
func (r *Repo) Query(ctx context.Context, queryText string) ([]domsearch.Row, error) {
	q := &db.TextQuery{
		IndexName:    r.index,
		Query:        queryText,
		Limit:        r.limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.index, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	rows := make([]domsearch.Row, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		rows = append(rows, rowFromEntry(entry))
	}
	return rows, nil
}

// EnsureIndex creates the chat FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        r.index,
		StorageType: db.StorageJSON,
		Prefixes:    []string{domain.ChatKeyPrefix},
		Fields: []db.IndexField{
			{Name: "$.type", Alias: "type", Type: db.IndexFieldTag},
			{Name: "$.chat_id", Alias: "chat_id", Type: db.IndexFieldTag},
			{Name: "$.user_id", Alias: "user_id", Type: db.IndexFieldTag},
			{Name: "$.name", Alias: "name", Type: db.IndexFieldText},
			{Name: "$.messages[*].content", Alias: domsearch.FieldMessagesContent, Type: db.IndexFieldText},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}

// rowFromEntry decodes raw projected values. Each value is tried as JSON
// first so array projections become real sequences; anything that does not
// parse stays a raw string. DIALECT 3 wraps scalar JSONPath projections in
// one-element arrays, so scalar fields are unwrapped again.
func rowFromEntry(entry db.SearchEntry) domsearch.Row {
	row := make(domsearch.Row, len(entry.Fields))
	for k, v := range entry.Fields {
		decoded := decodeProjection(v)
		if !isMessagesField(k) {
			decoded = unwrapScalar(decoded)
		}
		row[k] = decoded
	}
	return row
}

func isMessagesField(k string) bool {
	return k == domsearch.FieldMessagesContent ||
		k == domsearch.FieldMessagesTimestamp ||
		k == domsearch.FieldMessagesSender
}

func unwrapScalar(v any) any {
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return arr[0]
	}
	return v
}

func decodeProjection(v string) any {
	var decoded any
	if err := json.Unmarshal([]byte(v), &decoded); err != nil {
		return v
	}
	switch decoded.(type) {
	case []any, string, float64, bool, nil:
		return decoded
	default:
		return v
	}
}
