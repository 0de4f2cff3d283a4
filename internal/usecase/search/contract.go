package search

import (
	"context"

	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
)

// Repository defines the full-text query contract. The underlying index
// matches across all users; per-user scoping is this package's job.
type Repository interface {
	Query(ctx context.Context, queryText string) ([]domsearch.Row, error)
}
