package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
	"github.com/kovan-labs/chatdock/internal/logger"
	"github.com/kovan-labs/chatdock/internal/metrics"
)

// Service runs the search pipeline: full-text query, reassembly, ownership
// filter.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns the reassembled chat records matching query that belong to
// userID. The user ID is normalized here; the filter itself compares by
// exact equality.
func (s *Service) Search(ctx context.Context, userID, query string) ([]domsearch.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	rows, err := s.repo.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	metrics.SearchRowsTotal.Add(float64(len(rows)))

	records, repairs := Reassemble(rows)
	for _, rep := range repairs {
		metrics.SearchRepairsTotal.Inc()
		logger.FromContext(ctx).Warn("message projection length mismatch, reconstructed content only",
			zap.String("chat_id", rep.ChatID),
			zap.Int("content_len", rep.ContentLen),
			zap.Int("timestamp_len", rep.TimestampLen),
			zap.Int("sender_len", rep.SenderLen),
		)
	}

	return FilterByOwner(records, domain.NormalizeUserID(userID)), nil
}
