package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	JSONStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations keyed by exact key.
// Single-key operations are read-after-write consistent.
type JSONStore interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONSet stores a document unconditionally.
	JSONSet(ctx context.Context, key, path string, data []byte) error
	// JSONSetNX stores a document only if the key does not exist yet.
	// Returns ErrKeyExists otherwise.
	JSONSetNX(ctx context.Context, key, path string, data []byte) error
	// JSONSetXX replaces a document only if the key already exists.
	// Returns ErrKeyNotFound otherwise.
	JSONSetXX(ctx context.Context, key, path string, data []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides full-text search over FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}
