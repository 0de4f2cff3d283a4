package db

// ReturnField selects one projected field of a search hit.
// Identifier is a JSONPath for ON JSON indexes; As is the key the value is
// returned under.
type ReturnField struct {
	Identifier string
	As         string
}

// TextQuery is the input for a full-text search.
type TextQuery struct {
	IndexName    string
	Query        string
	Limit        int
	ReturnFields []ReturnField
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. Fields holds the raw
// projected values keyed by their return alias; multi-value JSONPath
// projections arrive as JSON-encoded arrays.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
