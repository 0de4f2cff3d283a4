package db

// StorageType selects the FT index storage backing.
type StorageType string

// Supported storage types.
const (
	StorageJSON StorageType = "JSON"
	StorageHash StorageType = "HASH"
)

// IndexFieldType is the FT field type.
type IndexFieldType string

// Supported field types.
const (
	IndexFieldText IndexFieldType = "TEXT"
	IndexFieldTag  IndexFieldType = "TAG"
)

// IndexDefinition describes an FT index to create.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// IndexField describes one schema field of an FT index.
type IndexField struct {
	Name  string // JSONPath for ON JSON indexes
	Alias string
	Type  IndexFieldType
}
