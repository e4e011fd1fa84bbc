package db

// TextQuery is the input for a scored full-text search over one field.
type TextQuery struct {
	IndexName string
	Field     string // TEXT field to match against
	Query     string // raw user query, escaped by the backend
	Filter    string // optional pre-filter appended verbatim
	TopK      int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
