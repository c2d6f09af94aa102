package core

import "context"

// Completer is a chat-completions provider.
type Completer interface {
	Chat(ctx context.Context, messages []Message, model string) (string, error)
}

// VectorIndex stores fixed-dimension vectors with metadata, queryable by
// nearest match. Upsert replaces by id.
type VectorIndex interface {
	EnsureIndex(ctx context.Context, name string, dimension int, metric string) error
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error
	Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]Match, error)
}

// Extractor pulls raw page content from URLs and builds search context
// for free-form queries.
type Extractor interface {
	Extract(ctx context.Context, urls []string) ([]ExtractResult, error)
	SearchContext(ctx context.Context, query string) (string, error)
}
