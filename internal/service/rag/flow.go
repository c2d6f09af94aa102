package rag

import (
	"context"
	"errors"
)

// Flow is the retrieval-augmented handler: it (re-)indexes the configured
// URLs, then answers from the indexed content. Indexing is idempotent, so
// running it per request only refreshes the same segment ids.
type Flow struct {
	indexer   *Indexer
	retriever *Retriever
	urls      []string
}

func NewFlow(indexer *Indexer, retriever *Retriever, urls []string) *Flow {
	return &Flow{
		indexer:   indexer,
		retriever: retriever,
		urls:      urls,
	}
}

func (f *Flow) Handle(ctx context.Context, sessionID, message string) (string, error) {
	if len(f.urls) > 0 {
		if _, err := f.indexer.IndexURLs(ctx, f.urls); err != nil {
			if errors.Is(err, ErrEmptyExtraction) {
				return CouldNotExtractMessage, nil
			}
			return "", err
		}
	}
	return f.retriever.Answer(ctx, message)
}
