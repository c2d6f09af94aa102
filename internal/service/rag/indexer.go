package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/routebot/internal/core"
	ragp "github.com/sandevgo/routebot/internal/providers/rag"
	"github.com/sandevgo/routebot/pkg/log"
)

// CouldNotExtractMessage is the fixed reply when extraction yields nothing.
const CouldNotExtractMessage = "Não foi possível extrair informações das URLs fornecidas."

// ErrEmptyExtraction signals that the extraction provider returned no
// results at all for the requested URLs.
var ErrEmptyExtraction = errors.New("extraction returned no results")

// Indexer pulls page content from URLs, segments it, encodes each segment
// and upserts it into the vector index. Re-indexing the same URL overwrites
// the same ids, so indexing is idempotent.
type Indexer struct {
	extractor        core.Extractor
	index            core.VectorIndex
	indexName        string
	dimension        int
	maxSegmentLength int
}

func NewIndexer(extractor core.Extractor, index core.VectorIndex, indexName string, dimension, maxSegmentLength int) *Indexer {
	if dimension <= 0 {
		dimension = ragp.DefaultDimension
	}
	if maxSegmentLength <= 0 {
		maxSegmentLength = ragp.DefaultMaxSegmentLength
	}
	return &Indexer{
		extractor:        extractor,
		index:            index,
		indexName:        indexName,
		dimension:        dimension,
		maxSegmentLength: maxSegmentLength,
	}
}

// IndexURLs extracts and indexes every URL, returning the number of
// segments upserted. ErrEmptyExtraction is returned when the provider has
// no results; callers map it to CouldNotExtractMessage instead of failing
// the request.
func (i *Indexer) IndexURLs(ctx context.Context, urls []string) (int, error) {
	logger := log.FromCtx(ctx)

	results, err := i.extractor.Extract(ctx, urls)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}
	if len(results) == 0 {
		return 0, ErrEmptyExtraction
	}

	if err := i.index.EnsureIndex(ctx, i.indexName, i.dimension, "cosine"); err != nil {
		return 0, fmt.Errorf("ensure index: %w", err)
	}

	indexed := 0
	for _, result := range results {
		if result.RawContent == "" {
			logger.Warn().Str("url", result.URL).Msg("empty content, skipping url")
			continue
		}

		baseID := ragp.SanitizeID(result.URL)
		if baseID == "" {
			baseID = "unknown"
		}

		for _, segment := range ragp.SegmentText(result.RawContent, i.maxSegmentLength) {
			id := fmt.Sprintf("%s_%d", baseID, segment.Index)
			vec := ragp.Encode(segment.Text, i.dimension)
			metadata := map[string]string{
				"url":     result.URL,
				"content": segment.Text,
			}
			if err := i.index.Upsert(ctx, id, vec, metadata); err != nil {
				return indexed, fmt.Errorf("upsert segment %s: %w", id, err)
			}
			indexed++
		}

		logger.Debug().Str("url", result.URL).Msg("indexed url")
	}

	logger.Info().Int("segments", indexed).Int("urls", len(urls)).Msg("content indexing finished")
	return indexed, nil
}
