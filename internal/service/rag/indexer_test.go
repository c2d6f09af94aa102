package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/internal/providers/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	results []core.ExtractResult
	err     error
}

func (s *stubExtractor) Extract(ctx context.Context, urls []string) ([]core.ExtractResult, error) {
	return s.results, s.err
}

func (s *stubExtractor) SearchContext(ctx context.Context, query string) (string, error) {
	return "", nil
}

func TestIndexURLs(t *testing.T) {
	ctx := context.Background()
	store := vector.NewMemory()
	extractor := &stubExtractor{results: []core.ExtractResult{
		{URL: "https://example.com/docs", RawContent: strings.Repeat("a", 2500)},
	}}

	idx := NewIndexer(extractor, store, "test", 16, 1000)

	count, err := idx.IndexURLs(ctx, []string{"https://example.com/docs"})
	require.NoError(t, err)
	assert.Equal(t, 3, count, "2500 chars at limit 1000 yields 3 segments")
	assert.Equal(t, 3, store.Len())

	// ids derive from the sanitized url plus segment index
	matches, err := store.Query(ctx, make([]float32, 16), 10, true)
	require.NoError(t, err)
	for _, m := range matches {
		assert.Regexp(t, `^https_example_com_docs_\d$`, m.ID)
		assert.Equal(t, "https://example.com/docs", m.Metadata["url"])
	}
}

func TestIndexURLsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := vector.NewMemory()
	extractor := &stubExtractor{results: []core.ExtractResult{
		{URL: "https://example.com", RawContent: strings.Repeat("b", 1500)},
	}}

	idx := NewIndexer(extractor, store, "test", 16, 1000)

	for range 3 {
		count, err := idx.IndexURLs(ctx, []string{"https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	}
	assert.Equal(t, 2, store.Len(), "re-indexing replaces, never duplicates")
}

func TestIndexURLsEmptyExtraction(t *testing.T) {
	ctx := context.Background()
	store := vector.NewMemory()
	idx := NewIndexer(&stubExtractor{}, store, "test", 16, 1000)

	count, err := idx.IndexURLs(ctx, []string{"https://example.com"})
	assert.ErrorIs(t, err, ErrEmptyExtraction)
	assert.Zero(t, count)
	assert.Zero(t, store.Len(), "no upsert may happen on empty extraction")
}

func TestIndexURLsSkipsEmptyContent(t *testing.T) {
	ctx := context.Background()
	store := vector.NewMemory()
	extractor := &stubExtractor{results: []core.ExtractResult{
		{URL: "https://a.com", RawContent: ""},
		{URL: "https://b.com", RawContent: "conteúdo real"},
	}}

	idx := NewIndexer(extractor, store, "test", 16, 1000)

	count, err := idx.IndexURLs(ctx, []string{"https://a.com", "https://b.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndexURLsExtractorError(t *testing.T) {
	idx := NewIndexer(&stubExtractor{err: errors.New("network down")}, vector.NewMemory(), "test", 16, 1000)

	_, err := idx.IndexURLs(context.Background(), []string{"https://a.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyExtraction)
}
