package rag

import (
	"context"
	"testing"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/internal/providers/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowEmptyExtractionYieldsFixedMessage(t *testing.T) {
	store := vector.NewMemory()
	idx := NewIndexer(&stubExtractor{}, store, "test", 16, 1000)
	completer := &recordingCompleter{reply: "não deveria ser chamado"}
	ret := NewRetriever(store, completer, "test-model", 16, 3, 5000)

	flow := NewFlow(idx, ret, []string{"https://example.com"})

	reply, err := flow.Handle(context.Background(), "s1", "o que é a empresa?")
	require.NoError(t, err)
	assert.Equal(t, CouldNotExtractMessage, reply)
	assert.Zero(t, store.Len(), "no upsert may happen")
	assert.Empty(t, completer.lastPrompt, "no synthesis after failed extraction")
}

func TestFlowIndexesThenAnswers(t *testing.T) {
	store := vector.NewMemory()
	extractor := &stubExtractor{results: []core.ExtractResult{
		{URL: "https://example.com", RawContent: "a empresa presta serviços de software"},
	}}
	idx := NewIndexer(extractor, store, "test", 16, 1000)
	completer := &recordingCompleter{reply: "ela presta serviços de software"}
	ret := NewRetriever(store, completer, "test-model", 16, 3, 5000)

	flow := NewFlow(idx, ret, []string{"https://example.com"})

	reply, err := flow.Handle(context.Background(), "s1", "o que a empresa faz?")
	require.NoError(t, err)
	assert.Equal(t, "ela presta serviços de software", reply)
	assert.Equal(t, 1, store.Len())
	assert.Contains(t, completer.lastPrompt, "a empresa presta serviços de software")
}
