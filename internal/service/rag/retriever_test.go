package rag

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndex struct {
	matches []core.Match
	err     error
}

func (s *stubIndex) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	return nil
}

func (s *stubIndex) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	return nil
}

func (s *stubIndex) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]core.Match, error) {
	return s.matches, s.err
}

type recordingCompleter struct {
	lastPrompt string
	reply      string
}

func (r *recordingCompleter) Chat(ctx context.Context, messages []core.Message, model string) (string, error) {
	r.lastPrompt = messages[len(messages)-1].Content
	return r.reply, nil
}

func match(id, content string) core.Match {
	return core.Match{ID: id, Score: 0.9, Metadata: map[string]string{"content": content}}
}

func TestAnswerSynthesizesFromMatches(t *testing.T) {
	completer := &recordingCompleter{reply: "resposta sintetizada"}
	r := NewRetriever(&stubIndex{matches: []core.Match{
		match("a_0", "primeiro trecho"),
		match("b_0", "segundo trecho"),
	}}, completer, "test-model", 16, 3, 5000)

	reply, err := r.Answer(context.Background(), "qual é o serviço?")
	require.NoError(t, err)
	assert.Equal(t, "resposta sintetizada", reply)
	assert.Contains(t, completer.lastPrompt, "qual é o serviço?")
	assert.Contains(t, completer.lastPrompt, "primeiro trecho")
	assert.Contains(t, completer.lastPrompt, "segundo trecho")
}

func TestAnswerNoMatches(t *testing.T) {
	completer := &recordingCompleter{}
	r := NewRetriever(&stubIndex{}, completer, "test-model", 16, 3, 5000)

	reply, err := r.Answer(context.Background(), "pergunta")
	require.NoError(t, err)
	assert.Equal(t, NoRelevantInfoMessage, reply)
	assert.Empty(t, completer.lastPrompt, "no synthesis call without context")
}

func TestAnswerFiltersEmptyContent(t *testing.T) {
	completer := &recordingCompleter{}
	r := NewRetriever(&stubIndex{matches: []core.Match{
		match("a_0", ""),
		match("b_0", ""),
	}}, completer, "test-model", 16, 3, 5000)

	reply, err := r.Answer(context.Background(), "pergunta")
	require.NoError(t, err)
	assert.Equal(t, NoRelevantInfoMessage, reply)
}

func TestAnswerBudgetExcludesOversizedFirstMatch(t *testing.T) {
	completer := &recordingCompleter{}
	r := NewRetriever(&stubIndex{matches: []core.Match{
		match("a_0", strings.Repeat("x", 200)),
	}}, completer, "test-model", 16, 3, 100)

	reply, err := r.Answer(context.Background(), "pergunta")
	require.NoError(t, err)
	assert.Equal(t, NoRelevantInfoMessage, reply)
}

func TestAssembleContextBudgetInvariant(t *testing.T) {
	prompt := strings.Repeat("p", 50)
	matches := []core.Match{
		match("a_0", strings.Repeat("a", 40)),
		match("b_0", strings.Repeat("b", 40)),
		match("c_0", strings.Repeat("c", 40)),
	}

	for _, maxLen := range []int{60, 91, 100, 131, 132, 500} {
		contextText, ok := assembleContext(matches, prompt, maxLen)
		if !ok {
			continue
		}
		total := utf8.RuneCountInString(contextText) + utf8.RuneCountInString(prompt)
		assert.LessOrEqual(t, total, maxLen, "maxLen %d", maxLen)
	}
}

func TestAssembleContextTakesRankedPrefix(t *testing.T) {
	matches := []core.Match{
		match("best", strings.Repeat("a", 30)),
		match("second", strings.Repeat("b", 30)),
		match("third", strings.Repeat("c", 30)),
	}

	// Budget fits the first two matches only
	contextText, ok := assembleContext(matches, "pp", 65)
	require.True(t, ok)
	assert.Contains(t, contextText, strings.Repeat("a", 30))
	assert.Contains(t, contextText, strings.Repeat("b", 30))
	assert.NotContains(t, contextText, "c")
}
