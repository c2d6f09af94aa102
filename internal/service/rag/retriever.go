package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/routebot/internal/core"
	ragp "github.com/sandevgo/routebot/internal/providers/rag"
	"github.com/sandevgo/routebot/pkg/log"
)

// NoRelevantInfoMessage is the fixed apology when retrieval produces no
// usable context.
const NoRelevantInfoMessage = "Desculpe, não encontrei informações relevantes para responder à sua pergunta."

const synthesisPreamble = "Responda à pergunta acima usando apenas as informações de contexto a seguir:"

// Retriever answers a prompt from the indexed content: nearest-match
// lookup, budgeted context assembly, then a synthesis completion.
type Retriever struct {
	index     core.VectorIndex
	completer core.Completer
	model     string
	dimension int
	topK      int
	maxLen    int
}

func NewRetriever(index core.VectorIndex, completer core.Completer, model string, dimension, topK, maxResponseLength int) *Retriever {
	if dimension <= 0 {
		dimension = ragp.DefaultDimension
	}
	if topK <= 0 {
		topK = 3
	}
	if maxResponseLength <= 0 {
		maxResponseLength = 5000
	}
	return &Retriever{
		index:     index,
		completer: completer,
		model:     model,
		dimension: dimension,
		topK:      topK,
		maxLen:    maxResponseLength,
	}
}

// Answer runs the retrieval and synthesis pipeline for one prompt.
func (r *Retriever) Answer(ctx context.Context, prompt string) (string, error) {
	vec := ragp.Encode(prompt, r.dimension)

	matches, err := r.index.Query(ctx, vec, r.topK, true)
	if err != nil {
		return "", fmt.Errorf("vector query: %w", err)
	}

	contextText, ok := assembleContext(matches, prompt, r.maxLen)
	if !ok {
		log.FromCtx(ctx).Debug().Int("matches", len(matches)).Msg("no usable context for prompt")
		return NoRelevantInfoMessage, nil
	}

	synthesis := prompt + "\n\n" + synthesisPreamble + "\n\n" + contextText
	reply, err := r.completer.Chat(ctx, []core.Message{
		{Role: core.RoleUser, Content: synthesis},
	}, r.model)
	if err != nil {
		return "", fmt.Errorf("synthesis: %w", err)
	}
	return reply, nil
}

// assembleContext greedily accumulates match contents in ranked order while
// the running total of context plus prompt stays within maxLen characters.
// Returns false when no match fits.
func assembleContext(matches []core.Match, prompt string, maxLen int) (string, bool) {
	budget := maxLen - utf8.RuneCountInString(prompt)

	var parts []string
	used := 0
	for _, match := range matches {
		content := match.Content()
		if content == "" {
			continue
		}
		size := utf8.RuneCountInString(content)
		if len(parts) > 0 {
			size++ // joining newline counts against the budget too
		}
		if used+size > budget {
			break
		}
		parts = append(parts, content)
		used += size
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
