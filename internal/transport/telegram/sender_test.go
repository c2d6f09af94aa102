package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHTMLShortTextSingleChunk(t *testing.T) {
	chunks := splitHTML("olá", 100)
	assert.Equal(t, []string{"olá"}, chunks)
}

func TestSplitHTMLPrefersNewlineBreaks(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
	chunks := splitHTML(text, 100)
	assert.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 60), chunks[0])
	assert.Equal(t, strings.Repeat("b", 60), chunks[1])
}

func TestSplitHTMLRespectsMaxLen(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := splitHTML(text, 100)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100, "chunk %d", i)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}
