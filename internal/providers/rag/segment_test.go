package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentText(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		maxLen      int
		wantLengths []int
	}{
		{
			name:        "empty input",
			text:        "",
			maxLen:      1000,
			wantLengths: nil,
		},
		{
			name:        "shorter than limit",
			text:        "hello",
			maxLen:      1000,
			wantLengths: []int{5},
		},
		{
			name:        "exact multiple",
			text:        strings.Repeat("a", 2000),
			maxLen:      1000,
			wantLengths: []int{1000, 1000},
		},
		{
			name:        "remainder in last segment",
			text:        strings.Repeat("x", 2500),
			maxLen:      1000,
			wantLengths: []int{1000, 1000, 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := SegmentText(tt.text, tt.maxLen)
			require.Len(t, segments, len(tt.wantLengths))

			var rebuilt strings.Builder
			for i, seg := range segments {
				assert.Equal(t, i, seg.Index)
				assert.Len(t, []rune(seg.Text), tt.wantLengths[i])
				rebuilt.WriteString(seg.Text)
			}
			assert.Equal(t, tt.text, rebuilt.String(), "concatenation must reconstruct the input")
		})
	}
}

func TestSegmentTextMultibyte(t *testing.T) {
	text := strings.Repeat("ação é ótima. ", 100)
	segments := SegmentText(text, 64)

	var rebuilt strings.Builder
	for _, seg := range segments {
		assert.LessOrEqual(t, len([]rune(seg.Text)), 64)
		rebuilt.WriteString(seg.Text)
	}
	assert.Equal(t, text, rebuilt.String())
}
