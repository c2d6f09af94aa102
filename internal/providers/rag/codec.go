package rag

import (
	"regexp"
	"strings"
)

// DefaultDimension is the vector width expected by the index.
const DefaultDimension = 1536

var (
	nonASCIIRe      = regexp.MustCompile(`[^\x00-\x7F]`)
	nonWordRe       = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// Encode maps text to a fixed-width vector: rune code mod 256 per position,
// truncated to dimension and zero-padded on the right. Deterministic and
// stateless; not a semantic embedding.
func Encode(text string, dimension int) []float32 {
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	vec := make([]float32, dimension)
	for i, r := range []rune(text) {
		if i >= dimension {
			break
		}
		vec[i] = float32(r % 256)
	}
	return vec
}

// SanitizeID normalizes text to an ASCII-safe identifier token: non-ASCII
// runes are stripped, every other non-alphanumeric character becomes "_",
// runs of "_" collapse, and leading/trailing "_" are trimmed. Idempotent.
func SanitizeID(text string) string {
	s := nonASCIIRe.ReplaceAllString(text, "")
	s = nonWordRe.ReplaceAllString(s, "_")
	s = underscoreRunRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
