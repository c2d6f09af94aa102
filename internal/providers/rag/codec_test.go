package rag

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDimension(t *testing.T) {
	for _, n := range []int{0, 1, 100, 1536, 1537, 5000} {
		text := strings.Repeat("k", n)
		vec := Encode(text, DefaultDimension)
		require.Len(t, vec, DefaultDimension, "input length %d", n)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	text := "qual foi minha primeira mensagem?"
	assert.Equal(t, Encode(text, DefaultDimension), Encode(text, DefaultDimension))
}

func TestEncodeValues(t *testing.T) {
	vec := Encode("Ab", 4)
	assert.Equal(t, []float32{65, 98, 0, 0}, vec)
}

func TestEncodeTruncates(t *testing.T) {
	long := strings.Repeat("z", 5000)
	vec := Encode(long, 8)
	require.Len(t, vec, 8)
	for _, v := range vec {
		assert.Equal(t, float32('z'), v)
	}
}

func TestSanitizeID(t *testing.T) {
	asciiToken := regexp.MustCompile(`^[A-Za-z0-9_]*$`)

	tests := []struct {
		in   string
		want string
	}{
		{"https://www.waproject.com.br/", "https_www_waproject_com_br"},
		{"São Paulo!", "So_Paulo"},
		{"___already__clean___", "already_clean"},
		{"", ""},
		{"!!??", ""},
	}

	for _, tt := range tests {
		got := SanitizeID(tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, asciiToken.MatchString(got), "token %q must be ASCII-safe", got)
		assert.Equal(t, got, SanitizeID(got), "sanitize must be idempotent for %q", tt.in)
	}
}
