package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/pkg/utils"
)

func TestCompressAllWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"already clean", "a short bio", "a short bio"},
		{"collapses runs", "too   many    spaces", "too many spaces"},
		{"newlines become spaces", "line one\nline two\r\nline three", "line one line two line three"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, utils.CompressAllWhitespace(tt.input))
		})
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "short", 5, "short"},
		{"truncated", "a longer sentence", 10, "a longe..."},
		{"tiny budget", "abcdef", 2, "ab"},
		{"zero budget", "abcdef", 0, ""},
		{"multibyte runes", "ééééé", 4, "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, utils.TruncateString(tt.input, tt.maxLength))
		})
	}
}
