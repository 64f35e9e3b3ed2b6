package exporters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "collapses whitespace",
			input:    "file\nname\t  with\rspaces",
			expected: "file name with spaces",
		},
		{
			name:     "removes hashtags and replaces brackets",
			input:    "#author [alias]",
			expected: "author (alias)",
		},
		{
			name:     "returns Untitled for only special chars",
			input:    "<>:?*",
			expected: "Untitled",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestNoteFilename(t *testing.T) {
	assert.Equal(t, "Marcus Aurelius.md", noteFilename("marcus aurelius"))
	assert.Equal(t, "Émile Zola.md", noteFilename("émile zola"))
	assert.Equal(t, "Acdc.md", noteFilename("ac/dc"))
}
