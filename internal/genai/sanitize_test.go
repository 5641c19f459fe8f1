package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json untouched",
			input:    `{"questions":[]}`,
			expected: `{"questions":[]}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"questions\":[]}\n```",
			expected: `{"questions":[]}`,
		},
		{
			name:     "bare fence stripped",
			input:    "```\n{\"questions\":[]}\n```",
			expected: `{"questions":[]}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"a\":1}\n\t",
			expected: `{"a":1}`,
		},
		{
			name:     "multiple fences all removed",
			input:    "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```",
			expected: "{\"a\":1}\n\n\n{\"b\":2}",
		},
		{
			name:     "fence markers inside text removed",
			input:    "prefix ```json middle ``` suffix",
			expected: "prefix  middle  suffix",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"questions\":[]}\n```",
		"  plain text  ",
		"```\nfenced\n```",
		"",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "sanitizing twice must equal sanitizing once for %q", input)
	}
}
