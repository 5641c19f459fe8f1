package genai

import "strings"

// Sanitize strips Markdown code-fence markers (with or without a json
// language tag) from a raw model response and trims surrounding whitespace.
// It never fails and is idempotent: sanitizing already-clean text is a no-op.
// It does not parse JSON.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
