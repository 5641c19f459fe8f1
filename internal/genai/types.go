package genai

// QuestionCandidate is one generated multiple-choice question after the
// structural contract has been enforced. CorrectAnswer is guaranteed to be
// an integer in [0,3]; the serving boundary relies on the field always being
// present so it can strip it for non-admin callers.
type QuestionCandidate struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// GenerationResult is a fully validated generation payload: exactly ten
// questions plus study resources. It is accepted only in full; partial or
// short results are rejected as a whole, never truncated or padded.
type GenerationResult struct {
	Questions []QuestionCandidate `json:"questions"`
	Resources []string            `json:"resources"`
}
