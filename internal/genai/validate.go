package genai

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	questionCount = 10
	optionCount   = 4
	resourceCount = 5
)

// ValidationError describes why generated content was rejected before being
// trusted as exam data. Validation failures are always worth a retry since
// they reflect generator noise rather than a permanent backend condition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid generated content: " + e.Message
}

// rawQuestion mirrors one question in the JSON contract before any field is
// trusted. CorrectAnswer stays a float pointer so missing, fractional and
// out-of-range values can be told apart from zero.
type rawQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *float64 `json:"correctAnswer"`
}

type rawResult struct {
	Questions []rawQuestion `json:"questions"`
	Resources []string      `json:"resources"`
}

// parseResult parses sanitized response text and enforces the structural
// contract. Any defect anywhere rejects the whole payload.
func parseResult(text string) (*GenerationResult, error) {
	var raw rawResult
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	if err := validateResult(&raw); err != nil {
		return nil, err
	}

	result := &GenerationResult{
		Questions: make([]QuestionCandidate, 0, len(raw.Questions)),
		Resources: raw.Resources,
	}
	for _, q := range raw.Questions {
		result.Questions = append(result.Questions, QuestionCandidate{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: int(*q.CorrectAnswer),
		})
	}
	return result, nil
}

// validateResult applies the exam-question contract: exactly 10 questions,
// exactly 4 non-empty options each, non-empty text, an integer correctAnswer
// in [0,3], and exactly the number of resources the prompt declares.
func validateResult(raw *rawResult) error {
	if len(raw.Questions) != questionCount {
		return &ValidationError{Message: fmt.Sprintf("expected exactly %d questions, got %d", questionCount, len(raw.Questions))}
	}
	if len(raw.Resources) != resourceCount {
		return &ValidationError{Message: fmt.Sprintf("expected exactly %d resources, got %d", resourceCount, len(raw.Resources))}
	}
	for i, q := range raw.Questions {
		if q.Text == "" {
			return &ValidationError{Message: fmt.Sprintf("question %d: text is empty", i)}
		}
		if len(q.Options) != optionCount {
			return &ValidationError{Message: fmt.Sprintf("question %d: expected exactly %d options, got %d", i, optionCount, len(q.Options))}
		}
		for j, opt := range q.Options {
			if opt == "" {
				return &ValidationError{Message: fmt.Sprintf("question %d: option %d is empty", i, j)}
			}
		}
		if q.CorrectAnswer == nil {
			return &ValidationError{Message: fmt.Sprintf("question %d: correctAnswer is missing or not a number", i)}
		}
		v := *q.CorrectAnswer
		if v != math.Trunc(v) {
			return &ValidationError{Message: fmt.Sprintf("question %d: correctAnswer %v is not an integer", i, v)}
		}
		if v < 0 || v > float64(optionCount-1) {
			return &ValidationError{Message: fmt.Sprintf("question %d: correctAnswer %v out of range [0,%d]", i, v, optionCount-1)}
		}
	}
	return nil
}
