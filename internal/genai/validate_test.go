package genai

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validPayload builds a structurally valid generation payload that tests can
// mutate before marshaling.
func validPayload() *rawResult {
	raw := &rawResult{}
	for i := 0; i < questionCount; i++ {
		answer := float64(i % optionCount)
		raw.Questions = append(raw.Questions, rawQuestion{
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: &answer,
		})
	}
	for i := 0; i < resourceCount; i++ {
		raw.Resources = append(raw.Resources, fmt.Sprintf("https://example.com/resource/%d", i+1))
	}
	return raw
}

func marshalPayload(t *testing.T, raw *rawResult) string {
	t.Helper()
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	return string(data)
}

func TestParseResultValid(t *testing.T) {
	result, err := parseResult(marshalPayload(t, validPayload()))
	require.NoError(t, err)

	assert.Len(t, result.Questions, questionCount)
	assert.Len(t, result.Resources, resourceCount)
	assert.Equal(t, "Question 1?", result.Questions[0].Text)
	assert.Equal(t, 0, result.Questions[0].CorrectAnswer)
	assert.Equal(t, 1, result.Questions[1].CorrectAnswer)
}

func TestParseResultMalformedJSON(t *testing.T) {
	_, err := parseResult("this is not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON parse error")
}

func TestParseResultWrongQuestionCount(t *testing.T) {
	raw := validPayload()
	raw.Questions = raw.Questions[:questionCount-1]

	_, err := parseResult(marshalPayload(t, raw))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "expected exactly 10 questions")

	raw = validPayload()
	raw.Questions = append(raw.Questions, raw.Questions[0])
	_, err = parseResult(marshalPayload(t, raw))
	require.ErrorAs(t, err, &verr)
}

func TestParseResultWrongResourceCount(t *testing.T) {
	raw := validPayload()
	raw.Resources = raw.Resources[:resourceCount-1]

	_, err := parseResult(marshalPayload(t, raw))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "resources")
}

func TestParseResultWrongOptionCount(t *testing.T) {
	raw := validPayload()
	raw.Questions[3].Options = []string{"A", "B", "C"}

	_, err := parseResult(marshalPayload(t, raw))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "question 3")
	assert.Contains(t, verr.Message, "options")
}

func TestParseResultEmptyFields(t *testing.T) {
	raw := validPayload()
	raw.Questions[0].Text = ""
	_, err := parseResult(marshalPayload(t, raw))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "text is empty")

	raw = validPayload()
	raw.Questions[5].Options[2] = ""
	_, err = parseResult(marshalPayload(t, raw))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "option 2 is empty")
}

func TestParseResultCorrectAnswerRange(t *testing.T) {
	tests := []struct {
		name   string
		answer *float64
	}{
		{"missing", nil},
		{"negative", ptr(-1.0)},
		{"too large", ptr(4.0)},
		{"fractional", ptr(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validPayload()
			raw.Questions[2].CorrectAnswer = tt.answer

			_, err := parseResult(marshalPayload(t, raw))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, "question 2")
		})
	}
}

func TestParseResultBoundaryAnswersAccepted(t *testing.T) {
	raw := validPayload()
	raw.Questions[0].CorrectAnswer = ptr(0.0)
	raw.Questions[1].CorrectAnswer = ptr(3.0)

	result, err := parseResult(marshalPayload(t, raw))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Questions[0].CorrectAnswer)
	assert.Equal(t, 3, result.Questions[1].CorrectAnswer)
}

func ptr(f float64) *float64 {
	return &f
}
