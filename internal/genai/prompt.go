package genai

import "fmt"

// questionPromptFormat declares the exact output schema the validator
// enforces: 10 questions, 4 options each, integer correctAnswer in [0,3],
// 5 resources.
const questionPromptFormat = `You are a JSON generator for an educational platform. Your task is to generate multiple-choice questions.
Respond ONLY with valid JSON. No extra text.
REQUIREMENTS:
1. Generate exactly 10 multiple-choice questions for %s about %s at %s level.
2. Each question must have exactly 4 unique answer choices.
3. The "correctAnswer" must be an integer (0-3) representing the index of the correct answer.
4. Exactly 5 resources must be included: courses, videos, articles, etc.
5. Respond ONLY with valid JSON - no additional text, no Markdown, no explanations.

STRICT JSON STRUCTURE:
{
  "questions": [
    {
      "text": "Your question here?",
      "options": [
        "First option",
        "Second option",
        "Third option",
        "Fourth option"
      ],
      "correctAnswer": 0
    }
  ],
  "resources": [
    "resource 1 URL",
    "resource 2 URL",
    "resource 3 URL",
    "resource 4 URL",
    "resource 5 URL"
  ]
}`

func questionPrompt(subject, topic, difficulty string) string {
	return fmt.Sprintf(questionPromptFormat, subject, topic, difficulty)
}

func askPrompt(subject, question string) string {
	return fmt.Sprintf("As an educational assistant, provide a concise explanation about %s.\n\nQuestion: %s", subject, question)
}

// Reminder clauses appended to the prompt after each failed attempt. The
// repetition is cumulative: every retry's prompt carries one more reminder
// than the last, which measurably reduces repeat formatting failures.
const (
	jsonReminder  = "REMINDER: Respond ONLY with valid JSON matching the required structure exactly. No Markdown fences, no commentary, no additional text."
	plainReminder = "REMINDER: Reply with a direct plain-text answer to the question. No preamble, no formatting."
)
