package model

import (
	"fmt"
	"time"
)

// Difficulty is the level of an exam within a subject.
type Difficulty string

const (
	DifficultyEasy         Difficulty = "easy"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyHard         Difficulty = "hard"
)

// Difficulties lists all levels in ascending order of required mastery.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyIntermediate, DifficultyHard}

// ParseDifficulty validates a difficulty string from a request.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyIntermediate, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("invalid difficulty %q", s)
}

// Question is one multiple-choice item in a persisted exam.
// CorrectAnswer is the 0-based index into Options; it is present on every
// stored question and stripped before serving to students.
type Question struct {
	Text          string     `json:"text" bson:"text"`
	Options       []string   `json:"options" bson:"options"`
	CorrectAnswer int        `json:"correctAnswer" bson:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty" bson:"difficulty"`
}

// Exam is one generated exam for a (subject, difficulty) pair.
type Exam struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	SubjectID  string     `json:"subject" bson:"subjectId"`
	Difficulty Difficulty `json:"difficulty" bson:"difficulty"`
	Questions  []Question `json:"questions" bson:"questions"`
	Resources  []string   `json:"resources" bson:"resources"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// StudentQuestion is a question as served to non-admin callers:
// the answer key is deliberately absent.
type StudentQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// StudentExam is the redacted view of an exam for students.
type StudentExam struct {
	ID         string            `json:"id"`
	SubjectID  string            `json:"subject"`
	Difficulty Difficulty        `json:"difficulty"`
	Questions  []StudentQuestion `json:"questions"`
	Resources  []string          `json:"resources"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Redacted returns the student view of the exam with answer keys stripped.
func (e *Exam) Redacted() *StudentExam {
	questions := make([]StudentQuestion, 0, len(e.Questions))
	for _, q := range e.Questions {
		questions = append(questions, StudentQuestion{Text: q.Text, Options: q.Options})
	}
	return &StudentExam{
		ID:         e.ID,
		SubjectID:  e.SubjectID,
		Difficulty: e.Difficulty,
		Questions:  questions,
		Resources:  e.Resources,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
