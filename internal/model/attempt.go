package model

import "time"

// ExamAttempt records a student's latest submission for an exam.
// Resubmitting the same exam overwrites the previous attempt.
type ExamAttempt struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user" bson:"userId"`
	ExamID    string    `json:"exam" bson:"examId"`
	Answers   []int     `json:"answers" bson:"answers"`
	Score     int       `json:"score" bson:"score"`
	Completed bool      `json:"completed" bson:"completed"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AttemptSummary is the admin view of one student's attempt on an exam.
type AttemptSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Score  int    `json:"score"`
}
