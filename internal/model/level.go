package model

import "time"

// SubjectLevel tracks how far a user has progressed in a subject.
// Level 0 (no record) unlocks the easy exam, 1 intermediate, 2 hard;
// level 3 means the subject is completed.
type SubjectLevel struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user" bson:"userId"`
	SubjectID string    `json:"subject" bson:"subjectId"`
	Level     int       `json:"level" bson:"level"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
