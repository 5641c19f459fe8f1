package model

import "time"

// Subject is a course of study created by an admin. Creating a subject
// triggers AI generation of one exam per difficulty level.
type Subject struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SubjectWithLevel is a subject merged with the requesting user's level.
type SubjectWithLevel struct {
	Subject `bson:",inline"`
	Level   int `json:"level"`
}
