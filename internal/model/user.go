package model

import "time"

// Role controls which endpoints a user may reach.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a registered account. Password holds the bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      Role      `json:"role" bson:"role"`
	Points    int       `json:"points" bson:"points"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserStats summarizes a student's progress across all subjects.
type UserStats struct {
	User               *User   `json:"user"`
	TotalExams         int     `json:"totalExams"`
	PassedExams        int     `json:"passedExams"`
	AverageScore       float64 `json:"averageScore"`
	SubjectsInProgress int     `json:"subjectsInProgress"`
	StudyHours         int     `json:"studyHours"`
	HighestLevel       int     `json:"highestLevel"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}
