package service

import (
	"context"
	"errors"
	"math"

	"adaptlearn/internal/cache"
	"adaptlearn/internal/model"
	"adaptlearn/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// hoursPerExam assumes each exam takes half an hour of study.
const hoursPerExam = 0.5

// UserService aggregates a user's progress statistics.
type UserService struct {
	users       repository.UserRepo
	attempts    repository.AttemptRepo
	levels      repository.LevelRepo
	leaderboard cache.LeaderboardCache
}

// NewUserService creates a new user service
func NewUserService(
	users repository.UserRepo,
	attempts repository.AttemptRepo,
	levels repository.LevelRepo,
	leaderboard cache.LeaderboardCache,
) *UserService {
	return &UserService{
		users:       users,
		attempts:    attempts,
		levels:      levels,
		leaderboard: leaderboard,
	}
}

// Stats summarizes the user's exam history and progress.
func (s *UserService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	attempts, err := s.attempts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	levels, err := s.levels.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.UserStats{
		User:               user,
		TotalExams:         len(attempts),
		SubjectsInProgress: len(levels),
		StudyHours:         int(math.Round(float64(len(attempts)) * hoursPerExam)),
	}

	totalScore := 0
	for _, a := range attempts {
		totalScore += a.Score
		if a.Completed {
			stats.PassedExams++
		}
	}
	if len(attempts) > 0 {
		stats.AverageScore = float64(totalScore) / float64(len(attempts))
	}
	for _, l := range levels {
		if l.Level > stats.HighestLevel {
			stats.HighestLevel = l.Level
		}
	}
	return stats, nil
}

// Leaderboard returns the top users by points.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	top, err := s.leaderboard.GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(top))
	for _, z := range top {
		userID, _ := z.Member.(string)
		entry := model.LeaderboardEntry{UserID: userID, Points: z.Score}
		if user, err := s.users.GetByID(ctx, userID); err == nil && user != nil {
			entry.Name = user.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
