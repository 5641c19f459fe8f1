package service

import (
	"context"
	"errors"
	"log"

	"adaptlearn/internal/cache"
	"adaptlearn/internal/model"
	"adaptlearn/internal/repository"
)

var (
	ErrExamNotFound  = errors.New("exam not found")
	ErrExamLocked    = errors.New("you do not have access to this exam")
	ErrBadSubmission = errors.New("an answer is required for every question")
)

const (
	passingScore   = 7
	pointsPerScore = 10
)

// accessRules gate exams by per-subject level: a user may only sit the exam
// their current level points at.
var accessRules = map[int]model.Difficulty{
	0: model.DifficultyEasy,
	1: model.DifficultyIntermediate,
	2: model.DifficultyHard,
}

func hasAccess(level int, difficulty model.Difficulty) bool {
	rule, ok := accessRules[level]
	return ok && rule == difficulty
}

// SubmitResult is the outcome of scoring one submission.
type SubmitResult struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// ExamService serves exams (redacted for students, full for admins) and
// scores submissions.
type ExamService struct {
	exams       repository.ExamRepo
	attempts    repository.AttemptRepo
	levels      repository.LevelRepo
	users       repository.UserRepo
	examCache   cache.ExamCache
	leaderboard cache.LeaderboardCache
}

// NewExamService creates a new exam service
func NewExamService(
	exams repository.ExamRepo,
	attempts repository.AttemptRepo,
	levels repository.LevelRepo,
	users repository.UserRepo,
	examCache cache.ExamCache,
	leaderboard cache.LeaderboardCache,
) *ExamService {
	return &ExamService{
		exams:       exams,
		attempts:    attempts,
		levels:      levels,
		users:       users,
		examCache:   examCache,
		leaderboard: leaderboard,
	}
}

// GetForAdmin returns the exam with answer keys plus per-student attempt
// summaries.
func (s *ExamService) GetForAdmin(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.Exam, []model.AttemptSummary, error) {
	exam, err := s.exams.GetBySubjectAndDifficulty(ctx, subjectID, difficulty)
	if err != nil {
		return nil, nil, err
	}
	if exam == nil {
		return nil, nil, ErrExamNotFound
	}

	attempts, err := s.attempts.GetByExam(ctx, exam.ID)
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]model.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summary := model.AttemptSummary{UserID: a.UserID, Score: a.Score}
		if user, err := s.users.GetByID(ctx, a.UserID); err == nil && user != nil {
			summary.Name = user.Name
			summary.Email = user.Email
		}
		summaries = append(summaries, summary)
	}
	return exam, summaries, nil
}

// GetForStudent returns the redacted exam view if the student's level
// unlocks the requested difficulty. The answer key never leaves this method:
// only the stripped view is cached and returned.
func (s *ExamService) GetForStudent(ctx context.Context, userID, subjectID string, difficulty model.Difficulty) (*model.StudentExam, error) {
	level, err := s.levelFor(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if !hasAccess(level, difficulty) {
		return nil, ErrExamLocked
	}

	if cached, err := s.examCache.Get(ctx, subjectID, difficulty); err == nil && cached != nil {
		return cached, nil
	}

	exam, err := s.exams.GetBySubjectAndDifficulty(ctx, subjectID, difficulty)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	view := exam.Redacted()
	if err := s.examCache.Set(ctx, view); err != nil {
		log.Printf("exam cache set %s/%s: %v", subjectID, difficulty, err)
	}
	return view, nil
}

// Submit scores a student's answers against the stored keys, records the
// attempt, and on a pass advances the subject level and awards points.
func (s *ExamService) Submit(ctx context.Context, userID, subjectID string, difficulty model.Difficulty, answers []int) (*SubmitResult, error) {
	exam, err := s.exams.GetBySubjectAndDifficulty(ctx, subjectID, difficulty)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}
	if len(answers) != len(exam.Questions) {
		return nil, ErrBadSubmission
	}

	level, err := s.levelFor(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if !hasAccess(level, difficulty) {
		return nil, ErrExamLocked
	}

	score := scoreAnswers(answers, exam.Questions)
	passed := score >= passingScore

	attempt := &model.ExamAttempt{
		UserID:    userID,
		ExamID:    exam.ID,
		Answers:   answers,
		Score:     score,
		Completed: passed,
	}
	if err := s.attempts.Upsert(ctx, attempt); err != nil {
		return nil, err
	}

	if passed {
		if err := s.levels.Increment(ctx, userID, subjectID); err != nil {
			return nil, err
		}
		points := score * pointsPerScore
		if err := s.users.IncrementPoints(ctx, userID, points); err != nil {
			return nil, err
		}
		if err := s.leaderboard.IncrementPoints(ctx, userID, points); err != nil {
			log.Printf("leaderboard update for %s: %v", userID, err)
		}
	}

	return &SubmitResult{Score: score, Passed: passed}, nil
}

func (s *ExamService) levelFor(ctx context.Context, userID, subjectID string) (int, error) {
	level, err := s.levels.GetByUserAndSubject(ctx, userID, subjectID)
	if err != nil {
		return 0, err
	}
	if level == nil {
		return 0, nil
	}
	return level.Level, nil
}

func scoreAnswers(answers []int, questions []model.Question) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}
