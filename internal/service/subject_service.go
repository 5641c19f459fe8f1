package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"adaptlearn/internal/cache"
	"adaptlearn/internal/genai"
	"adaptlearn/internal/model"
	"adaptlearn/internal/repository"
)

var ErrSubjectNotFound = errors.New("subject not found")

// QuestionGenerator produces a validated exam payload for one difficulty.
// Implemented by *genai.Service; faked in tests.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, subject, topic, difficulty string, policy *genai.RetryPolicy) (*genai.GenerationResult, error)
}

// SubjectService owns the subject-creation workflow: generate one exam per
// difficulty level, then persist subject and exams together or not at all.
type SubjectService struct {
	subjects    repository.SubjectRepo
	exams       repository.ExamRepo
	levels      repository.LevelRepo
	attempts    repository.AttemptRepo
	examCache   cache.ExamCache
	generator   QuestionGenerator
	broadcaster Broadcaster
}

// NewSubjectService creates a new subject service
func NewSubjectService(
	subjects repository.SubjectRepo,
	exams repository.ExamRepo,
	levels repository.LevelRepo,
	attempts repository.AttemptRepo,
	examCache cache.ExamCache,
	generator QuestionGenerator,
) *SubjectService {
	return &SubjectService{
		subjects:  subjects,
		exams:     exams,
		levels:    levels,
		attempts:  attempts,
		examCache: examCache,
		generator: generator,
	}
}

// SetBroadcaster attaches the ws hub for generation-progress events.
func (s *SubjectService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create generates exams for every difficulty level concurrently, then
// persists the subject and its exams. Nothing is written until all three
// generations succeed; a failed exam insert rolls back the subject and any
// exams already inserted, so a subject is never left half-created.
func (s *SubjectService) Create(ctx context.Context, name, description string) (string, error) {
	jobID := uuid.NewString()[:8]
	s.notify("generation_started", map[string]string{"job": jobID, "subject": name})

	var mu sync.Mutex
	results := make(map[model.Difficulty]*genai.GenerationResult, len(model.Difficulties))

	g, gctx := errgroup.WithContext(ctx)
	for _, difficulty := range model.Difficulties {
		difficulty := difficulty
		g.Go(func() error {
			result, err := s.generator.GenerateQuestions(gctx, name, description, string(difficulty), nil)
			if err != nil {
				return fmt.Errorf("%s exam: %w", difficulty, err)
			}
			mu.Lock()
			results[difficulty] = result
			mu.Unlock()
			s.notify("exam_generated", map[string]string{"job": jobID, "difficulty": string(difficulty)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.notify("generation_failed", map[string]string{"job": jobID, "subject": name})
		return "", err
	}

	subjectID, err := s.subjects.Create(ctx, &model.Subject{Name: name, Description: description})
	if err != nil {
		return "", err
	}

	inserted := make([]string, 0, len(model.Difficulties))
	for _, difficulty := range model.Difficulties {
		examID, err := s.exams.Create(ctx, examFromResult(subjectID, difficulty, results[difficulty]))
		if err != nil {
			s.rollback(ctx, subjectID, inserted)
			s.notify("generation_failed", map[string]string{"job": jobID, "subject": name})
			return "", fmt.Errorf("persisting %s exam: %w", difficulty, err)
		}
		inserted = append(inserted, examID)
	}

	s.notify("subject_ready", map[string]string{"job": jobID, "subjectId": subjectID})
	return subjectID, nil
}

// ListWithLevels returns all subjects merged with the caller's level in each.
func (s *SubjectService) ListWithLevels(ctx context.Context, userID string) ([]*model.SubjectWithLevel, error) {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := s.levels.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	levelBySubject := make(map[string]int, len(levels))
	for _, l := range levels {
		levelBySubject[l.SubjectID] = l.Level
	}

	merged := make([]*model.SubjectWithLevel, 0, len(subjects))
	for _, sub := range subjects {
		merged = append(merged, &model.SubjectWithLevel{Subject: *sub, Level: levelBySubject[sub.ID]})
	}
	return merged, nil
}

// GetWithLevel returns one subject merged with the caller's level.
func (s *SubjectService) GetWithLevel(ctx context.Context, userID, subjectID string) (*model.SubjectWithLevel, error) {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}

	level, err := s.levels.GetByUserAndSubject(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	merged := &model.SubjectWithLevel{Subject: *subject}
	if level != nil {
		merged.Level = level.Level
	}
	return merged, nil
}

// Delete removes a subject with its exams, attempts, progress records and
// cached views.
func (s *SubjectService) Delete(ctx context.Context, subjectID string) error {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		return ErrSubjectNotFound
	}

	for _, difficulty := range model.Difficulties {
		exam, err := s.exams.GetBySubjectAndDifficulty(ctx, subjectID, difficulty)
		if err != nil {
			return err
		}
		if exam == nil {
			continue
		}
		if err := s.attempts.DeleteByExam(ctx, exam.ID); err != nil {
			return err
		}
	}
	if err := s.exams.DeleteBySubject(ctx, subjectID); err != nil {
		return err
	}
	if err := s.levels.DeleteBySubject(ctx, subjectID); err != nil {
		return err
	}
	if err := s.examCache.DeleteBySubject(ctx, subjectID); err != nil {
		log.Printf("subject %s: exam cache invalidation failed: %v", subjectID, err)
	}
	return s.subjects.Delete(ctx, subjectID)
}

func (s *SubjectService) rollback(ctx context.Context, subjectID string, examIDs []string) {
	for _, id := range examIDs {
		if err := s.exams.Delete(ctx, id); err != nil {
			log.Printf("rollback: deleting exam %s: %v", id, err)
		}
	}
	if err := s.subjects.Delete(ctx, subjectID); err != nil {
		log.Printf("rollback: deleting subject %s: %v", subjectID, err)
	}
}

func (s *SubjectService) notify(msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(msgType, payload)
	}
}

func examFromResult(subjectID string, difficulty model.Difficulty, result *genai.GenerationResult) *model.Exam {
	questions := make([]model.Question, 0, len(result.Questions))
	for _, q := range result.Questions {
		questions = append(questions, model.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    difficulty,
		})
	}
	return &model.Exam{
		SubjectID:  subjectID,
		Difficulty: difficulty,
		Questions:  questions,
		Resources:  result.Resources,
	}
}
