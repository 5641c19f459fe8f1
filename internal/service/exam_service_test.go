package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptlearn/internal/model"
)

func seedExam(t *testing.T, exams *fakeExamRepo, subjectID string, difficulty model.Difficulty) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		SubjectID:  subjectID,
		Difficulty: difficulty,
	}
	for i := 0; i < 10; i++ {
		exam.Questions = append(exam.Questions, model.Question{
			Text:          "Q?",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Difficulty:    difficulty,
		})
	}
	exam.Resources = []string{"r1", "r2", "r3", "r4", "r5"}

	id, err := exams.Create(context.Background(), exam)
	require.NoError(t, err)
	exam.ID = id
	return exam
}

func newExamServiceFixture() (*ExamService, *fakeExamRepo, *fakeAttemptRepo, *fakeLevelRepo, *fakeUserRepo, *fakeExamCache, *fakeLeaderboard) {
	exams := newFakeExamRepo()
	attempts := newFakeAttemptRepo()
	levels := newFakeLevelRepo()
	users := newFakeUserRepo()
	examCache := newFakeExamCache()
	leaderboard := newFakeLeaderboard()
	svc := NewExamService(exams, attempts, levels, users, examCache, leaderboard)
	return svc, exams, attempts, levels, users, examCache, leaderboard
}

// correctAnswers returns a fully correct answer sheet for the seeded exam.
func correctAnswers() []int {
	answers := make([]int, 10)
	for i := range answers {
		answers[i] = i % 4
	}
	return answers
}

func TestGetForStudentRedactsAnswers(t *testing.T) {
	svc, exams, _, _, _, examCache, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	view, err := svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyEasy)
	require.NoError(t, err)

	assert.Len(t, view.Questions, 10)
	for _, q := range view.Questions {
		assert.Len(t, q.Options, 4)
	}
	assert.Equal(t, 1, examCache.sets)

	// Second fetch comes from the cache.
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, examCache.hits)
	assert.Equal(t, 1, examCache.sets)
}

func TestGetForStudentGating(t *testing.T) {
	svc, exams, _, levels, _, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	seedExam(t, exams, "subject-1", model.DifficultyIntermediate)
	seedExam(t, exams, "subject-1", model.DifficultyHard)
	ctx := context.Background()

	// Level 0 (no record) unlocks easy only.
	_, err := svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyEasy)
	assert.NoError(t, err)
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyIntermediate)
	assert.ErrorIs(t, err, ErrExamLocked)
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyHard)
	assert.ErrorIs(t, err, ErrExamLocked)

	// Level 1 unlocks intermediate only, including the exam already passed.
	levels.set("user-1", "subject-1", 1)
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyEasy)
	assert.ErrorIs(t, err, ErrExamLocked)
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyIntermediate)
	assert.NoError(t, err)

	// Level 3 means the subject is finished; everything is locked.
	levels.set("user-1", "subject-1", 3)
	_, err = svc.GetForStudent(ctx, "user-1", "subject-1", model.DifficultyHard)
	assert.ErrorIs(t, err, ErrExamLocked)
}

func TestGetForStudentMissingExam(t *testing.T) {
	svc, _, _, _, _, _, _ := newExamServiceFixture()

	_, err := svc.GetForStudent(context.Background(), "user-1", "subject-9", model.DifficultyEasy)
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestSubmitPassAdvancesLevelAndAwardsPoints(t *testing.T) {
	svc, exams, attempts, levels, users, _, leaderboard := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	userID, err := users.Create(ctx, &model.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	result, err := svc.Submit(ctx, userID, "subject-1", model.DifficultyEasy, correctAnswers())
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.True(t, result.Passed)

	level, err := levels.GetByUserAndSubject(ctx, userID, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, 1, level.Level)

	user, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, user.Points)
	assert.Equal(t, float64(100), leaderboard.points[userID])

	recorded, err := attempts.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].Completed)
}

func TestSubmitFailRecordsAttemptWithoutAdvancing(t *testing.T) {
	svc, exams, attempts, levels, users, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	userID, err := users.Create(ctx, &model.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	// Six correct answers is below the passing threshold of seven.
	answers := correctAnswers()
	for i := 6; i < 10; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := svc.Submit(ctx, userID, "subject-1", model.DifficultyEasy, answers)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Score)
	assert.False(t, result.Passed)

	level, err := levels.GetByUserAndSubject(ctx, userID, "subject-1")
	require.NoError(t, err)
	assert.Nil(t, level)

	user, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points)

	recorded, err := attempts.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Completed)
}

func TestSubmitBoundaryScorePasses(t *testing.T) {
	svc, exams, _, levels, users, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	userID, err := users.Create(ctx, &model.User{Name: "Carol", Email: "carol@example.com"})
	require.NoError(t, err)

	answers := correctAnswers()
	for i := 7; i < 10; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := svc.Submit(ctx, userID, "subject-1", model.DifficultyEasy, answers)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Score)
	assert.True(t, result.Passed)

	level, err := levels.GetByUserAndSubject(ctx, userID, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, 1, level.Level)
}

func TestSubmitRejectsIncompleteAnswerSheet(t *testing.T) {
	svc, exams, _, _, _, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)

	_, err := svc.Submit(context.Background(), "user-1", "subject-1", model.DifficultyEasy, []int{0, 1, 2})
	assert.ErrorIs(t, err, ErrBadSubmission)
}

func TestSubmitRespectsGating(t *testing.T) {
	svc, exams, _, _, _, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyHard)

	_, err := svc.Submit(context.Background(), "user-1", "subject-1", model.DifficultyHard, correctAnswers())
	assert.ErrorIs(t, err, ErrExamLocked)
}

func TestSubmitOverwritesPreviousAttempt(t *testing.T) {
	svc, exams, attempts, _, users, _, _ := newExamServiceFixture()
	seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	userID, err := users.Create(ctx, &model.User{Name: "Dave", Email: "dave@example.com"})
	require.NoError(t, err)

	answers := correctAnswers()
	for i := range answers {
		answers[i] = (answers[i] + 1) % 4
	}
	_, err = svc.Submit(ctx, userID, "subject-1", model.DifficultyEasy, answers)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, userID, "subject-1", model.DifficultyEasy, correctAnswers())
	require.NoError(t, err)

	recorded, err := attempts.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, 10, recorded[0].Score)
}

func TestGetForAdminIncludesAnswerKeysAndAttempts(t *testing.T) {
	svc, exams, attempts, _, users, _, _ := newExamServiceFixture()
	exam := seedExam(t, exams, "subject-1", model.DifficultyEasy)
	ctx := context.Background()

	userID, err := users.Create(ctx, &model.User{Name: "Eve", Email: "eve@example.com"})
	require.NoError(t, err)
	require.NoError(t, attempts.Upsert(ctx, &model.ExamAttempt{UserID: userID, ExamID: exam.ID, Score: 8}))

	got, summaries, err := svc.GetForAdmin(ctx, "subject-1", model.DifficultyEasy)
	require.NoError(t, err)

	assert.Equal(t, exam.ID, got.ID)
	assert.Len(t, got.Questions, 10)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Eve", summaries[0].Name)
	assert.Equal(t, 8, summaries[0].Score)
}
