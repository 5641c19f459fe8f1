package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"adaptlearn/internal/genai"
	"adaptlearn/internal/model"
)

// In-memory repository and cache fakes shared by the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("user-%d", r.nextID)
	u := *user
	u.ID = id
	r.users[id] = &u
	return id, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) IncrementPoints(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Points += delta
	}
	return nil
}

type fakeSubjectRepo struct {
	mu        sync.Mutex
	subjects  map[string]*model.Subject
	nextID    int
	createErr error
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (r *fakeSubjectRepo) Create(ctx context.Context, subject *model.Subject) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("subject-%d", r.nextID)
	s := *subject
	s.ID = id
	r.subjects[id] = &s
	return id, nil
}

func (r *fakeSubjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subjects[id], nil
}

func (r *fakeSubjectRepo) GetAll(ctx context.Context) ([]*model.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSubjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subjects, id)
	return nil
}

type fakeExamRepo struct {
	mu        sync.Mutex
	exams     map[string]*model.Exam
	nextID    int
	failAfter int // fail Create once this many exams exist; -1 disables
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: make(map[string]*model.Exam), failAfter: -1}
}

func (r *fakeExamRepo) Create(ctx context.Context, exam *model.Exam) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAfter >= 0 && len(r.exams) >= r.failAfter {
		return "", fmt.Errorf("write refused")
	}
	r.nextID++
	id := fmt.Sprintf("exam-%d", r.nextID)
	e := *exam
	e.ID = id
	r.exams[id] = &e
	return id, nil
}

func (r *fakeExamRepo) GetBySubjectAndDifficulty(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exams {
		if e.SubjectID == subjectID && e.Difficulty == difficulty {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeExamRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exams, id)
	return nil
}

func (r *fakeExamRepo) DeleteBySubject(ctx context.Context, subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.exams {
		if e.SubjectID == subjectID {
			delete(r.exams, id)
		}
	}
	return nil
}

type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts []*model.ExamAttempt
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{}
}

func (r *fakeAttemptRepo) Upsert(ctx context.Context, attempt *model.ExamAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.attempts {
		if a.UserID == attempt.UserID && a.ExamID == attempt.ExamID {
			r.attempts[i] = attempt
			return nil
		}
	}
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *fakeAttemptRepo) GetByUser(ctx context.Context, userID string) ([]*model.ExamAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ExamAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) GetByExam(ctx context.Context, examID string) ([]*model.ExamAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ExamAttempt
	for _, a := range r.attempts {
		if a.ExamID == examID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) DeleteByExam(ctx context.Context, examID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.attempts[:0]
	for _, a := range r.attempts {
		if a.ExamID != examID {
			kept = append(kept, a)
		}
	}
	r.attempts = kept
	return nil
}

type fakeLevelRepo struct {
	mu     sync.Mutex
	levels map[string]int // userID + "/" + subjectID
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: make(map[string]int)}
}

func levelKey(userID, subjectID string) string {
	return userID + "/" + subjectID
}

func (r *fakeLevelRepo) set(userID, subjectID string, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[levelKey(userID, subjectID)] = level
}

func (r *fakeLevelRepo) GetByUserAndSubject(ctx context.Context, userID, subjectID string) (*model.SubjectLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.levels[levelKey(userID, subjectID)]
	if !ok {
		return nil, nil
	}
	return &model.SubjectLevel{UserID: userID, SubjectID: subjectID, Level: level}, nil
}

func (r *fakeLevelRepo) GetByUser(ctx context.Context, userID string) ([]*model.SubjectLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SubjectLevel
	prefix := userID + "/"
	for key, level := range r.levels {
		if strings.HasPrefix(key, prefix) {
			out = append(out, &model.SubjectLevel{
				UserID:    userID,
				SubjectID: strings.TrimPrefix(key, prefix),
				Level:     level,
			})
		}
	}
	return out, nil
}

func (r *fakeLevelRepo) Increment(ctx context.Context, userID, subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[levelKey(userID, subjectID)]++
	return nil
}

func (r *fakeLevelRepo) DeleteBySubject(ctx context.Context, subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.levels {
		if strings.HasSuffix(key, "/"+subjectID) {
			delete(r.levels, key)
		}
	}
	return nil
}

type fakeExamCache struct {
	mu      sync.Mutex
	entries map[string]*model.StudentExam
	sets    int
	hits    int
}

func newFakeExamCache() *fakeExamCache {
	return &fakeExamCache{entries: make(map[string]*model.StudentExam)}
}

func cacheKey(subjectID string, difficulty model.Difficulty) string {
	return subjectID + "/" + string(difficulty)
}

func (c *fakeExamCache) Set(ctx context.Context, exam *model.StudentExam) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[cacheKey(exam.SubjectID, exam.Difficulty)] = exam
	return nil
}

func (c *fakeExamCache) Get(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.StudentExam, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if exam, ok := c.entries[cacheKey(subjectID, difficulty)]; ok {
		c.hits++
		return exam, nil
	}
	return nil, nil
}

func (c *fakeExamCache) DeleteBySubject(ctx context.Context, subjectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range model.Difficulties {
		delete(c.entries, cacheKey(subjectID, d))
	}
	return nil
}

type fakeLeaderboard struct {
	mu     sync.Mutex
	points map[string]float64
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{points: make(map[string]float64)}
}

func (l *fakeLeaderboard) IncrementPoints(ctx context.Context, userID string, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.points[userID] += float64(delta)
	return nil
}

func (l *fakeLeaderboard) GetTop(ctx context.Context, limit int) ([]redis.Z, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []redis.Z
	for userID, score := range l.points {
		out = append(out, redis.Z{Member: userID, Score: score})
	}
	return out, nil
}

func (l *fakeLeaderboard) GetRank(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

// fakeGenerator returns a canned result per difficulty, or an error for
// difficulties in failFor.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]error
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{failFor: make(map[string]error)}
}

func (g *fakeGenerator) GenerateQuestions(ctx context.Context, subject, topic, difficulty string, policy *genai.RetryPolicy) (*genai.GenerationResult, error) {
	g.mu.Lock()
	g.calls = append(g.calls, difficulty)
	g.mu.Unlock()

	if err, ok := g.failFor[difficulty]; ok {
		return nil, err
	}

	result := &genai.GenerationResult{}
	for i := 0; i < 10; i++ {
		result.Questions = append(result.Questions, genai.QuestionCandidate{
			Text:          fmt.Sprintf("%s %s question %d?", subject, difficulty, i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
		})
	}
	for i := 0; i < 5; i++ {
		result.Resources = append(result.Resources, fmt.Sprintf("https://example.com/%s/%d", difficulty, i+1))
	}
	return result, nil
}

// recordingBroadcaster captures every event type sent through it.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) Broadcast(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, msgType)
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}
