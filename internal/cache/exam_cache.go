package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adaptlearn/internal/model"
)

const examTTL = 30 * time.Minute

// ExamCache caches redacted student views of exams. Only the stripped view
// is ever written here, so a cache hit can never leak an answer key.
type ExamCache interface {
	Set(ctx context.Context, exam *model.StudentExam) error
	Get(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.StudentExam, error)
	DeleteBySubject(ctx context.Context, subjectID string) error
}

type examCache struct {
	client *redis.Client
}

// NewExamCache creates a new exam cache
func NewExamCache(client *redis.Client) ExamCache {
	return &examCache{
		client: client,
	}
}

func (c *examCache) key(subjectID string, difficulty model.Difficulty) string {
	return fmt.Sprintf("exam:%s:%s", subjectID, difficulty)
}

func (c *examCache) Set(ctx context.Context, exam *model.StudentExam) error {
	data, err := json.Marshal(exam)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(exam.SubjectID, exam.Difficulty), data, examTTL).Err()
}

func (c *examCache) Get(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.StudentExam, error) {
	data, err := c.client.Get(ctx, c.key(subjectID, difficulty)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var exam model.StudentExam
	if err := json.Unmarshal([]byte(data), &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *examCache) DeleteBySubject(ctx context.Context, subjectID string) error {
	keys := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		keys = append(keys, c.key(subjectID, d))
	}
	return c.client.Del(ctx, keys...).Err()
}
