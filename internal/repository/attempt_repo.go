package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adaptlearn/internal/model"
)

// AttemptRepo handles MongoDB operations for exam attempts
type AttemptRepo interface {
	// Upsert replaces the user's previous attempt on the exam, if any.
	Upsert(ctx context.Context, attempt *model.ExamAttempt) error
	GetByUser(ctx context.Context, userID string) ([]*model.ExamAttempt, error)
	GetByExam(ctx context.Context, examID string) ([]*model.ExamAttempt, error)
	DeleteByExam(ctx context.Context, examID string) error
}

type attemptRepo struct {
	collection *mongo.Collection
}

// NewAttemptRepo creates a new exam attempt repository
func NewAttemptRepo(db *mongo.Database) AttemptRepo {
	return &attemptRepo{
		collection: db.Collection("examAttempts"),
	}
}

func (r *attemptRepo) Upsert(ctx context.Context, attempt *model.ExamAttempt) error {
	now := time.Now()
	attempt.UpdatedAt = now

	filter := bson.M{"userId": attempt.UserID, "examId": attempt.ExamID}
	update := bson.M{
		"$set": bson.M{
			"answers":   attempt.Answers,
			"score":     attempt.Score,
			"completed": attempt.Completed,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    attempt.UserID,
			"examId":    attempt.ExamID,
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *attemptRepo) GetByUser(ctx context.Context, userID string) ([]*model.ExamAttempt, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.ExamAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepo) GetByExam(ctx context.Context, examID string) ([]*model.ExamAttempt, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"examId": examID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.ExamAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepo) DeleteByExam(ctx context.Context, examID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"examId": examID})
	return err
}
