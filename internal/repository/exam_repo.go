package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"adaptlearn/internal/model"
)

// ExamRepo handles MongoDB operations for exams
type ExamRepo interface {
	Create(ctx context.Context, exam *model.Exam) (string, error)
	GetBySubjectAndDifficulty(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.Exam, error)
	Delete(ctx context.Context, id string) error
	DeleteBySubject(ctx context.Context, subjectID string) error
}

type examRepo struct {
	collection *mongo.Collection
}

// NewExamRepo creates a new exam repository
func NewExamRepo(db *mongo.Database) ExamRepo {
	return &examRepo{
		collection: db.Collection("exams"),
	}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) (string, error) {
	exam.CreatedAt = time.Now()
	exam.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, exam)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *examRepo) GetBySubjectAndDifficulty(ctx context.Context, subjectID string, difficulty model.Difficulty) (*model.Exam, error) {
	var exam model.Exam
	err := r.collection.FindOne(ctx, bson.M{
		"subjectId":  subjectID,
		"difficulty": difficulty,
	}).Decode(&exam)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *examRepo) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"subjectId": subjectID})
	return err
}
