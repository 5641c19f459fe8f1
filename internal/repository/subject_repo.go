package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"adaptlearn/internal/model"
)

// SubjectRepo handles MongoDB operations for subjects
type SubjectRepo interface {
	Create(ctx context.Context, subject *model.Subject) (string, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetAll(ctx context.Context) ([]*model.Subject, error)
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	collection *mongo.Collection
}

// NewSubjectRepo creates a new subject repository
func NewSubjectRepo(db *mongo.Database) SubjectRepo {
	return &subjectRepo{
		collection: db.Collection("subjects"),
	}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) (string, error) {
	subject.CreatedAt = time.Now()
	subject.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, subject)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var subject model.Subject
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	subject.ID = id
	return &subject, nil
}

func (r *subjectRepo) GetAll(ctx context.Context) ([]*model.Subject, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []*model.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
