package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adaptlearn/internal/model"
)

// LevelRepo handles MongoDB operations for per-subject progress levels
type LevelRepo interface {
	GetByUserAndSubject(ctx context.Context, userID, subjectID string) (*model.SubjectLevel, error)
	GetByUser(ctx context.Context, userID string) ([]*model.SubjectLevel, error)
	// Increment bumps the user's level for the subject, creating the record
	// at level 1 when none exists.
	Increment(ctx context.Context, userID, subjectID string) error
	DeleteBySubject(ctx context.Context, subjectID string) error
}

type levelRepo struct {
	collection *mongo.Collection
}

// NewLevelRepo creates a new subject level repository
func NewLevelRepo(db *mongo.Database) LevelRepo {
	return &levelRepo{
		collection: db.Collection("userSubjectLevels"),
	}
}

func (r *levelRepo) GetByUserAndSubject(ctx context.Context, userID, subjectID string) (*model.SubjectLevel, error) {
	var level model.SubjectLevel
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "subjectId": subjectID}).Decode(&level)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *levelRepo) GetByUser(ctx context.Context, userID string) ([]*model.SubjectLevel, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var levels []*model.SubjectLevel
	if err := cursor.All(ctx, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *levelRepo) Increment(ctx context.Context, userID, subjectID string) error {
	now := time.Now()
	filter := bson.M{"userId": userID, "subjectId": subjectID}
	update := bson.M{
		"$inc": bson.M{"level": 1},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"subjectId": subjectID,
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *levelRepo) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"subjectId": subjectID})
	return err
}
