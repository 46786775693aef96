package mongo

import (
	"context"
	"errors"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/logger"
	"trainlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new exercise catalog repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// InsertMany inserts catalog entries in bulk. Used by the startup seeder only.
func (r *mongoExerciseRepository) InsertMany(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	docs := make([]interface{}, len(exercises))
	now := time.Now().UTC()
	for i := range exercises {
		exercises[i].ID = primitive.NewObjectID()
		exercises[i].CreatedAt = now
		docs[i] = exercises[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Count returns the number of catalog entries.
func (r *mongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// GetByID retrieves a single catalog entry.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByIDs retrieves the catalog entries for the given ids.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	if len(ids) == 0 {
		return []domain.Exercise{}, nil
	}

	var exercises []domain.Exercise
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// List returns catalog entries, optionally filtered by category and/or
// muscle group, newest first.
func (r *mongoExerciseRepository) List(ctx context.Context, category *domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) ([]domain.Exercise, error) {
	filter := bson.M{}
	if category != nil {
		filter["category"] = *category
	}
	if muscleGroup != nil {
		filter["muscleGroup"] = *muscleGroup
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var exercises []domain.Exercise
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "muscleGroup", Value: 1}},
			Options: options.Index(),
		},
	}

	// Non-fatal; queries fall back to collection scans.
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Log.Warnw("exercise index creation failed", "error", err)
	}
}
