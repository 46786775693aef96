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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
//
// Exercise entries are embedded in the workout document, so replacing the
// entry list and deleting a workout with its entries are each a single
// document operation, atomic without a multi-document transaction.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout with its embedded exercise entries.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Title == "" {
		return primitive.NilObjectID, errors.New("workout requires userId and title")
	}

	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.Status == "" {
		workout.Status = domain.StatusPending
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByOwner retrieves a workout only when it belongs to the given user.
// A workout owned by someone else is reported as ErrNotFound, same as a
// missing id.
func (r *mongoWorkoutRepository) GetByOwner(ctx context.Context, workoutID, userID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": workoutID, "userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// Update applies a partial update. Only the fields set on the update are
// written; a set Exercises pointer overwrites the whole embedded list in the
// same document write.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workoutID, userID primitive.ObjectID, update repository.WorkoutUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.ScheduledAt != nil {
		set["scheduledAt"] = *update.ScheduledAt
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Exercises != nil {
		set["exercises"] = *update.Exercises
	}

	filter := bson.M{"_id": workoutID, "userId": userID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout document and, with it, every embedded exercise
// entry. Filtering on userId keeps other users' workouts unreachable.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, workoutID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": workoutID, "userId": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByUser returns all workouts owned by the user, optionally filtered by
// status, sorted by scheduledAt ascending. Mongo orders missing fields before
// dates, so unscheduled workouts come first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	if status != nil {
		filter["status"] = *status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})

	return r.find(ctx, filter, findOptions)
}

// ListForReport returns the user's workouts matching the report filter,
// sorted by scheduledAt ascending. A present date bound excludes workouts
// without a scheduled time.
func (r *mongoWorkoutRepository) ListForReport(ctx context.Context, userID primitive.ObjectID, reportFilter repository.ReportFilter) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	if reportFilter.Status != nil {
		filter["status"] = *reportFilter.Status
	}

	dateRange := bson.M{}
	if reportFilter.From != nil {
		dateRange["$gte"] = *reportFilter.From
	}
	if reportFilter.To != nil {
		dateRange["$lte"] = *reportFilter.To
	}
	if len(dateRange) > 0 {
		filter["scheduledAt"] = dateRange
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})

	return r.find(ctx, filter, findOptions)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Workout, error) {
	var workouts []domain.Workout

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Owner listing, optionally narrowed by status.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			// Owner listing and report range scans sorted by schedule.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduledAt", Value: 1}},
			Options: options.Index(),
		},
	}

	// Non-fatal; queries fall back to collection scans.
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Log.Warnw("workout index creation failed", "error", err)
	}
}
