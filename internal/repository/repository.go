package repository

import (
	"context"
	"time"

	"trainlog/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate when the email is
	// already registered (unique index on email).
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
// The catalog is reference data: inserted once by the seeder, read-only after.
type ExerciseRepository interface {
	InsertMany(ctx context.Context, exercises []domain.Exercise) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByIDs returns the catalog entries for the given ids. Missing ids are
	// simply absent from the result; the caller decides whether that matters.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	List(ctx context.Context, category *domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) ([]domain.Exercise, error)
}

// WorkoutUpdate carries the fields of a partial workout update.
// A nil field is left untouched; a set Exercises pointer replaces the
// embedded entry list wholesale.
type WorkoutUpdate struct {
	Title       *string
	Notes       *string
	ScheduledAt *time.Time
	Status      *domain.WorkoutStatus
	Exercises   *[]domain.WorkoutExercise
}

// ReportFilter narrows the workout set a report is built from. Date bounds
// are inclusive on scheduledAt; a present bound excludes workouts that have
// no scheduled time.
type ReportFilter struct {
	From   *time.Time
	To     *time.Time
	Status *domain.WorkoutStatus
}

// WorkoutRepository defines the interface for interacting with workout data.
//
// Every single-record method takes the owning user id and filters on it
// together with the workout id, so a workout that exists but belongs to
// someone else surfaces as ErrNotFound, indistinguishable from a missing id.
// Exercise entries are embedded in the workout document, which makes entry
// replacement and cascade delete single-document atomic operations.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByOwner(ctx context.Context, workoutID, userID primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, workoutID, userID primitive.ObjectID, update WorkoutUpdate) error
	Delete(ctx context.Context, workoutID, userID primitive.ObjectID) error
	// ListByUser returns the user's workouts ordered by scheduledAt ascending,
	// unscheduled workouts first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error)
	ListForReport(ctx context.Context, userID primitive.ObjectID, filter ReportFilter) ([]domain.Workout, error)
}
