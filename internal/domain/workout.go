package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus is the lifecycle state of a workout.
type WorkoutStatus string

const (
	StatusPending   WorkoutStatus = "PENDING"
	StatusCompleted WorkoutStatus = "COMPLETED"
	StatusCancelled WorkoutStatus = "CANCELLED"
)

func (s WorkoutStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// WorkoutExercise is one occurrence of a catalog Exercise inside a workout,
// carrying per-occurrence parameters. Entries live embedded in their parent
// workout document: they are created with it, replaced wholesale on update,
// and removed with it on delete. Never patched individually.
type WorkoutExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     *float64           `bson:"weight,omitempty" json:"weight,omitempty"`

	// Exercise carries the resolved catalog entry on API responses.
	// Not persisted; populated by the service layer.
	Exercise *Exercise `bson:"-" json:"exercise,omitempty"`
}

// Volume is sets × reps × weight for this entry. A missing weight counts
// as zero, it does not exclude the entry.
func (we WorkoutExercise) Volume() float64 {
	weight := 0.0
	if we.Weight != nil {
		weight = *we.Weight
	}
	return float64(we.Sets) * float64(we.Reps) * weight
}

// Workout is a scheduled or logged training session owned by one user.
// UserID is fixed at creation; there is no transfer operation.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ScheduledAt *time.Time         `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	Status      WorkoutStatus      `bson:"status" json:"status"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
