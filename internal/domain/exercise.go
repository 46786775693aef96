package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies an exercise by training modality.
type ExerciseCategory string

const (
	CategoryCardio      ExerciseCategory = "CARDIO"
	CategoryStrength    ExerciseCategory = "STRENGTH"
	CategoryFlexibility ExerciseCategory = "FLEXIBILITY"
)

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "CHEST"
	MuscleBack      MuscleGroup = "BACK"
	MuscleLegs      MuscleGroup = "LEGS"
	MuscleShoulders MuscleGroup = "SHOULDERS"
	MuscleArms      MuscleGroup = "ARMS"
	MuscleCore      MuscleGroup = "CORE"
	MuscleFullBody  MuscleGroup = "FULL_BODY"
)

// ExerciseCategories lists every valid category, in seeding order.
var ExerciseCategories = []ExerciseCategory{
	CategoryCardio,
	CategoryStrength,
	CategoryFlexibility,
}

// MuscleGroups lists every valid muscle group, in seeding order.
var MuscleGroups = []MuscleGroup{
	MuscleChest,
	MuscleBack,
	MuscleLegs,
	MuscleShoulders,
	MuscleArms,
	MuscleCore,
	MuscleFullBody,
}

func (c ExerciseCategory) IsValid() bool {
	switch c {
	case CategoryCardio, CategoryStrength, CategoryFlexibility:
		return true
	}
	return false
}

func (m MuscleGroup) IsValid() bool {
	switch m {
	case MuscleChest, MuscleBack, MuscleLegs, MuscleShoulders, MuscleArms, MuscleCore, MuscleFullBody:
		return true
	}
	return false
}

// Exercise is a catalog entry describing a movement. Reference data: seeded
// once at startup and never mutated by request traffic.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    ExerciseCategory   `bson:"category" json:"category"`
	MuscleGroup MuscleGroup        `bson:"muscleGroup" json:"muscleGroup"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
