package service

import (
	"context"
	"errors"
	"fmt"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/logger"
	"trainlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Number of catalog entries the startup seeder inserts.
const seedExerciseCount = 100

// ExerciseService exposes the read-only exercise catalog.
type ExerciseService interface {
	List(ctx context.Context, category *domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) ([]domain.Exercise, error)
	GetByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	// Seed populates the catalog once. A non-empty catalog is left alone.
	Seed(ctx context.Context) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// List returns catalog entries, optionally filtered.
func (s *exerciseService) List(ctx context.Context, category *domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, category, muscleGroup)
	if err != nil {
		logger.Log.Errorw("exercise list failed", "error", err)
		return nil, domain.NewInternalError("Failed to list exercises")
	}
	return exercises, nil
}

// GetByID returns a single catalog entry.
func (s *exerciseService) GetByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Exercise not found")
		}
		logger.Log.Errorw("exercise lookup failed", "error", err)
		return nil, domain.NewInternalError("Failed to load exercise")
	}
	return exercise, nil
}

// Seed inserts the generated exercise catalog if the collection is empty.
// Safe to call on every startup.
func (s *exerciseService) Seed(ctx context.Context) error {
	count, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Infow("exercises already seeded, skipping", "count", count)
		return nil
	}

	exercises := make([]domain.Exercise, seedExerciseCount)
	for i := range exercises {
		exercises[i] = domain.Exercise{
			Name:        fmt.Sprintf("Exercise %d", i+1),
			Description: fmt.Sprintf("Auto-generated exercise number %d", i+1),
			Category:    domain.ExerciseCategories[i%len(domain.ExerciseCategories)],
			MuscleGroup: domain.MuscleGroups[i%len(domain.MuscleGroups)],
		}
	}

	if err := s.exerciseRepo.InsertMany(ctx, exercises); err != nil {
		return err
	}
	logger.Log.Infow("exercise catalog seeded", "count", seedExerciseCount)
	return nil
}
