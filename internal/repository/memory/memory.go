// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the MongoDB implementations' semantics (owner
// scoping, sort order, duplicate detection) and back the service and API
// tests without a running database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := u
	return &user, nil
}

// ExerciseRepository is an in-memory repository.ExerciseRepository.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *ExerciseRepository) InsertMany(_ context.Context, exercises []domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for i := range exercises {
		exercises[i].ID = primitive.NewObjectID()
		exercises[i].CreatedAt = now
		r.exercises[exercises[i].ID] = exercises[i]
	}
	return nil
}

func (r *ExerciseRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.exercises)), nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	exercise := e
	return &exercise, nil
}

func (r *ExerciseRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Exercise, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.exercises[id]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *ExerciseRepository) List(_ context.Context, category *domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Exercise, 0)
	for _, e := range r.exercises {
		if category != nil && e.Category != *category {
			continue
		}
		if muscleGroup != nil && e.MuscleGroup != *muscleGroup {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// WorkoutRepository is an in-memory repository.WorkoutRepository.
type WorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[primitive.ObjectID]domain.Workout
}

func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *WorkoutRepository) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

	r.workouts[workout.ID] = cloneWorkout(*workout)
	return workout.ID, nil
}

func (r *WorkoutRepository) GetByOwner(_ context.Context, workoutID, userID primitive.ObjectID) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	workout := cloneWorkout(w)
	return &workout, nil
}

func (r *WorkoutRepository) Update(_ context.Context, workoutID, userID primitive.ObjectID, update repository.WorkoutUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}

	if update.Title != nil {
		w.Title = *update.Title
	}
	if update.Notes != nil {
		w.Notes = *update.Notes
	}
	if update.ScheduledAt != nil {
		t := *update.ScheduledAt
		w.ScheduledAt = &t
	}
	if update.Status != nil {
		w.Status = *update.Status
	}
	if update.Exercises != nil {
		w.Exercises = append([]domain.WorkoutExercise(nil), (*update.Exercises)...)
	}
	w.UpdatedAt = time.Now().UTC()

	r.workouts[workoutID] = w
	return nil
}

func (r *WorkoutRepository) Delete(_ context.Context, workoutID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, workoutID)
	return nil
}

func (r *WorkoutRepository) ListByUser(_ context.Context, userID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Workout, 0)
	for _, w := range r.workouts {
		if w.UserID != userID {
			continue
		}
		if status != nil && w.Status != *status {
			continue
		}
		result = append(result, cloneWorkout(w))
	}
	sortBySchedule(result)
	return result, nil
}

func (r *WorkoutRepository) ListForReport(_ context.Context, userID primitive.ObjectID, filter repository.ReportFilter) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Workout, 0)
	for _, w := range r.workouts {
		if w.UserID != userID {
			continue
		}
		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}
		// A present date bound excludes unscheduled workouts, like the
		// scheduledAt range filter does in the mongo implementation.
		if filter.From != nil || filter.To != nil {
			if w.ScheduledAt == nil {
				continue
			}
			if filter.From != nil && w.ScheduledAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && w.ScheduledAt.After(*filter.To) {
				continue
			}
		}
		result = append(result, cloneWorkout(w))
	}
	sortBySchedule(result)
	return result, nil
}

// Exists reports whether a workout document is still stored, regardless of
// owner. Test helper for verifying cascade deletes.
func (r *WorkoutRepository) Exists(workoutID primitive.ObjectID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.workouts[workoutID]
	return ok
}

// StoredExercises returns the persisted entry list of a workout, bypassing
// owner scoping. Test helper.
func (r *WorkoutRepository) StoredExercises(workoutID primitive.ObjectID) []domain.WorkoutExercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workouts[workoutID]
	if !ok {
		return nil
	}
	return append([]domain.WorkoutExercise(nil), w.Exercises...)
}

// sortBySchedule orders by scheduledAt ascending with unscheduled workouts
// first, matching the mongo sort over a possibly missing field.
func sortBySchedule(workouts []domain.Workout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		a, b := workouts[i].ScheduledAt, workouts[j].ScheduledAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.Exercises = append([]domain.WorkoutExercise(nil), w.Exercises...)
	if w.ScheduledAt != nil {
		t := *w.ScheduledAt
		w.ScheduledAt = &t
	}
	return w
}
