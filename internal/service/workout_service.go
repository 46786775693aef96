package service

import (
	"context"
	"errors"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/logger"
	"trainlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntryInput is one exercise occurrence submitted with a workout.
type ExerciseEntryInput struct {
	ExerciseID primitive.ObjectID
	Sets       int
	Reps       int
	Weight     *float64
}

// CreateWorkoutInput carries a validated create command.
type CreateWorkoutInput struct {
	Title       string
	Notes       string
	ScheduledAt *time.Time
	Exercises   []ExerciseEntryInput
}

// UpdateWorkoutInput carries a validated partial update. Nil fields are left
// untouched; a set Exercises pointer replaces the entire entry list.
type UpdateWorkoutInput struct {
	Title       *string
	Notes       *string
	ScheduledAt *time.Time
	Status      *domain.WorkoutStatus
	Exercises   *[]ExerciseEntryInput
}

// WorkoutService owns the workout lifecycle business rules.
//
// Every method takes the authenticated user's id. Single-workout operations
// pass it into the repository's owner-scoped lookups, so a workout belonging
// to another user is reported as not found, never as forbidden.
type WorkoutService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error)
	FindByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, userID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error
	AddNotes(ctx context.Context, userID, workoutID primitive.ObjectID, notes string) (*domain.Workout, error)
	// Schedule stamps a new scheduled time and unconditionally resets the
	// status to PENDING: scheduling "un-completes" a workout so it can be
	// performed again.
	Schedule(ctx context.Context, userID, workoutID primitive.ObjectID, scheduledAt time.Time) (*domain.Workout, error)
	ListUserWorkouts(ctx context.Context, userID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error)
	GenerateReport(ctx context.Context, userID primitive.ObjectID, filter repository.ReportFilter) (*domain.WorkoutReport, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// Create persists a new workout with its exercise entries. Entries whose
// exercise reference does not resolve fail the whole create.
func (s *workoutService) Create(ctx context.Context, userID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error) {
	catalog, err := s.resolveCatalog(ctx, input.Exercises)
	if err != nil {
		logger.Log.Errorw("create workout: exercise references did not resolve", "user", userID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to create workout")
	}

	workout := &domain.Workout{
		UserID:      userID,
		Title:       input.Title,
		Notes:       input.Notes,
		ScheduledAt: input.ScheduledAt,
		Status:      domain.StatusPending,
		Exercises:   toEntries(input.Exercises),
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		logger.Log.Errorw("create workout: insert failed", "user", userID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to create workout")
	}
	workout.ID = workoutID

	attachCatalog(workout, catalog)
	return workout, nil
}

// FindByID returns a single workout with resolved exercises.
func (s *workoutService) FindByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Update applies a partial update. Fields present overwrite the stored value;
// a present exercises list replaces the previous one entirely.
func (s *workoutService) Update(ctx context.Context, userID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error) {
	if _, err := s.getOwned(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	update := repository.WorkoutUpdate{
		Title:       input.Title,
		Notes:       input.Notes,
		ScheduledAt: input.ScheduledAt,
		Status:      input.Status,
	}
	if input.Exercises != nil {
		if _, err := s.resolveCatalog(ctx, *input.Exercises); err != nil {
			logger.Log.Errorw("update workout: exercise references did not resolve", "workout", workoutID.Hex(), "error", err)
			return nil, domain.NewInternalError("Failed to update workout")
		}
		entries := toEntries(*input.Exercises)
		update.Exercises = &entries
	}

	if err := s.workoutRepo.Update(ctx, workoutID, userID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Workout not found")
		}
		logger.Log.Errorw("update workout: write failed", "workout", workoutID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to update workout")
	}

	return s.FindByID(ctx, userID, workoutID)
}

// Delete removes the workout together with its embedded exercise entries in
// a single document delete.
func (s *workoutService) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("Workout not found")
		}
		logger.Log.Errorw("delete workout failed", "workout", workoutID.Hex(), "error", err)
		return domain.NewInternalError("Failed to delete workout")
	}
	return nil
}

// AddNotes overwrites the notes field and nothing else.
func (s *workoutService) AddNotes(ctx context.Context, userID, workoutID primitive.ObjectID, notes string) (*domain.Workout, error) {
	if _, err := s.getOwned(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	update := repository.WorkoutUpdate{Notes: &notes}
	if err := s.workoutRepo.Update(ctx, workoutID, userID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Workout not found")
		}
		logger.Log.Errorw("add notes failed", "workout", workoutID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to update workout")
	}
	return s.FindByID(ctx, userID, workoutID)
}

// Schedule sets scheduledAt and resets the status to PENDING regardless of
// the previous state.
func (s *workoutService) Schedule(ctx context.Context, userID, workoutID primitive.ObjectID, scheduledAt time.Time) (*domain.Workout, error) {
	if _, err := s.getOwned(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	pending := domain.StatusPending
	update := repository.WorkoutUpdate{
		ScheduledAt: &scheduledAt,
		Status:      &pending,
	}
	if err := s.workoutRepo.Update(ctx, workoutID, userID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Workout not found")
		}
		logger.Log.Errorw("schedule workout failed", "workout", workoutID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to update workout")
	}
	return s.FindByID(ctx, userID, workoutID)
}

// ListUserWorkouts returns the user's workouts, optionally filtered by
// status, ordered by scheduledAt ascending with unscheduled workouts first.
func (s *workoutService) ListUserWorkouts(ctx context.Context, userID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.ListByUser(ctx, userID, status)
	if err != nil {
		logger.Log.Errorw("list workouts failed", "user", userID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to list workouts")
	}
	if err := s.enrichAll(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GenerateReport aggregates the user's workouts matching the filter.
func (s *workoutService) GenerateReport(ctx context.Context, userID primitive.ObjectID, filter repository.ReportFilter) (*domain.WorkoutReport, error) {
	workouts, err := s.workoutRepo.ListForReport(ctx, userID, filter)
	if err != nil {
		logger.Log.Errorw("report query failed", "user", userID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to generate report")
	}
	if err := s.enrichAll(ctx, workouts); err != nil {
		return nil, err
	}
	report := domain.BuildReport(workouts)
	return &report, nil
}

// getOwned is the ownership gate: fetches the workout scoped to the user and
// maps both "missing" and "not yours" to the same not-found error.
func (s *workoutService) getOwned(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByOwner(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Workout not found")
		}
		logger.Log.Errorw("workout lookup failed", "workout", workoutID.Hex(), "error", err)
		return nil, domain.NewInternalError("Failed to load workout")
	}
	return workout, nil
}

// resolveCatalog loads the catalog entries referenced by the inputs and
// errors when any reference does not resolve.
func (s *workoutService) resolveCatalog(ctx context.Context, entries []ExerciseEntryInput) (map[primitive.ObjectID]*domain.Exercise, error) {
	ids := make([]primitive.ObjectID, 0, len(entries))
	seen := make(map[primitive.ObjectID]bool, len(entries))
	for _, e := range entries {
		if !seen[e.ExerciseID] {
			seen[e.ExerciseID] = true
			ids = append(ids, e.ExerciseID)
		}
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(exercises) != len(ids) {
		return nil, errors.New("one or more exercise references do not exist")
	}

	catalog := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		catalog[exercises[i].ID] = &exercises[i]
	}
	return catalog, nil
}

// enrich attaches resolved catalog entries to a single workout.
func (s *workoutService) enrich(ctx context.Context, workout *domain.Workout) error {
	workouts := []domain.Workout{*workout}
	if err := s.enrichAll(ctx, workouts); err != nil {
		return err
	}
	*workout = workouts[0]
	return nil
}

// enrichAll attaches resolved catalog entries to every workout's entries.
// Entries whose exercise has meanwhile vanished from the catalog keep a nil
// Exercise rather than failing the read.
func (s *workoutService) enrichAll(ctx context.Context, workouts []domain.Workout) error {
	ids := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for i := range workouts {
		for _, e := range workouts[i].Exercises {
			if !seen[e.ExerciseID] {
				seen[e.ExerciseID] = true
				ids = append(ids, e.ExerciseID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Log.Errorw("exercise resolution failed", "error", err)
		return domain.NewInternalError("Failed to load workout exercises")
	}
	catalog := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		catalog[exercises[i].ID] = &exercises[i]
	}

	for i := range workouts {
		attachCatalog(&workouts[i], catalog)
	}
	return nil
}

func attachCatalog(workout *domain.Workout, catalog map[primitive.ObjectID]*domain.Exercise) {
	for i := range workout.Exercises {
		workout.Exercises[i].Exercise = catalog[workout.Exercises[i].ExerciseID]
	}
}

func toEntries(inputs []ExerciseEntryInput) []domain.WorkoutExercise {
	entries := make([]domain.WorkoutExercise, len(inputs))
	for i, in := range inputs {
		entries[i] = domain.WorkoutExercise{
			ExerciseID: in.ExerciseID,
			Sets:       in.Sets,
			Reps:       in.Reps,
			Weight:     in.Weight,
		}
	}
	return entries
}
