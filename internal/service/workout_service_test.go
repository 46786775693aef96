package service_test

import (
	"context"
	"testing"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/repository"
	"trainlog/workout-app/internal/repository/memory"
	"trainlog/workout-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutFixture struct {
	svc          service.WorkoutService
	workoutRepo  *memory.WorkoutRepository
	exerciseRepo *memory.ExerciseRepository
	exercises    []domain.Exercise
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()

	exerciseRepo := memory.NewExerciseRepository()
	catalog := []domain.Exercise{
		{Name: "Bench Press", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleChest},
		{Name: "Squat", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleLegs},
		{Name: "Plank", Category: domain.CategoryFlexibility, MuscleGroup: domain.MuscleCore},
	}
	require.NoError(t, exerciseRepo.InsertMany(context.Background(), catalog))

	workoutRepo := memory.NewWorkoutRepository()
	return &workoutFixture{
		svc:          service.NewWorkoutService(workoutRepo, exerciseRepo),
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		exercises:    catalog,
	}
}

func (f *workoutFixture) entry(i int, sets, reps int, weight *float64) service.ExerciseEntryInput {
	return service.ExerciseEntryInput{
		ExerciseID: f.exercises[i].ID,
		Sets:       sets,
		Reps:       reps,
		Weight:     weight,
	}
}

func (f *workoutFixture) create(t *testing.T, userID primitive.ObjectID, input service.CreateWorkoutInput) *domain.Workout {
	t.Helper()
	workout, err := f.svc.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return workout
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestCreateWorkout(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title:     "Push day",
		Notes:     "go heavy",
		Exercises: []service.ExerciseEntryInput{f.entry(0, 3, 10, floatPtr(60))},
	})

	assert.Equal(t, userID, workout.UserID)
	assert.Equal(t, domain.StatusPending, workout.Status)
	require.Len(t, workout.Exercises, 1)
	require.NotNil(t, workout.Exercises[0].Exercise)
	assert.Equal(t, "Bench Press", workout.Exercises[0].Exercise.Name)

	// findById returns exactly the submitted entries.
	found, err := f.svc.FindByID(ctx, userID, workout.ID)
	require.NoError(t, err)
	require.Len(t, found.Exercises, 1)
	assert.Equal(t, f.exercises[0].ID, found.Exercises[0].ExerciseID)
	assert.Equal(t, 3, found.Exercises[0].Sets)
	assert.Equal(t, 10, found.Exercises[0].Reps)
	require.NotNil(t, found.Exercises[0].Weight)
	assert.Equal(t, 60.0, *found.Exercises[0].Weight)
}

func TestCreateWorkoutUnresolvedExerciseReference(t *testing.T) {
	f := newWorkoutFixture(t)
	userID := primitive.NewObjectID()

	_, err := f.svc.Create(context.Background(), userID, service.CreateWorkoutInput{
		Title: "Ghost day",
		Exercises: []service.ExerciseEntryInput{{
			ExerciseID: primitive.NewObjectID(), // not in the catalog
			Sets:       3,
			Reps:       10,
		}},
	})

	domainErr := requireDomainError(t, err, domain.KindInternal)
	assert.Equal(t, "Failed to create workout", domainErr.Message)
}

func TestUpdateWorkoutPartialFields(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	scheduled := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title:       "Leg day",
		Notes:       "original notes",
		ScheduledAt: &scheduled,
		Exercises:   []service.ExerciseEntryInput{f.entry(1, 5, 5, floatPtr(100))},
	})

	title := "Heavy leg day"
	updated, err := f.svc.Update(ctx, userID, workout.ID, service.UpdateWorkoutInput{Title: &title})
	require.NoError(t, err)

	// Only the title changed.
	assert.Equal(t, "Heavy leg day", updated.Title)
	assert.Equal(t, "original notes", updated.Notes)
	assert.Equal(t, domain.StatusPending, updated.Status)
	require.NotNil(t, updated.ScheduledAt)
	assert.True(t, updated.ScheduledAt.Equal(scheduled))
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, f.exercises[1].ID, updated.Exercises[0].ExerciseID)
}

func TestUpdateWorkoutReplacesExerciseList(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title: "Full body",
		Exercises: []service.ExerciseEntryInput{
			f.entry(0, 3, 10, floatPtr(60)),
			f.entry(1, 5, 5, floatPtr(100)),
		},
	})

	replacement := []service.ExerciseEntryInput{f.entry(2, 4, 1, nil)}
	updated, err := f.svc.Update(ctx, userID, workout.ID, service.UpdateWorkoutInput{Exercises: &replacement})
	require.NoError(t, err)

	// The previous entries are gone, wholesale.
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, f.exercises[2].ID, updated.Exercises[0].ExerciseID)

	stored := f.workoutRepo.StoredExercises(workout.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, f.exercises[2].ID, stored[0].ExerciseID)
}

func TestUpdateWorkoutExplicitStatus(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title:     "Morning run",
		Exercises: []service.ExerciseEntryInput{f.entry(2, 1, 1, nil)},
	})

	for _, status := range []domain.WorkoutStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusPending} {
		s := status
		updated, err := f.svc.Update(ctx, userID, workout.ID, service.UpdateWorkoutInput{Status: &s})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestScheduleAlwaysResetsToPending(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	for _, prior := range []domain.WorkoutStatus{domain.StatusPending, domain.StatusCompleted, domain.StatusCancelled} {
		prior := prior
		t.Run(string(prior), func(t *testing.T) {
			workout := f.create(t, userID, service.CreateWorkoutInput{
				Title:     "Session",
				Exercises: []service.ExerciseEntryInput{f.entry(0, 2, 8, nil)},
			})
			s := prior
			_, err := f.svc.Update(ctx, userID, workout.ID, service.UpdateWorkoutInput{Status: &s})
			require.NoError(t, err)

			at := time.Date(2026, 4, 2, 7, 30, 0, 0, time.UTC)
			scheduled, err := f.svc.Schedule(ctx, userID, workout.ID, at)
			require.NoError(t, err)

			assert.Equal(t, domain.StatusPending, scheduled.Status)
			require.NotNil(t, scheduled.ScheduledAt)
			assert.True(t, scheduled.ScheduledAt.Equal(at))
		})
	}
}

func TestAddNotesOverwritesNotesOnly(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title:     "Pull day",
		Notes:     "old",
		Exercises: []service.ExerciseEntryInput{f.entry(1, 3, 8, floatPtr(80))},
	})

	updated, err := f.svc.AddNotes(ctx, userID, workout.ID, "felt strong")
	require.NoError(t, err)

	assert.Equal(t, "felt strong", updated.Notes)
	assert.Equal(t, "Pull day", updated.Title)
	assert.Equal(t, domain.StatusPending, updated.Status)
	require.Len(t, updated.Exercises, 1)
}

func TestOwnershipMismatchLooksLikeMissing(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	workout := f.create(t, owner, service.CreateWorkoutInput{
		Title:     "Private session",
		Exercises: []service.ExerciseEntryInput{f.entry(0, 3, 10, nil)},
	})

	_, missingErr := f.svc.FindByID(ctx, owner, primitive.NewObjectID())
	missing := requireDomainError(t, missingErr, domain.KindNotFound)

	t.Run("findById", func(t *testing.T) {
		_, err := f.svc.FindByID(ctx, stranger, workout.ID)
		notOwned := requireDomainError(t, err, domain.KindNotFound)
		assert.Equal(t, missing.Message, notOwned.Message)
	})

	t.Run("update", func(t *testing.T) {
		title := "hijacked"
		_, err := f.svc.Update(ctx, stranger, workout.ID, service.UpdateWorkoutInput{Title: &title})
		notOwned := requireDomainError(t, err, domain.KindNotFound)
		assert.Equal(t, missing.Message, notOwned.Message)
	})

	t.Run("delete", func(t *testing.T) {
		err := f.svc.Delete(ctx, stranger, workout.ID)
		notOwned := requireDomainError(t, err, domain.KindNotFound)
		assert.Equal(t, missing.Message, notOwned.Message)
		assert.True(t, f.workoutRepo.Exists(workout.ID), "stranger delete must not remove the workout")
	})

	t.Run("addNotes", func(t *testing.T) {
		_, err := f.svc.AddNotes(ctx, stranger, workout.ID, "graffiti")
		requireDomainError(t, err, domain.KindNotFound)
	})

	t.Run("schedule", func(t *testing.T) {
		_, err := f.svc.Schedule(ctx, stranger, workout.ID, time.Now().UTC())
		requireDomainError(t, err, domain.KindNotFound)
	})
}

func TestDeleteCascades(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	workout := f.create(t, userID, service.CreateWorkoutInput{
		Title: "Doomed",
		Exercises: []service.ExerciseEntryInput{
			f.entry(0, 3, 10, floatPtr(60)),
			f.entry(1, 5, 5, nil),
		},
	})

	require.NoError(t, f.svc.Delete(ctx, userID, workout.ID))

	_, err := f.svc.FindByID(ctx, userID, workout.ID)
	requireDomainError(t, err, domain.KindNotFound)

	// No workout document and no orphaned entries remain.
	assert.False(t, f.workoutRepo.Exists(workout.ID))
	assert.Nil(t, f.workoutRepo.StoredExercises(workout.ID))

	err = f.svc.Delete(ctx, userID, workout.ID)
	requireDomainError(t, err, domain.KindNotFound)
}

func TestListUserWorkoutsOrderingAndFilter(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	late := f.create(t, userID, service.CreateWorkoutInput{
		Title:       "Later",
		ScheduledAt: timePtr(time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)),
		Exercises:   []service.ExerciseEntryInput{f.entry(0, 2, 10, nil)},
	})
	early := f.create(t, userID, service.CreateWorkoutInput{
		Title:       "Earlier",
		ScheduledAt: timePtr(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)),
		Exercises:   []service.ExerciseEntryInput{f.entry(1, 2, 10, nil)},
	})
	unscheduled := f.create(t, userID, service.CreateWorkoutInput{
		Title:     "Sometime",
		Exercises: []service.ExerciseEntryInput{f.entry(2, 2, 10, nil)},
	})
	f.create(t, other, service.CreateWorkoutInput{
		Title:     "Someone else's",
		Exercises: []service.ExerciseEntryInput{f.entry(0, 1, 1, nil)},
	})

	completed := domain.StatusCompleted
	_, err := f.svc.Update(ctx, userID, late.ID, service.UpdateWorkoutInput{Status: &completed})
	require.NoError(t, err)

	t.Run("unscheduled first, then ascending", func(t *testing.T) {
		workouts, err := f.svc.ListUserWorkouts(ctx, userID, nil)
		require.NoError(t, err)
		require.Len(t, workouts, 3)
		assert.Equal(t, unscheduled.ID, workouts[0].ID)
		assert.Equal(t, early.ID, workouts[1].ID)
		assert.Equal(t, late.ID, workouts[2].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		workouts, err := f.svc.ListUserWorkouts(ctx, userID, &completed)
		require.NoError(t, err)
		require.Len(t, workouts, 1)
		assert.Equal(t, late.ID, workouts[0].ID)
	})
}

func TestGenerateReport(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	f.create(t, userID, service.CreateWorkoutInput{
		Title:       "Weighted",
		ScheduledAt: timePtr(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)),
		Exercises:   []service.ExerciseEntryInput{f.entry(0, 2, 10, floatPtr(50))},
	})
	f.create(t, userID, service.CreateWorkoutInput{
		Title:       "Bodyweight",
		ScheduledAt: timePtr(time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)),
		Exercises:   []service.ExerciseEntryInput{f.entry(2, 3, 5, nil)},
	})
	unscheduled := f.create(t, userID, service.CreateWorkoutInput{
		Title:     "Unscheduled",
		Exercises: []service.ExerciseEntryInput{f.entry(1, 1, 1, floatPtr(10))},
	})

	t.Run("volume math counts missing weight as zero", func(t *testing.T) {
		report, err := f.svc.GenerateReport(ctx, userID, repository.ReportFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalWorkouts)
		// 2*10*50 + 3*5*0 + 1*1*10
		assert.Equal(t, 1010.0, report.TotalVolume)
	})

	t.Run("date bound excludes unscheduled workouts", func(t *testing.T) {
		from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		report, err := f.svc.GenerateReport(ctx, userID, repository.ReportFilter{From: &from})
		require.NoError(t, err)
		assert.Equal(t, 2, report.TotalWorkouts)
		assert.Equal(t, 1000.0, report.TotalVolume)
		for _, w := range report.Workouts {
			assert.NotEqual(t, unscheduled.ID, w.ID)
		}
	})

	t.Run("inclusive range bounds", func(t *testing.T) {
		from := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
		report, err := f.svc.GenerateReport(ctx, userID, repository.ReportFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalWorkouts)
		assert.Equal(t, 1000.0, report.TotalVolume)
	})

	t.Run("status filter", func(t *testing.T) {
		cancelled := domain.StatusCancelled
		_, err := f.svc.Update(ctx, userID, unscheduled.ID, service.UpdateWorkoutInput{Status: &cancelled})
		require.NoError(t, err)

		report, err := f.svc.GenerateReport(ctx, userID, repository.ReportFilter{Status: &cancelled})
		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalWorkouts)
		assert.Equal(t, 10.0, report.TotalVolume)
	})
}
