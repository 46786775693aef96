package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name          string
		workouts      []Workout
		wantWorkouts  int
		wantVolume    float64
	}{
		{
			name:         "empty set",
			workouts:     nil,
			wantWorkouts: 0,
			wantVolume:   0,
		},
		{
			name: "missing weight counts as zero, not excluded",
			workouts: []Workout{
				{Exercises: []WorkoutExercise{{Sets: 2, Reps: 10, Weight: floatPtr(50)}}},
				{Exercises: []WorkoutExercise{{Sets: 3, Reps: 5}}},
			},
			wantWorkouts: 2,
			wantVolume:   1000, // 2*10*50 + 3*5*0
		},
		{
			name: "workout without exercises still counted",
			workouts: []Workout{
				{Exercises: nil},
				{Exercises: []WorkoutExercise{{Sets: 1, Reps: 1, Weight: floatPtr(10)}}},
			},
			wantWorkouts: 2,
			wantVolume:   10,
		},
		{
			name: "multiple entries per workout are summed",
			workouts: []Workout{
				{Exercises: []WorkoutExercise{
					{Sets: 3, Reps: 10, Weight: floatPtr(20)},
					{Sets: 4, Reps: 8, Weight: floatPtr(40.5)},
				}},
			},
			wantWorkouts: 1,
			wantVolume:   3*10*20 + 4*8*40.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := BuildReport(tt.workouts)

			assert.Equal(t, tt.wantWorkouts, report.TotalWorkouts)
			assert.Equal(t, tt.wantVolume, report.TotalVolume)
			assert.Len(t, report.Workouts, tt.wantWorkouts)
		})
	}
}

func TestWorkoutExerciseVolume(t *testing.T) {
	withWeight := WorkoutExercise{Sets: 2, Reps: 12, Weight: floatPtr(30)}
	assert.Equal(t, 720.0, withWeight.Volume())

	noWeight := WorkoutExercise{Sets: 5, Reps: 5}
	assert.Equal(t, 0.0, noWeight.Volume())
}
