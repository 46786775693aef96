package domain

// WorkoutReport summarizes a filtered set of workouts.
type WorkoutReport struct {
	TotalWorkouts int       `json:"totalWorkouts"`
	TotalVolume   float64   `json:"totalVolume"`
	Workouts      []Workout `json:"workouts"`
}

// BuildReport aggregates the given workouts into a report.
// TotalVolume sums sets × reps × weight over every entry of every workout;
// entries without a weight contribute 0. TotalWorkouts counts all matched
// workouts, including any with no exercise entries.
func BuildReport(workouts []Workout) WorkoutReport {
	total := 0.0
	for _, w := range workouts {
		for _, e := range w.Exercises {
			total += e.Volume()
		}
	}
	return WorkoutReport{
		TotalWorkouts: len(workouts),
		TotalVolume:   total,
		Workouts:      workouts,
	}
}
