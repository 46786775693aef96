package api

import (
	"net/http"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/repository"
	"trainlog/workout-app/internal/service"
	"trainlog/workout-app/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	validator      *validation.Validator
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, validator *validation.Validator) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, validator: validator}
}

// --- Request Structs ---

type ExerciseEntryRequest struct {
	ExerciseID string   `json:"exerciseId" validate:"required,objectid"`
	Sets       int      `json:"sets" validate:"gte=1,lte=15"`
	Reps       int      `json:"reps" validate:"gte=1"`
	Weight     *float64 `json:"weight" validate:"omitempty,gte=0"`
}

type CreateWorkoutRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Notes       string                 `json:"notes"`
	ScheduledAt *time.Time             `json:"scheduledAt"`
	Exercises   []ExerciseEntryRequest `json:"exercises" validate:"min=1,dive"`
}

type UpdateWorkoutRequest struct {
	Title       *string                 `json:"title" validate:"omitempty,min=1"`
	Notes       *string                 `json:"notes"`
	ScheduledAt *time.Time              `json:"scheduledAt"`
	Status      *domain.WorkoutStatus   `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	Exercises   *[]ExerciseEntryRequest `json:"exercises" validate:"omitempty,dive"`
}

type AddNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type ScheduleWorkoutRequest struct {
	ScheduledAt *time.Time `json:"scheduledAt" validate:"required"`
}

// --- Handler Methods ---

// Create creates a workout with at least one exercise entry.
// POST /api/v1/workouts
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, domain.NewAuthenticationError("Unauthorized"))
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	input := service.CreateWorkoutInput{
		Title:       req.Title,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
		Exercises:   toEntryInputs(req.Exercises),
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, workout)
}

// List returns the caller's workouts, optionally filtered by status.
// GET /api/v1/workouts?status=
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, domain.NewAuthenticationError("Unauthorized"))
		return
	}

	status, err := statusQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	workouts, err := h.workoutService.ListUserWorkouts(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, workouts)
}

// FindByID returns a single workout with resolved exercises.
// GET /api/v1/workouts/:workoutId
func (h *WorkoutHandler) FindByID(c *gin.Context) {
	userID, workoutID, err := h.identify(c)
	if err != nil {
		respondError(c, err)
		return
	}

	workout, err := h.workoutService.FindByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, workout)
}

// Update applies a partial update; a present exercises list replaces the
// stored one entirely.
// PUT /api/v1/workouts/:workoutId
func (h *WorkoutHandler) Update(c *gin.Context) {
	userID, workoutID, err := h.identify(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	input := service.UpdateWorkoutInput{
		Title:       req.Title,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	}
	if req.Exercises != nil {
		entries := toEntryInputs(*req.Exercises)
		input.Exercises = &entries
	}

	workout, err := h.workoutService.Update(c.Request.Context(), userID, workoutID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, workout)
}

// Delete removes a workout and all its exercise entries.
// DELETE /api/v1/workouts/:workoutId
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, workoutID, err := h.identify(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, workoutID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddNotes overwrites the workout's notes.
// PATCH /api/v1/workouts/:workoutId/notes
func (h *WorkoutHandler) AddNotes(c *gin.Context) {
	userID, workoutID, err := h.identify(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req AddNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	workout, err := h.workoutService.AddNotes(c.Request.Context(), userID, workoutID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, workout)
}

// Schedule stamps a new scheduled time and resets the status to PENDING.
// PATCH /api/v1/workouts/:workoutId/schedule
func (h *WorkoutHandler) Schedule(c *gin.Context) {
	userID, workoutID, err := h.identify(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req ScheduleWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	workout, err := h.workoutService.Schedule(c.Request.Context(), userID, workoutID, *req.ScheduledAt)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, workout)
}

// Report aggregates the caller's workouts over an optional date range and
// status filter.
// GET /api/v1/workouts/report?from=&to=&status=
func (h *WorkoutHandler) Report(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, domain.NewAuthenticationError("Unauthorized"))
		return
	}

	filter := repository.ReportFilter{}

	filter.Status, err = statusQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.From, err = timeQuery(c, "from")
	if err != nil {
		respondError(c, err)
		return
	}
	filter.To, err = timeQuery(c, "to")
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.workoutService.GenerateReport(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, report)
}

// --- Helpers ---

// identify resolves the authenticated user and the workoutId path parameter.
// A malformed id cannot belong to anyone, so it reports the same not-found
// error as a missing workout.
func (h *WorkoutHandler) identify(c *gin.Context) (userID, workoutID primitive.ObjectID, err error) {
	userID, err = currentUserID(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.NewAuthenticationError("Unauthorized")
	}
	workoutID, err = primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.NewNotFoundError("Workout not found")
	}
	return userID, workoutID, nil
}

func statusQuery(c *gin.Context) (*domain.WorkoutStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status := domain.WorkoutStatus(raw)
	if !status.IsValid() {
		return nil, domain.NewValidationError("status: must be one of PENDING COMPLETED CANCELLED")
	}
	return &status, nil
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError(name + ": must be a valid RFC3339 timestamp")
	}
	return &t, nil
}

// toEntryInputs converts validated entry requests; the objectid rule has
// already guaranteed the ids parse.
func toEntryInputs(reqs []ExerciseEntryRequest) []service.ExerciseEntryInput {
	inputs := make([]service.ExerciseEntryInput, len(reqs))
	for i, r := range reqs {
		id, _ := primitive.ObjectIDFromHex(r.ExerciseID)
		inputs[i] = service.ExerciseEntryInput{
			ExerciseID: id,
			Sets:       r.Sets,
			Reps:       r.Reps,
			Weight:     r.Weight,
		}
	}
	return inputs
}
