package api

import (
	"net/http"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves the read-only exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// List returns catalog entries, optionally filtered by category and/or
// muscle group query parameters.
// GET /api/v1/exercises?category=&muscleGroup=
func (h *ExerciseHandler) List(c *gin.Context) {
	var category *domain.ExerciseCategory
	if raw := c.Query("category"); raw != "" {
		cat := domain.ExerciseCategory(raw)
		if !cat.IsValid() {
			respondError(c, domain.NewValidationError("category: must be one of CARDIO STRENGTH FLEXIBILITY"))
			return
		}
		category = &cat
	}

	var muscleGroup *domain.MuscleGroup
	if raw := c.Query("muscleGroup"); raw != "" {
		mg := domain.MuscleGroup(raw)
		if !mg.IsValid() {
			respondError(c, domain.NewValidationError("muscleGroup: must be one of CHEST BACK LEGS SHOULDERS ARMS CORE FULL_BODY"))
			return
		}
		muscleGroup = &mg
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), category, muscleGroup)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, exercises)
}

// GetByID returns a single catalog entry.
// GET /api/v1/exercises/:exerciseId
func (h *ExerciseHandler) GetByID(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		respondError(c, domain.NewNotFoundError("Exercise not found"))
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), exerciseID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, exercise)
}
