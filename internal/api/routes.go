package api

import (
	"net/http"

	"trainlog/workout-app/internal/service"
	"trainlog/workout-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
) {
	validator := validation.New()

	authHandler := NewAuthHandler(authService, validator)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService, validator)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/profile", authMiddleware, authHandler.Profile)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetByID)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.GET("", workoutHandler.List)
			// Static route must be declared alongside the :workoutId routes;
			// gin gives it priority over the parameter match.
			workoutGroup.GET("/report", workoutHandler.Report)
			workoutGroup.GET("/:workoutId", workoutHandler.FindByID)
			workoutGroup.PUT("/:workoutId", workoutHandler.Update)
			workoutGroup.DELETE("/:workoutId", workoutHandler.Delete)
			workoutGroup.PATCH("/:workoutId/notes", workoutHandler.AddNotes)
			workoutGroup.PATCH("/:workoutId/schedule", workoutHandler.Schedule)
		}
	}
}
