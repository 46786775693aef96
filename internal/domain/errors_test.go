package domain

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewAuthenticationError("invalid credentials"), http.StatusUnauthorized},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewConflictError("duplicate"), http.StatusConflict},
		{NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.Status(), tt.err.Message)
	}
}

func TestErrorUnwrapsViaAs(t *testing.T) {
	var wrapped error = NewNotFoundError("Workout not found")

	var domainErr *Error
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, KindNotFound, domainErr.Kind)
	assert.Equal(t, "Workout not found", domainErr.Error())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, WorkoutStatus("DONE").IsValid())

	assert.True(t, CategoryStrength.IsValid())
	assert.False(t, ExerciseCategory("YOGA").IsValid())

	assert.True(t, MuscleFullBody.IsValid())
	assert.False(t, MuscleGroup("NECK").IsValid())
}
