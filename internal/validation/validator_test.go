package validation

import (
	"errors"
	"testing"

	"trainlog/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,contains_upper,contains_digit,contains_special"`
}

type entry struct {
	ExerciseID string   `json:"exerciseId" validate:"required,objectid"`
	Sets       int      `json:"sets" validate:"gte=1,lte=15"`
	Reps       int      `json:"reps" validate:"gte=1"`
	Weight     *float64 `json:"weight" validate:"omitempty,gte=0"`
}

type session struct {
	Title   string  `json:"title" validate:"required"`
	Entries []entry `json:"exercises" validate:"min=1,dive"`
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, domain.KindValidation, domainErr.Kind)
	return domainErr.Message
}

func TestStructReportsEveryViolation(t *testing.T) {
	v := New()

	err := v.Struct(credentials{Email: "not-an-email", Password: "short"})
	msg := validationMessage(t, err)

	// All violated rules are joined, not just the first.
	assert.Contains(t, msg, "email: must be a valid email address")
	assert.Contains(t, msg, "password: must be at least 6 characters")
	assert.Contains(t, msg, "password: must contain an uppercase letter")
	assert.Contains(t, msg, "password: must contain a number")
	assert.Contains(t, msg, "password: must contain a special character")
}

func TestPasswordRules(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		wantOK   bool
		wantMsg  string
	}{
		{"valid", "Str0ng!pass", true, ""},
		{"missing uppercase", "str0ng!pass", false, "must contain an uppercase letter"},
		{"missing digit", "Strong!pass", false, "must contain a number"},
		{"missing special", "Str0ngpass", false, "must contain a special character"},
		{"too short", "S0!a", false, "must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(credentials{Email: "user@example.com", Password: tt.password})
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, validationMessage(t, err), tt.wantMsg)
		})
	}
}

func TestExerciseEntryRules(t *testing.T) {
	v := New()
	validID := "656f1f77bcf86cd799439011"
	weight := -1.0

	tests := []struct {
		name    string
		session session
		wantMsg string
	}{
		{
			"empty exercises list",
			session{Title: "Push day", Entries: []entry{}},
			"exercises: must contain at least 1 entries",
		},
		{
			"bad exercise id",
			session{Title: "Push day", Entries: []entry{{ExerciseID: "nope", Sets: 3, Reps: 10}}},
			"exercises[0].exerciseId: must be a valid id",
		},
		{
			"sets below range",
			session{Title: "Push day", Entries: []entry{{ExerciseID: validID, Sets: 0, Reps: 10}}},
			"exercises[0].sets: must be at least 1",
		},
		{
			"sets above range",
			session{Title: "Push day", Entries: []entry{{ExerciseID: validID, Sets: 16, Reps: 10}}},
			"exercises[0].sets: must be at most 15",
		},
		{
			"reps below range",
			session{Title: "Push day", Entries: []entry{{ExerciseID: validID, Sets: 3, Reps: 0}}},
			"exercises[0].reps: must be at least 1",
		},
		{
			"negative weight",
			session{Title: "Push day", Entries: []entry{{ExerciseID: validID, Sets: 3, Reps: 10, Weight: &weight}}},
			"exercises[0].weight: must be at least 0",
		},
		{
			"missing title",
			session{Entries: []entry{{ExerciseID: validID, Sets: 3, Reps: 10}}},
			"title: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.session)
			assert.Contains(t, validationMessage(t, err), tt.wantMsg)
		})
	}

	t.Run("valid entry passes", func(t *testing.T) {
		w := 42.5
		err := v.Struct(session{Title: "Push day", Entries: []entry{{ExerciseID: validID, Sets: 3, Reps: 10, Weight: &w}}})
		assert.NoError(t, err)
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
}
