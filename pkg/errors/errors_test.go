package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDinner() *meal.NoCandidateRecipesError {
	return &meal.NoCandidateRecipesError{
		Slot:      meal.MealSlot{MealType: meal.MealTypeDinner, Position: 2},
		DietTypes: []meal.DietType{meal.DietTypeVegan},
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "VALIDATION_FAILED: Validation failed (start date missing)",
		NewValidationError("start date missing").Error())
	assert.Equal(t, "INTERNAL_ERROR: An unexpected error occurred", NewInternalError("").Error())
}

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeProfileNotFound, http.StatusNotFound},
		{CodePlanNotFound, http.StatusNotFound},
		{CodeNoCandidateRecipes, http.StatusUnprocessableEntity},
		{CodeExternalServiceError, http.StatusBadGateway},
		{CodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, NewAppError(tt.code, "m", "").StatusCode())
		})
	}
}

func TestFromNoCandidates(t *testing.T) {
	cause := noDinner()

	err := FromNoCandidates(cause)

	assert.Equal(t, CodeNoCandidateRecipes, err.Code)
	assert.Equal(t, "no compatible dinner recipes for VEGAN (slot 2)", err.Details)
	assert.Equal(t, "DINNER", err.Metadata["meal_type"])
	assert.Equal(t, []string{"VEGAN"}, err.Metadata["diet_types"])
	assert.True(t, meal.IsNoCandidateRecipes(err))
}

func TestWrap(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "ignored"))
	})

	t.Run("KeepsAppError", func(t *testing.T) {
		original := NewPlanNotFoundError("p-1")
		wrapped := Wrap(fmt.Errorf("load: %w", original), "ignored")
		assert.Same(t, original, wrapped)
	})

	t.Run("NoCandidates", func(t *testing.T) {
		wrapped := Wrap(fmt.Errorf("day 3: %w", noDinner()), "ignored")
		assert.Equal(t, CodeNoCandidateRecipes, wrapped.Code)
	})

	t.Run("Internal", func(t *testing.T) {
		cause := stderrors.New("boom")
		wrapped := Wrap(cause, "planning failed")
		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.Equal(t, "planning failed", wrapped.Message)
		assert.ErrorIs(t, wrapped, cause)
	})
}

func TestIsAndGetCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NewDatabaseError("save plan", stderrors.New("disk full")))

	assert.True(t, Is(err, CodeDatabaseError))
	assert.False(t, Is(err, CodeInternal))
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
	assert.False(t, Is(nil, CodeInternal))
}

func TestNewProfileNotFoundError(t *testing.T) {
	err := NewProfileNotFoundError("u-1")

	assert.Equal(t, "u-1", err.Metadata["user_id"])
	assert.NotEmpty(t, err.StackTrace)
	assert.NotContains(t, err.StackTrace, "pkg/errors/errors.go")
}

func TestToErrorResponse(t *testing.T) {
	err := NewConfigurationError(stderrors.New("planner: bad mutation rate"))

	resp := ToErrorResponse(err, "req-9")

	require.Equal(t, CodeInvalidConfiguration, resp.Error.Code)
	assert.Equal(t, "planner: bad mutation rate", resp.Error.Details)
	assert.Equal(t, "req-9", resp.Error.RequestID)
	assert.NotEmpty(t, resp.Error.Timestamp)
}
