package meal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMealType     = errors.New("unknown meal type")
	ErrUnknownDietType     = errors.New("unknown diet type")
	ErrNoMealSlots         = errors.New("at least one meal slot is required")
	ErrInvalidSlotPosition = errors.New("meal slot positions must be unique and contiguous")
	ErrInvalidNutrition    = errors.New("nutrition facts must be finite and non-negative")
	ErrInvalidTarget       = errors.New("nutrition target must have positive calories and non-negative macros")
	ErrRecipeNotFound      = errors.New("recipe not found")
)

// NoCandidateRecipesError is raised when a meal slot has no eligible recipe
// for the requested diet types. It is fatal for a planning run.
type NoCandidateRecipesError struct {
	Slot      MealSlot
	DietTypes []DietType
}

func (e *NoCandidateRecipesError) Error() string {
	return fmt.Sprintf("no compatible %s recipes for %s (slot %d)",
		e.Slot.MealType.Label(),
		strings.Join(DietNames(e.DietTypes), "/"),
		e.Slot.Position,
	)
}

// IsNoCandidateRecipes reports whether err carries a NoCandidateRecipesError
func IsNoCandidateRecipes(err error) bool {
	var target *NoCandidateRecipesError
	return errors.As(err, &target)
}
