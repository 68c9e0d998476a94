// Package meal contains the value objects shared by the planning engine and
// the plan aggregates: meal slots, diet types and nutrition figures.
package meal

import (
	"fmt"
	"math"
	"strings"
)

// RecipeID identifies a recipe in the catalogue
type RecipeID string

// MealType represents the kind of meal a slot expects
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

// ParseMealType normalises and validates a meal type name
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToUpper(strings.TrimSpace(s)))
	switch mt {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return mt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMealType, s)
}

// Label returns the lower-case form used in user-facing messages
func (m MealType) Label() string {
	return strings.ToLower(string(m))
}

// MealSlot is one position in the fixed per-day slot structure
type MealSlot struct {
	MealType MealType
	Position int
}

func (s MealSlot) String() string {
	return fmt.Sprintf("%s#%d", s.MealType, s.Position)
}

// ParseSlots builds the per-day slot set from configured meal type names.
// Positions follow the order of the input. A meal type may appear more
// than once (two snacks), each occurrence being its own slot.
func ParseSlots(names []string) ([]MealSlot, error) {
	if len(names) == 0 {
		return nil, ErrNoMealSlots
	}

	slots := make([]MealSlot, 0, len(names))
	for i, name := range names {
		mt, err := ParseMealType(name)
		if err != nil {
			return nil, err
		}
		slots = append(slots, MealSlot{MealType: mt, Position: i})
	}
	return slots, nil
}

// ValidateSlots checks that positions are exactly 0..n-1 with no gaps or duplicates
func ValidateSlots(slots []MealSlot) error {
	if len(slots) == 0 {
		return ErrNoMealSlots
	}
	seen := make([]bool, len(slots))
	for _, s := range slots {
		if s.Position < 0 || s.Position >= len(slots) || seen[s.Position] {
			return fmt.Errorf("%w: %s", ErrInvalidSlotPosition, s)
		}
		if _, err := ParseMealType(string(s.MealType)); err != nil {
			return err
		}
		seen[s.Position] = true
	}
	return nil
}

// Facts holds the nutrition figures of a recipe or an aggregate of recipes
type Facts struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`   // grams
	Protein  float64 `json:"protein"` // grams
	Fat      float64 `json:"fat"`     // grams
}

// Add returns the element-wise sum of f and o
func (f Facts) Add(o Facts) Facts {
	return Facts{
		Calories: f.Calories + o.Calories,
		Carbs:    f.Carbs + o.Carbs,
		Protein:  f.Protein + o.Protein,
		Fat:      f.Fat + o.Fat,
	}
}

// Sum aggregates any number of facts. Every total in the system (genomes,
// generated days, manual days, weeks) goes through here.
func Sum(items ...Facts) Facts {
	var total Facts
	for _, f := range items {
		total = total.Add(f)
	}
	return total
}

// Validate rejects negative or non-finite figures
func (f Facts) Validate() error {
	fields := [...]struct {
		name  string
		value float64
	}{
		{"calories", f.Calories},
		{"carbs", f.Carbs},
		{"protein", f.Protein},
		{"fat", f.Fat},
	}
	for _, field := range fields {
		if v := field.value; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidNutrition, field.name, v)
		}
	}
	return nil
}

// Target is a person's daily nutrition goal. It is read once per
// week-generation request and never changes during a run.
type Target struct {
	DailyCalories     float64
	DailyCarbsGrams   float64
	DailyProteinGrams float64
	DailyFatGrams     float64
	DietType          DietType
}

// Validate checks the target is usable for planning
func (t Target) Validate() error {
	if t.DailyCalories <= 0 {
		return ErrInvalidTarget
	}
	if t.DailyCarbsGrams < 0 || t.DailyProteinGrams < 0 || t.DailyFatGrams < 0 {
		return ErrInvalidTarget
	}
	if _, err := ParseDietType(string(t.DietType)); err != nil {
		return err
	}
	return nil
}

// AsFacts expresses the target as facts so deviations can be computed field by field
func (t Target) AsFacts() Facts {
	return Facts{
		Calories: t.DailyCalories,
		Carbs:    t.DailyCarbsGrams,
		Protein:  t.DailyProteinGrams,
		Fat:      t.DailyFatGrams,
	}
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Recipe is the catalogue's view of a recipe as far as planning is concerned
type Recipe struct {
	ID          RecipeID
	Title       string
	MealType    MealType
	DietType    DietType
	Facts       Facts
	Ingredients []Ingredient
}
