// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var units = []string{"g", "ml", "piece", "tbsp"}

// CatalogueFactory generates reproducible recipe catalogues
type CatalogueFactory struct {
	faker *gofakeit.Faker
	next  int
}

// NewCatalogueFactory creates a new catalogue factory with seeded faker
func NewCatalogueFactory(seed int64) *CatalogueFactory {
	return &CatalogueFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe creates a recipe of the given meal and diet type with plausible nutrition
func (f *CatalogueFactory) Recipe(mealType meal.MealType, diet meal.DietType) meal.Recipe {
	f.next++

	carbs := float64(f.faker.Number(10, 90))
	protein := float64(f.faker.Number(5, 45))
	fat := float64(f.faker.Number(2, 35))

	lines := make([]meal.Ingredient, f.faker.Number(2, 5))
	for i := range lines {
		lines[i] = meal.Ingredient{
			Name:   f.faker.Vegetable(),
			Amount: float64(f.faker.Number(1, 400)),
			Unit:   f.faker.RandomString(units),
		}
	}

	return meal.Recipe{
		ID:       meal.RecipeID(fmt.Sprintf("%s-%03d", mealType.Label(), f.next)),
		Title:    f.title(mealType),
		MealType: mealType,
		DietType: diet,
		Facts: meal.Facts{
			Calories: 4*carbs + 4*protein + 9*fat,
			Carbs:    carbs,
			Protein:  protein,
			Fat:      fat,
		},
		Ingredients: lines,
	}
}

func (f *CatalogueFactory) title(mealType meal.MealType) string {
	switch mealType {
	case meal.MealTypeBreakfast:
		return f.faker.Breakfast()
	case meal.MealTypeLunch:
		return f.faker.Lunch()
	case meal.MealTypeDinner:
		return f.faker.Dinner()
	default:
		return f.faker.Snack()
	}
}

// Catalogue creates perType recipes for each meal type, cycling through diets
func (f *CatalogueFactory) Catalogue(perType int, mealTypes []meal.MealType, diets []meal.DietType) []meal.Recipe {
	recipes := make([]meal.Recipe, 0, perType*len(mealTypes))
	for _, mt := range mealTypes {
		for i := 0; i < perType; i++ {
			recipes = append(recipes, f.Recipe(mt, diets[i%len(diets)]))
		}
	}
	return recipes
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe meal.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder(id string) *RecipeBuilder {
	return &RecipeBuilder{
		recipe: meal.Recipe{
			ID:       meal.RecipeID(id),
			Title:    id,
			MealType: meal.MealTypeDinner,
			DietType: meal.DietTypeVegan,
		},
	}
}

// WithMealType sets the meal type
func (rb *RecipeBuilder) WithMealType(mt meal.MealType) *RecipeBuilder {
	rb.recipe.MealType = mt
	return rb
}

// WithDiet sets the diet type
func (rb *RecipeBuilder) WithDiet(diet meal.DietType) *RecipeBuilder {
	rb.recipe.DietType = diet
	return rb
}

// WithCalories sets the calories
func (rb *RecipeBuilder) WithCalories(calories float64) *RecipeBuilder {
	rb.recipe.Facts.Calories = calories
	return rb
}

// WithFacts sets the full nutrition
func (rb *RecipeBuilder) WithFacts(facts meal.Facts) *RecipeBuilder {
	rb.recipe.Facts = facts
	return rb
}

// WithIngredient adds an ingredient line
func (rb *RecipeBuilder) WithIngredient(name string, amount float64, unit string) *RecipeBuilder {
	rb.recipe.Ingredients = append(rb.recipe.Ingredients, meal.Ingredient{Name: name, Amount: amount, Unit: unit})
	return rb
}

// Build creates the recipe
func (rb *RecipeBuilder) Build() meal.Recipe {
	return rb.recipe
}

// DefaultSlots is breakfast, lunch and dinner
func DefaultSlots() []meal.MealSlot {
	return []meal.MealSlot{
		{MealType: meal.MealTypeBreakfast, Position: 0},
		{MealType: meal.MealTypeLunch, Position: 1},
		{MealType: meal.MealTypeDinner, Position: 2},
	}
}

// Target creates a calorie-only target
func Target(calories float64, diet meal.DietType) meal.Target {
	return meal.Target{DailyCalories: calories, DietType: diet}
}

// WeekStart is a fixed Monday used across tests
var WeekStart = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

// GeneratedWeekPlan builds a valid generated week whose days each hold one
// dinner of the given calories
func GeneratedWeekPlan(ownerID uuid.UUID, start time.Time, dayCalories float64, seed uint64) (*plan.WeekPlan, error) {
	days := make([]plan.DayPlan, plan.DaysPerWeek)
	for i := range days {
		facts := meal.Facts{Calories: dayCalories}
		meals := []plan.Meal{{
			MealType: meal.MealTypeDinner,
			Position: 0,
			RecipeID: meal.RecipeID(fmt.Sprintf("dinner-%d", i)),
			Facts:    facts,
		}}
		day, err := plan.NewGeneratedDayPlan(start.AddDate(0, 0, i), meals, facts, 0)
		if err != nil {
			return nil, err
		}
		days[i] = day
	}
	return plan.NewGeneratedWeekPlan(ownerID, ownerID, start, seed, days)
}
