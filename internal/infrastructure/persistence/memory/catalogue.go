// Package memory provides in-memory implementations of the outbound ports,
// used by tests and by the standalone planner binary.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
)

// RecipeCatalogue is a map-backed recipe store
type RecipeCatalogue struct {
	mu      sync.RWMutex
	recipes map[meal.RecipeID]meal.Recipe
}

var _ outbound.RecipeStore = (*RecipeCatalogue)(nil)

// NewRecipeCatalogue creates a catalogue seeded with recipes
func NewRecipeCatalogue(recipes ...meal.Recipe) *RecipeCatalogue {
	c := &RecipeCatalogue{recipes: make(map[meal.RecipeID]meal.Recipe, len(recipes))}
	for _, r := range recipes {
		c.recipes[r.ID] = r
	}
	return c
}

// FindCandidateRecipes returns recipe IDs of the meal type whose diet type is
// one of diets, sorted so that seeded runs are reproducible
func (c *RecipeCatalogue) FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	allowed := make(map[meal.DietType]struct{}, len(diets))
	for _, d := range diets {
		allowed[d] = struct{}{}
	}

	ids := make([]meal.RecipeID, 0)
	for id, r := range c.recipes {
		if r.MealType != mealType {
			continue
		}
		if _, ok := allowed[r.DietType]; !ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetNutritionFacts returns the recipe's nutrition
func (c *RecipeCatalogue) GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.recipes[id]
	if !ok {
		return meal.Facts{}, fmt.Errorf("%w: %s", meal.ErrRecipeNotFound, id)
	}
	return r.Facts, nil
}

// GetIngredients returns a copy of the recipe's ingredient lines
func (c *RecipeCatalogue) GetIngredients(ctx context.Context, id meal.RecipeID) ([]meal.Ingredient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", meal.ErrRecipeNotFound, id)
	}
	out := make([]meal.Ingredient, len(r.Ingredients))
	copy(out, r.Ingredients)
	return out, nil
}

// Save inserts or replaces a recipe
func (c *RecipeCatalogue) Save(ctx context.Context, recipe meal.Recipe) error {
	if recipe.ID == "" {
		return fmt.Errorf("recipe id is required")
	}
	if err := recipe.Facts.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[recipe.ID] = recipe
	return nil
}

// FindByID returns the stored recipe
func (c *RecipeCatalogue) FindByID(ctx context.Context, id meal.RecipeID) (*meal.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", meal.ErrRecipeNotFound, id)
	}
	return &r, nil
}

// Len returns the number of stored recipes
func (c *RecipeCatalogue) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}
