// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the collaborators the planner consumes: catalogue, profiles,
// storage, cache and notification.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/google/uuid"
)

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// ErrProfileNotFound is returned when a user has no nutrition target
var ErrProfileNotFound = errors.New("nutrition profile not found")

// RecipeCatalogue answers candidate and nutrition queries for the engine.
// It is read-only for the duration of a planning run.
type RecipeCatalogue interface {
	FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error)
	GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error)
}

// IngredientSource returns the ingredient list of a recipe
type IngredientSource interface {
	GetIngredients(ctx context.Context, id meal.RecipeID) ([]meal.Ingredient, error)
}

// RecipeStore is a writable catalogue used for seeding and maintenance
type RecipeStore interface {
	RecipeCatalogue
	IngredientSource
	Save(ctx context.Context, recipe meal.Recipe) error
	FindByID(ctx context.Context, id meal.RecipeID) (*meal.Recipe, error)
}

// DietCompatibilityResolver returns the diet types substitutable into a diet
type DietCompatibilityResolver interface {
	ResolveCompatibleDietTypes(ctx context.Context, dietType meal.DietType) ([]meal.DietType, error)
}

// ProfileService supplies a user's nutrition target
type ProfileService interface {
	GetNutritionTargetForUser(ctx context.Context, userID uuid.UUID) (meal.Target, error)
}

// ProfileRepository stores nutrition targets
type ProfileRepository interface {
	ProfileService
	SaveNutritionTarget(ctx context.Context, userID uuid.UUID, target meal.Target) error
}

// WeekPlanRepository persists completed week plans
type WeekPlanRepository interface {
	Save(ctx context.Context, wp *plan.WeekPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*plan.WeekPlan, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*plan.WeekPlan, int, error)
}

// ShoppingListRepository persists shopping lists built from plans
type ShoppingListRepository interface {
	Save(ctx context.Context, list *plan.ShoppingList) error
	FindByPlanID(ctx context.Context, planID uuid.UUID) (*plan.ShoppingList, error)
}

// PlanNotifier receives the completed plan once generation succeeds.
// Delivery is fire-and-forget from the planner's point of view.
type PlanNotifier interface {
	NotifyPlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
