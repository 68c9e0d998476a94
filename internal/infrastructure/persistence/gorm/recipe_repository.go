package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository implements the recipe catalogue using GORM
type RecipeRepository struct {
	db *gorm.DB
}

var _ outbound.RecipeStore = (*RecipeRepository)(nil)

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindCandidateRecipes returns IDs of recipes of the meal type whose diet is
// one of diets, ordered by ID
func (r *RecipeRepository) FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error) {
	if len(diets) == 0 {
		return []meal.RecipeID{}, nil
	}

	var ids []string
	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("meal_type = ? AND diet_type IN ?", string(mealType), meal.DietNames(diets)).
		Order("id ASC").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]meal.RecipeID, len(ids))
	for i, id := range ids {
		out[i] = meal.RecipeID(id)
	}
	return out, nil
}

// GetNutritionFacts loads only the nutrition columns of a recipe
func (r *RecipeRepository) GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Select("id", "calories", "carbs", "protein", "fat").
		First(&model, "id = ?", string(id))
	if result.Error != nil {
		return meal.Facts{}, notFound(result.Error, id)
	}
	return modelFacts(model.Calories, model.Carbs, model.Protein, model.Fat), nil
}

// GetIngredients loads the ingredient list of a recipe
func (r *RecipeRepository) GetIngredients(ctx context.Context, id meal.RecipeID) ([]meal.Ingredient, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Select("id", "ingredients").
		First(&model, "id = ?", string(id))
	if result.Error != nil {
		return nil, notFound(result.Error, id)
	}
	return ingredientsFromModel(model.Ingredients), nil
}

// Save inserts a recipe or replaces the stored one
func (r *RecipeRepository) Save(ctx context.Context, recipe meal.Recipe) error {
	if recipe.ID == "" {
		return errors.New("recipe id is required")
	}
	if err := recipe.Facts.Validate(); err != nil {
		return err
	}

	model := RecipeToModel(recipe)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "meal_type", "diet_type", "calories", "carbs", "protein", "fat", "ingredients", "updated_at"}),
		}).
		Create(model).Error
}

// SaveAll stores recipes in batches inside one transaction
func (r *RecipeRepository) SaveAll(ctx context.Context, recipes []meal.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := &RecipeRepository{db: tx}
		for _, recipe := range recipes {
			if err := repo.Save(ctx, recipe); err != nil {
				return fmt.Errorf("save recipe %s: %w", recipe.ID, err)
			}
		}
		return nil
	})
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id meal.RecipeID) (*meal.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", string(id))
	if result.Error != nil {
		return nil, notFound(result.Error, id)
	}
	return ModelToRecipe(&model)
}

// Count returns the number of catalogue recipes
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total).Error
	return total, err
}

func notFound(err error, id meal.RecipeID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", meal.ErrRecipeNotFound, id)
	}
	return err
}
