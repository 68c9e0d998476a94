// Package shopping builds shopping lists for completed week plans
package shopping

import (
	"context"
	"fmt"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"go.uber.org/zap"
)

// Builder aggregates the ingredients of every meal in a plan
type Builder struct {
	ingredients outbound.IngredientSource
	lists       outbound.ShoppingListRepository
	logger      *zap.Logger
}

// NewBuilder creates a shopping list builder
func NewBuilder(ingredients outbound.IngredientSource, lists outbound.ShoppingListRepository, logger *zap.Logger) *Builder {
	return &Builder{
		ingredients: ingredients,
		lists:       lists,
		logger:      logger.Named("shopping-list"),
	}
}

// Name identifies the handler in dispatcher logs
func (b *Builder) Name() string { return "shopping-list" }

// HandlePlanGenerated builds and stores the shopping list of a new plan
func (b *Builder) HandlePlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	if event.Plan == nil {
		return fmt.Errorf("event %s carries no plan", event.PlanID)
	}

	list, err := b.Build(ctx, event.Plan)
	if err != nil {
		return err
	}
	if err := b.lists.Save(ctx, list); err != nil {
		return fmt.Errorf("save shopping list: %w", err)
	}

	b.logger.Info("Shopping list created",
		zap.String("plan_id", list.PlanID.String()),
		zap.Int("items", len(list.Items)),
	)
	return nil
}

// Build collects ingredient lines for every meal of the week. A recipe
// served several times contributes its ingredients each time.
func (b *Builder) Build(ctx context.Context, wp *plan.WeekPlan) (*plan.ShoppingList, error) {
	cache := make(map[meal.RecipeID][]meal.Ingredient)
	var lines []meal.Ingredient

	for _, id := range wp.RecipeIDs() {
		ingredients, ok := cache[id]
		if !ok {
			var err error
			ingredients, err = b.ingredients.GetIngredients(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("ingredients for recipe %s: %w", id, err)
			}
			cache[id] = ingredients
		}
		lines = append(lines, ingredients...)
	}

	return plan.NewShoppingList(wp.ID(), wp.OwnerID(), lines), nil
}
