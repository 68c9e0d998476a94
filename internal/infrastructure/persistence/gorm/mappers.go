package gorm

import (
	"fmt"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
)

// RecipeToModel converts a catalogue recipe to its GORM model
func RecipeToModel(r meal.Recipe) *RecipeModel {
	ingredients := make(IngredientList, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = IngredientRow(ing)
	}

	return &RecipeModel{
		ID:          string(r.ID),
		Title:       r.Title,
		MealType:    string(r.MealType),
		DietType:    string(r.DietType),
		Calories:    r.Facts.Calories,
		Carbs:       r.Facts.Carbs,
		Protein:     r.Facts.Protein,
		Fat:         r.Facts.Fat,
		Ingredients: ingredients,
	}
}

// ModelToRecipe converts a GORM model to a catalogue recipe
func ModelToRecipe(m *RecipeModel) (*meal.Recipe, error) {
	mealType, err := meal.ParseMealType(m.MealType)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", m.ID, err)
	}
	dietType, err := meal.ParseDietType(m.DietType)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", m.ID, err)
	}

	return &meal.Recipe{
		ID:          meal.RecipeID(m.ID),
		Title:       m.Title,
		MealType:    mealType,
		DietType:    dietType,
		Facts:       modelFacts(m.Calories, m.Carbs, m.Protein, m.Fat),
		Ingredients: ingredientsFromModel(m.Ingredients),
	}, nil
}

func ingredientsFromModel(rows IngredientList) []meal.Ingredient {
	out := make([]meal.Ingredient, len(rows))
	for i, row := range rows {
		out[i] = meal.Ingredient(row)
	}
	return out
}

func modelFacts(calories, carbs, protein, fat float64) meal.Facts {
	return meal.Facts{Calories: calories, Carbs: carbs, Protein: protein, Fat: fat}
}

// WeekPlanToModel converts a week plan aggregate to GORM models
func WeekPlanToModel(wp *plan.WeekPlan) *WeekPlanModel {
	totals := wp.Totals()
	model := &WeekPlanModel{
		ID:            wp.ID(),
		OwnerID:       wp.OwnerID(),
		AuthorID:      wp.AuthorID(),
		StartDate:     wp.StartDate(),
		Provenance:    string(wp.Provenance()),
		Seed:          int64(wp.Seed()),
		TotalCalories: totals.Calories,
		TotalCarbs:    totals.Carbs,
		TotalProtein:  totals.Protein,
		TotalFat:      totals.Fat,
		CreatedAt:     wp.CreatedAt(),
	}

	for _, day := range wp.Days() {
		dayModel := DayPlanModel{
			WeekPlanID: wp.ID(),
			Date:       day.Date,
			Fitness:    day.Fitness,
			Calories:   day.Totals.Calories,
			Carbs:      day.Totals.Carbs,
			Protein:    day.Totals.Protein,
			Fat:        day.Totals.Fat,
		}
		for _, m := range day.Meals {
			dayModel.Meals = append(dayModel.Meals, DayMealModel{
				Position: m.Position,
				MealType: string(m.MealType),
				RecipeID: string(m.RecipeID),
				Calories: m.Facts.Calories,
				Carbs:    m.Facts.Carbs,
				Protein:  m.Facts.Protein,
				Fat:      m.Facts.Fat,
			})
		}
		model.Days = append(model.Days, dayModel)
	}

	return model
}

// ModelToWeekPlan rebuilds a week plan aggregate from GORM models. Day
// totals are taken as stored so generated days keep the engine's figures.
func ModelToWeekPlan(m *WeekPlanModel) (*plan.WeekPlan, error) {
	days := make([]plan.DayPlan, len(m.Days))
	for i, dayModel := range m.Days {
		meals := make([]plan.Meal, len(dayModel.Meals))
		for j, mealModel := range dayModel.Meals {
			mealType, err := meal.ParseMealType(mealModel.MealType)
			if err != nil {
				return nil, fmt.Errorf("week plan %s: %w", m.ID, err)
			}
			meals[j] = plan.Meal{
				MealType: mealType,
				Position: mealModel.Position,
				RecipeID: meal.RecipeID(mealModel.RecipeID),
				Facts:    modelFacts(mealModel.Calories, mealModel.Carbs, mealModel.Protein, mealModel.Fat),
			}
		}
		days[i] = plan.DayPlan{
			Date:    plan.CalendarDate(dayModel.Date),
			Meals:   meals,
			Totals:  modelFacts(dayModel.Calories, dayModel.Carbs, dayModel.Protein, dayModel.Fat),
			Fitness: dayModel.Fitness,
		}
	}

	return plan.Reconstitute(
		m.ID,
		m.OwnerID,
		m.AuthorID,
		m.StartDate,
		plan.Provenance(m.Provenance),
		uint64(m.Seed),
		days,
		m.CreatedAt,
	), nil
}

// ShoppingListToModel converts a shopping list to its GORM model
func ShoppingListToModel(list *plan.ShoppingList) *ShoppingListModel {
	rows := make(ShoppingRows, len(list.Items))
	for i, item := range list.Items {
		rows[i] = ShoppingRow(item)
	}
	return &ShoppingListModel{
		PlanID:    list.PlanID,
		OwnerID:   list.OwnerID,
		Items:     rows,
		CreatedAt: list.CreatedAt,
	}
}

// ModelToShoppingList converts a GORM model to a shopping list
func ModelToShoppingList(m *ShoppingListModel) *plan.ShoppingList {
	items := make([]plan.ShoppingItem, len(m.Items))
	for i, row := range m.Items {
		items[i] = plan.ShoppingItem(row)
	}
	return &plan.ShoppingList{
		PlanID:    m.PlanID,
		OwnerID:   m.OwnerID,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}
