package planner

import (
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
)

func entityToDTO(wp *plan.WeekPlan) *inbound.WeekPlanDTO {
	days := wp.Days()
	dayDTOs := make([]inbound.DayPlanDTO, len(days))
	for i, day := range days {
		meals := make([]inbound.MealDTO, len(day.Meals))
		for j, m := range day.Meals {
			meals[j] = inbound.MealDTO{
				MealType:  m.MealType,
				Position:  m.Position,
				RecipeID:  m.RecipeID,
				Nutrition: factsToDTO(m.Facts),
			}
		}
		dayDTOs[i] = inbound.DayPlanDTO{
			Date:    day.Date.Format(time.DateOnly),
			Meals:   meals,
			Totals:  factsToDTO(day.Totals),
			Fitness: day.Fitness,
		}
	}

	return &inbound.WeekPlanDTO{
		ID:         wp.ID(),
		OwnerID:    wp.OwnerID(),
		AuthorID:   wp.AuthorID(),
		StartDate:  wp.StartDate().Format(time.DateOnly),
		Provenance: wp.Provenance(),
		Seed:       wp.Seed(),
		Days:       dayDTOs,
		Totals:     factsToDTO(wp.Totals()),
		CreatedAt:  wp.CreatedAt().Format(time.RFC3339),
	}
}

func factsToDTO(f meal.Facts) inbound.NutritionDTO {
	return inbound.NutritionDTO{
		Calories: f.Calories,
		Carbs:    f.Carbs,
		Protein:  f.Protein,
		Fat:      f.Fat,
	}
}
