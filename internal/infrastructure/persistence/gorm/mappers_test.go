package gorm

import (
	"math"
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekPlanModel_SeedBitPattern(t *testing.T) {
	days := make([]plan.DayPlan, plan.DaysPerWeek)
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := range days {
		day, err := plan.NewDayPlan(start.AddDate(0, 0, i), []plan.Meal{{
			MealType: meal.MealTypeLunch, RecipeID: "r", Facts: meal.Facts{Calories: 10},
		}})
		require.NoError(t, err)
		days[i] = day
	}
	wp, err := plan.NewGeneratedWeekPlan(uuid.New(), uuid.Nil, start, math.MaxUint64, days)
	require.NoError(t, err)

	model := WeekPlanToModel(wp)
	assert.Equal(t, int64(-1), model.Seed)
	assert.Equal(t, 70.0, model.TotalCalories)

	back, err := ModelToWeekPlan(model)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), back.Seed())
	assert.Equal(t, wp.AuthorID(), back.AuthorID())
}

func TestModelToWeekPlan_RejectsUnknownMealType(t *testing.T) {
	model := &WeekPlanModel{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Days:    []DayPlanModel{{Meals: []DayMealModel{{MealType: "BRUNCH", RecipeID: "r"}}}},
	}

	_, err := ModelToWeekPlan(model)
	assert.ErrorIs(t, err, meal.ErrUnknownMealType)
}

func TestIngredientList_ScanValue(t *testing.T) {
	list := IngredientList{{Name: "Oats", Amount: 80, Unit: "g"}}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned IngredientList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)

	assert.Error(t, scanned.Scan(42))
}
