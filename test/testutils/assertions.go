// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PlanAssertions provides week plan assertion methods
type PlanAssertions struct {
	t *testing.T
}

// NewPlanAssertions creates a new plan assertions helper
func NewPlanAssertions(t *testing.T) *PlanAssertions {
	return &PlanAssertions{t: t}
}

// CompleteWeek asserts seven consecutive days starting at start, each
// covering every slot exactly once
func (pa *PlanAssertions) CompleteWeek(dto *inbound.WeekPlanDTO, start time.Time, slots []meal.MealSlot) {
	pa.t.Helper()
	require.NotNil(pa.t, dto, "Week plan should not be nil")
	assert.NotEqual(pa.t, uuid.Nil, dto.ID, "Week plan should have an ID")
	require.Len(pa.t, dto.Days, plan.DaysPerWeek)

	for i, day := range dto.Days {
		assert.Equal(pa.t, start.AddDate(0, 0, i).Format(time.DateOnly), day.Date)
		require.Len(pa.t, day.Meals, len(slots), "day %s", day.Date)
		for j, m := range day.Meals {
			assert.Equal(pa.t, slots[j].MealType, m.MealType, "day %s slot %d", day.Date, j)
			assert.Equal(pa.t, slots[j].Position, m.Position, "day %s slot %d", day.Date, j)
		}
	}
}

// TotalsConsistent asserts that day totals sum their meals and the week
// totals sum the days
func (pa *PlanAssertions) TotalsConsistent(dto *inbound.WeekPlanDTO) {
	pa.t.Helper()

	var week float64
	for _, day := range dto.Days {
		var sum float64
		for _, m := range day.Meals {
			sum += m.Nutrition.Calories
		}
		assert.InDelta(pa.t, sum, day.Totals.Calories, 1e-9, "day %s", day.Date)
		week += day.Totals.Calories
	}
	assert.InDelta(pa.t, week, dto.Totals.Calories, 1e-9)
}

// SameDays asserts that two plans chose the same recipes on every day
func (pa *PlanAssertions) SameDays(expected, actual *inbound.WeekPlanDTO) {
	pa.t.Helper()
	require.Len(pa.t, actual.Days, len(expected.Days))
	for i := range expected.Days {
		assert.Equal(pa.t, expected.Days[i].Meals, actual.Days[i].Meals, "day %d", i)
		assert.Equal(pa.t, expected.Days[i].Fitness, actual.Days[i].Fitness, "day %d", i)
	}
}
