package plan

import (
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// WeekPlanTestSuite provides a test suite for the plan aggregates
type WeekPlanTestSuite struct {
	suite.Suite
	start time.Time
	owner uuid.UUID
}

// SetupTest initializes per-test fixtures
func (suite *WeekPlanTestSuite) SetupTest() {
	suite.start = time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
	suite.owner = uuid.New()
}

func (suite *WeekPlanTestSuite) day(offset int, calories float64) DayPlan {
	d, err := NewGeneratedDayPlan(suite.start.AddDate(0, 0, offset), []Meal{
		{MealType: meal.MealTypeDinner, Position: 0, RecipeID: "r", Facts: meal.Facts{Calories: calories}},
	}, meal.Facts{Calories: calories}, 0)
	require.NoError(suite.T(), err)
	return d
}

func (suite *WeekPlanTestSuite) week(calories float64) []DayPlan {
	days := make([]DayPlan, DaysPerWeek)
	for i := range days {
		days[i] = suite.day(i, calories)
	}
	return days
}

// TestManualDayTotals tests that manual days sum their meals
func (suite *WeekPlanTestSuite) TestManualDayTotals() {
	// Arrange
	meals := []Meal{
		{MealType: meal.MealTypeLunch, Position: 1, RecipeID: "b", Facts: meal.Facts{Calories: 200, Protein: 8}},
		{MealType: meal.MealTypeBreakfast, Position: 0, RecipeID: "a", Facts: meal.Facts{Calories: 100, Protein: 4}},
	}

	// Act
	day, err := NewDayPlan(suite.start, meals)

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 300.0, day.Totals.Calories)
	assert.Equal(suite.T(), 12.0, day.Totals.Protein)
	assert.Equal(suite.T(), []meal.RecipeID{"a", "b"}, day.RecipeIDs(), "meals come out in slot order")
	assert.Equal(suite.T(), CalendarDate(suite.start), day.Date)
	assert.Zero(suite.T(), day.Fitness)
}

// TestDayValidation tests rejected day shapes
func (suite *WeekPlanTestSuite) TestDayValidation() {
	suite.Run("Empty_ShouldFail", func() {
		_, err := NewDayPlan(suite.start, nil)
		assert.ErrorIs(suite.T(), err, ErrEmptyDay)
	})

	suite.Run("DuplicateSlot_ShouldFail", func() {
		_, err := NewDayPlan(suite.start, []Meal{
			{MealType: meal.MealTypeLunch, Position: 0, RecipeID: "a"},
			{MealType: meal.MealTypeLunch, Position: 0, RecipeID: "b"},
		})
		assert.ErrorIs(suite.T(), err, ErrDuplicateSlot)
	})

	suite.Run("MissingRecipe_ShouldFail", func() {
		_, err := NewDayPlan(suite.start, []Meal{{MealType: meal.MealTypeLunch}})
		assert.ErrorIs(suite.T(), err, ErrMissingRecipe)
	})

	suite.Run("NegativeFacts_ShouldFail", func() {
		_, err := NewDayPlan(suite.start, []Meal{{MealType: meal.MealTypeLunch, RecipeID: "a", Facts: meal.Facts{Fat: -1}}})
		assert.ErrorIs(suite.T(), err, meal.ErrInvalidNutrition)
	})
}

// TestGeneratedWeekPlan tests week assembly and event emission
func (suite *WeekPlanTestSuite) TestGeneratedWeekPlan() {
	suite.Run("SevenDays_ShouldSumTotals", func() {
		// Act
		wp, err := NewGeneratedWeekPlan(suite.owner, uuid.Nil, suite.start, 42, suite.week(500))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3500.0, wp.Totals().Calories)
		assert.Equal(suite.T(), suite.owner, wp.AuthorID(), "author defaults to owner")
		assert.Equal(suite.T(), ProvenanceGenerated, wp.Provenance())
		assert.Equal(suite.T(), uint64(42), wp.Seed())
		assert.Equal(suite.T(), CalendarDate(suite.start), wp.StartDate())
		assert.Len(suite.T(), wp.RecipeIDs(), DaysPerWeek)

		events := wp.Events()
		require.Len(suite.T(), events, 1)
		generated, ok := events[0].(PlanGeneratedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), wp.ID(), generated.PlanID)
		assert.Same(suite.T(), wp, generated.Plan)
		assert.Empty(suite.T(), wp.Events(), "events are drained once")
	})

	suite.Run("DaysAreOrderedByDate", func() {
		days := suite.week(100)
		days[0], days[6] = days[6], days[0]

		wp, err := NewGeneratedWeekPlan(suite.owner, suite.owner, suite.start, 1, days)
		require.NoError(suite.T(), err)
		for i := 1; i < len(wp.Days()); i++ {
			assert.True(suite.T(), wp.Days()[i-1].Date.Before(wp.Days()[i].Date))
		}
	})

	suite.Run("SixDays_ShouldFail", func() {
		_, err := NewGeneratedWeekPlan(suite.owner, suite.owner, suite.start, 1, suite.week(100)[:6])
		assert.ErrorIs(suite.T(), err, ErrIncompleteWeek)
	})

	suite.Run("DayOutsideWeek_ShouldFail", func() {
		days := suite.week(100)
		days[6] = suite.day(7, 100)
		_, err := NewGeneratedWeekPlan(suite.owner, suite.owner, suite.start, 1, days)
		assert.ErrorIs(suite.T(), err, ErrDayOutsideWeek)
	})

	suite.Run("DuplicateDay_ShouldFail", func() {
		days := suite.week(100)
		days[6] = suite.day(5, 100)
		_, err := NewGeneratedWeekPlan(suite.owner, suite.owner, suite.start, 1, days)
		assert.ErrorIs(suite.T(), err, ErrDuplicateDay)
	})

	suite.Run("MissingOwner_ShouldFail", func() {
		_, err := NewGeneratedWeekPlan(uuid.Nil, uuid.Nil, suite.start, 1, suite.week(100))
		assert.ErrorIs(suite.T(), err, ErrMissingOwner)
	})
}

// TestManualWeekPlan tests hand-authored weeks
func (suite *WeekPlanTestSuite) TestManualWeekPlan() {
	suite.Run("PartialWeek_ShouldSucceedWithoutEvents", func() {
		wp, err := NewManualWeekPlan(suite.owner, uuid.New(), suite.start, []DayPlan{suite.day(2, 300)})
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), ProvenanceManual, wp.Provenance())
		assert.Equal(suite.T(), 300.0, wp.Totals().Calories)
		assert.Empty(suite.T(), wp.Events())
	})

	suite.Run("NoDays_ShouldFail", func() {
		_, err := NewManualWeekPlan(suite.owner, suite.owner, suite.start, nil)
		assert.ErrorIs(suite.T(), err, ErrInvalidDayCount)
	})
}

// TestReconstitute tests rebuilding a stored plan
func (suite *WeekPlanTestSuite) TestReconstitute() {
	id := uuid.New()
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	wp := Reconstitute(id, suite.owner, suite.owner, suite.start, ProvenanceGenerated, 7, suite.week(250), created)

	assert.Equal(suite.T(), id, wp.ID())
	assert.Equal(suite.T(), 1750.0, wp.Totals().Calories)
	assert.Equal(suite.T(), created, wp.CreatedAt())
	assert.Empty(suite.T(), wp.Events())
}

func TestCalendarDate(t *testing.T) {
	in := time.Date(2024, time.March, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), CalendarDate(in))
}

// TestWeekPlanTestSuite runs the week plan test suite
func TestWeekPlanTestSuite(t *testing.T) {
	suite.Run(t, new(WeekPlanTestSuite))
}
