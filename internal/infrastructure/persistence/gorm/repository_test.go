package gorm_test

import (
	"context"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	gormRepo "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RepositoryTestSuite runs the GORM repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	recipes  *gormRepo.RecipeRepository
	profiles *gormRepo.ProfileRepository
	plans    *gormRepo.WeekPlanRepository
	lists    *gormRepo.ShoppingListRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutils.SetupSQLiteDatabase(suite.T())
	suite.recipes = gormRepo.NewRecipeRepository(suite.db)
	suite.profiles = gormRepo.NewProfileRepository(suite.db)
	suite.plans = gormRepo.NewWeekPlanRepository(suite.db)
	suite.lists = gormRepo.NewShoppingListRepository(suite.db)
}

func (suite *RepositoryTestSuite) TestRecipeCatalogueQueries() {
	// Arrange
	recipes := testutils.NewCatalogueFactory(11).Catalogue(4,
		[]meal.MealType{meal.MealTypeBreakfast, meal.MealTypeDinner},
		[]meal.DietType{meal.DietTypeVegan, meal.DietTypeOmnivore},
	)
	require.NoError(suite.T(), suite.recipes.SaveAll(suite.ctx, recipes))

	// Act
	vegan, err := suite.recipes.FindCandidateRecipes(suite.ctx, meal.MealTypeDinner, []meal.DietType{meal.DietTypeVegan})
	require.NoError(suite.T(), err)
	all, err := suite.recipes.FindCandidateRecipes(suite.ctx, meal.MealTypeDinner, []meal.DietType{meal.DietTypeVegan, meal.DietTypeOmnivore})
	require.NoError(suite.T(), err)
	none, err := suite.recipes.FindCandidateRecipes(suite.ctx, meal.MealTypeSnack, []meal.DietType{meal.DietTypeVegan})
	require.NoError(suite.T(), err)

	// Assert
	assert.Len(suite.T(), vegan, 2)
	assert.Len(suite.T(), all, 4)
	assert.True(suite.T(), sort.SliceIsSorted(all, func(i, j int) bool { return all[i] < all[j] }))
	assert.Empty(suite.T(), none)

	count, err := suite.recipes.Count(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(8), count)

	want := recipes[5]
	facts, err := suite.recipes.GetNutritionFacts(suite.ctx, want.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want.Facts, facts)

	lines, err := suite.recipes.GetIngredients(suite.ctx, want.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want.Ingredients, lines)

	stored, err := suite.recipes.FindByID(suite.ctx, want.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want.Title, stored.Title)
	assert.Equal(suite.T(), want.DietType, stored.DietType)
}

func (suite *RepositoryTestSuite) TestRecipeSaveReplacesAndValidates() {
	r := testutils.NewRecipeBuilder("d1").WithCalories(500).Build()
	require.NoError(suite.T(), suite.recipes.Save(suite.ctx, r))

	r.Facts.Calories = 550
	require.NoError(suite.T(), suite.recipes.Save(suite.ctx, r))

	facts, err := suite.recipes.GetNutritionFacts(suite.ctx, "d1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 550.0, facts.Calories)

	assert.Error(suite.T(), suite.recipes.Save(suite.ctx, meal.Recipe{}))
	assert.ErrorIs(suite.T(), suite.recipes.Save(suite.ctx,
		testutils.NewRecipeBuilder("bad").WithCalories(-5).Build()), meal.ErrInvalidNutrition)

	_, err = suite.recipes.GetNutritionFacts(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, meal.ErrRecipeNotFound)
	_, err = suite.recipes.GetIngredients(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, meal.ErrRecipeNotFound)
}

func (suite *RepositoryTestSuite) TestProfileUpsert() {
	user := uuid.New()

	_, err := suite.profiles.GetNutritionTargetForUser(suite.ctx, user)
	assert.ErrorIs(suite.T(), err, outbound.ErrProfileNotFound)

	first := meal.Target{DailyCalories: 2000, DailyProteinGrams: 90, DietType: meal.DietTypeVegan}
	require.NoError(suite.T(), suite.profiles.SaveNutritionTarget(suite.ctx, user, first))

	second := meal.Target{DailyCalories: 2400, DailyCarbsGrams: 300, DietType: meal.DietTypeOmnivore}
	require.NoError(suite.T(), suite.profiles.SaveNutritionTarget(suite.ctx, user, second))

	got, err := suite.profiles.GetNutritionTargetForUser(suite.ctx, user)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), second, got)

	assert.ErrorIs(suite.T(), suite.profiles.SaveNutritionTarget(suite.ctx, user, meal.Target{DietType: meal.DietTypeVegan}), meal.ErrInvalidTarget)
}

func (suite *RepositoryTestSuite) TestWeekPlanRoundTrip() {
	// Arrange: a seed above MaxInt64 exercises the signed column
	owner := uuid.New()
	wp, err := testutils.GeneratedWeekPlan(owner, testutils.WeekStart, 1900, math.MaxUint64-3)
	require.NoError(suite.T(), err)

	// Act
	require.NoError(suite.T(), suite.plans.Save(suite.ctx, wp))
	loaded, err := suite.plans.FindByID(suite.ctx, wp.ID())

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), wp.ID(), loaded.ID())
	assert.Equal(suite.T(), owner, loaded.OwnerID())
	assert.Equal(suite.T(), plan.ProvenanceGenerated, loaded.Provenance())
	assert.Equal(suite.T(), uint64(math.MaxUint64-3), loaded.Seed())
	assert.Equal(suite.T(), wp.Totals(), loaded.Totals())
	assert.True(suite.T(), wp.StartDate().Equal(loaded.StartDate()))
	assert.WithinDuration(suite.T(), wp.CreatedAt(), loaded.CreatedAt(), time.Second)
	assert.Empty(suite.T(), loaded.Events(), "loaded plans raise no events")

	require.Len(suite.T(), loaded.Days(), plan.DaysPerWeek)
	for i, day := range loaded.Days() {
		original := wp.Days()[i]
		assert.True(suite.T(), original.Date.Equal(day.Date), "day %d", i)
		assert.Equal(suite.T(), original.Meals, day.Meals)
		assert.Equal(suite.T(), original.Totals, day.Totals)
	}

	_, err = suite.plans.FindByID(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, plan.ErrPlanNotFound)
}

func (suite *RepositoryTestSuite) TestWeekPlanFindByOwner() {
	owner := uuid.New()
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		wp, err := testutils.GeneratedWeekPlan(owner, testutils.WeekStart.AddDate(0, 0, 7*i), 2000, uint64(i))
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), suite.plans.Save(suite.ctx, wp))
		ids = append(ids, wp.ID())
	}
	stranger, err := testutils.GeneratedWeekPlan(uuid.New(), testutils.WeekStart, 2000, 1)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.plans.Save(suite.ctx, stranger))

	page, total, err := suite.plans.FindByOwner(suite.ctx, owner, 1, 1)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, total)
	require.Len(suite.T(), page, 1)
	assert.Equal(suite.T(), ids[1], page[0].ID())
	assert.Len(suite.T(), page[0].Days(), plan.DaysPerWeek)

	first, _, err := suite.plans.FindByOwner(suite.ctx, owner, 0, 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), first, 3)
	assert.Equal(suite.T(), ids[2], first[0].ID(), "latest week first")
}

func (suite *RepositoryTestSuite) TestShoppingListUpsert() {
	planID, owner := uuid.New(), uuid.New()

	require.NoError(suite.T(), suite.lists.Save(suite.ctx,
		plan.NewShoppingList(planID, owner, []meal.Ingredient{{Name: "Rice", Amount: 100, Unit: "g"}})))
	require.NoError(suite.T(), suite.lists.Save(suite.ctx,
		plan.NewShoppingList(planID, owner, []meal.Ingredient{{Name: "Rice", Amount: 300, Unit: "g"}, {Name: "Leek", Amount: 1, Unit: "piece"}})))

	list, err := suite.lists.FindByPlanID(suite.ctx, planID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), owner, list.OwnerID)
	assert.Equal(suite.T(), []plan.ShoppingItem{
		{Name: "leek", Unit: "piece", Amount: 1},
		{Name: "rice", Unit: "g", Amount: 300},
	}, list.Items)

	_, err = suite.lists.FindByPlanID(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, plan.ErrPlanNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
