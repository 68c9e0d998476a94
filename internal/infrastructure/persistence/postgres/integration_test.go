//go:build integration

package postgres_test

import (
	"context"
	"math"
	"testing"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	gormRepo "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/mealplan/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// PostgresIntegrationTestSuite runs the repositories against a migrated
// PostgreSQL container
type PostgresIntegrationTestSuite struct {
	suite.Suite
	ctx    context.Context
	testDB *testutils.TestDatabase
}

func (suite *PostgresIntegrationTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	suite.testDB = testutils.SetupPostgresDatabase(suite.T(), testutils.DefaultDatabaseConfig())
	require.NoError(suite.T(), suite.testDB.RunMigrations())
}

func (suite *PostgresIntegrationTestSuite) SetupTest() {
	require.NoError(suite.T(), suite.testDB.TruncateAllTables())
}

func (suite *PostgresIntegrationTestSuite) TestMigrationsAreCurrent() {
	sqlDB, err := suite.testDB.GormDB.DB()
	require.NoError(suite.T(), err)
	m, err := migrations.New(sqlDB, suite.testDB.Config.Database.Database, zap.NewNop())
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), m.Up(), "a second run is a no-op")

	status, err := m.Status()
	require.NoError(suite.T(), err)
	assert.False(suite.T(), status.Dirty)
	assert.Empty(suite.T(), status.Pending)
	assert.Equal(suite.T(), uint(1), status.Version)
}

func (suite *PostgresIntegrationTestSuite) TestCatalogueQueries() {
	recipes := gormRepo.NewRecipeRepository(suite.testDB.GormDB)
	catalogue := testutils.NewCatalogueFactory(3).Catalogue(6,
		[]meal.MealType{meal.MealTypeLunch},
		[]meal.DietType{meal.DietTypeVegan, meal.DietTypeVegetarian, meal.DietTypeOmnivore},
	)
	require.NoError(suite.T(), recipes.SaveAll(suite.ctx, catalogue))

	ids, err := recipes.FindCandidateRecipes(suite.ctx, meal.MealTypeLunch,
		[]meal.DietType{meal.DietTypeVegan, meal.DietTypeVegetarian})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), ids, 4)

	lines, err := recipes.GetIngredients(suite.ctx, catalogue[0].ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), catalogue[0].Ingredients, lines)
}

func (suite *PostgresIntegrationTestSuite) TestWeekPlanAndShoppingList() {
	plans := gormRepo.NewWeekPlanRepository(suite.testDB.GormDB)
	lists := gormRepo.NewShoppingListRepository(suite.testDB.GormDB)
	owner := uuid.New()

	wp, err := testutils.GeneratedWeekPlan(owner, testutils.WeekStart, 2100, math.MaxUint64)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), plans.Save(suite.ctx, wp))

	loaded, err := plans.FindByID(suite.ctx, wp.ID())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint64(math.MaxUint64), loaded.Seed())
	assert.Equal(suite.T(), wp.Totals(), loaded.Totals())
	require.Len(suite.T(), loaded.Days(), plan.DaysPerWeek)
	assert.Equal(suite.T(), "dinner-6", string(loaded.Days()[6].Meals[0].RecipeID))

	list := plan.NewShoppingList(wp.ID(), owner, []meal.Ingredient{{Name: "Tofu", Amount: 200, Unit: "g"}})
	require.NoError(suite.T(), lists.Save(suite.ctx, list))
	stored, err := lists.FindByPlanID(suite.ctx, wp.ID())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), list.Items, stored.Items)

	page, total, err := plans.FindByOwner(suite.ctx, owner, 0, 10)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	assert.Len(suite.T(), page, 1)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
