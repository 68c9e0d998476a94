package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type fakeRecipe struct {
	mealType meal.MealType
	diet     meal.DietType
	facts    meal.Facts
}

// fakeCatalogue serves a fixed recipe set and counts queries
type fakeCatalogue struct {
	recipes    map[meal.RecipeID]fakeRecipe
	findCalls  int
	factsCalls int
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{recipes: make(map[meal.RecipeID]fakeRecipe)}
}

func (c *fakeCatalogue) add(id string, mt meal.MealType, diet meal.DietType, calories float64) *fakeCatalogue {
	c.recipes[meal.RecipeID(id)] = fakeRecipe{mealType: mt, diet: diet, facts: meal.Facts{Calories: calories}}
	return c
}

func (c *fakeCatalogue) FindCandidateRecipes(_ context.Context, mt meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error) {
	c.findCalls++
	var ids []meal.RecipeID
	for id, r := range c.recipes {
		if r.mealType != mt {
			continue
		}
		for _, d := range diets {
			if r.diet == d {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (c *fakeCatalogue) GetNutritionFacts(_ context.Context, id meal.RecipeID) (meal.Facts, error) {
	c.factsCalls++
	r, ok := c.recipes[id]
	if !ok {
		return meal.Facts{}, meal.ErrRecipeNotFound
	}
	return r.facts, nil
}

// slowCatalogue adds latency to every facts lookup
type slowCatalogue struct {
	*fakeCatalogue
	delay time.Duration
}

func (c slowCatalogue) GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error) {
	time.Sleep(c.delay)
	return c.fakeCatalogue.GetNutritionFacts(ctx, id)
}

type recordingObserver struct {
	generations []int
	best        []float64
}

func (o *recordingObserver) OnGeneration(generation int, allTimeBest, _, _ float64) {
	o.generations = append(o.generations, generation)
	o.best = append(o.best, allTimeBest)
}

var threeSlots = []meal.MealSlot{
	{MealType: meal.MealTypeBreakfast, Position: 0},
	{MealType: meal.MealTypeLunch, Position: 1},
	{MealType: meal.MealTypeDinner, Position: 2},
}

var veganOnly = []meal.DietType{meal.DietTypeVegan}

// EngineTestSuite provides a test suite for the evolutionary search
type EngineTestSuite struct {
	suite.Suite
	catalogue *fakeCatalogue
	cfg       Config
	ctx       context.Context
}

// SetupTest builds a catalogue where 500 kcal is reachable exactly
func (suite *EngineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.catalogue = newFakeCatalogue().
		add("b1", meal.MealTypeBreakfast, meal.DietTypeVegan, 100).
		add("b2", meal.MealTypeBreakfast, meal.DietTypeVegan, 200).
		add("l1", meal.MealTypeLunch, meal.DietTypeVegan, 150).
		add("d1", meal.MealTypeDinner, meal.DietTypeVegan, 150).
		add("d2", meal.MealTypeDinner, meal.DietTypeVegan, 250).
		add("d-meat", meal.MealTypeDinner, meal.DietTypeOmnivore, 1000)

	suite.cfg = DefaultConfig()
	suite.cfg.PopulationSize = 20
	suite.cfg.Tolerance = 0
	suite.cfg.MaxDuration = 0
}

func (suite *EngineTestSuite) engine(opts ...Option) *Engine {
	e, err := NewEngine(suite.cfg, threeSlots, suite.catalogue, zap.NewNop(), opts...)
	require.NoError(suite.T(), err)
	return e
}

func (suite *EngineTestSuite) problem(calories float64) Problem {
	return Problem{
		Target:    meal.Target{DailyCalories: calories, DietType: meal.DietTypeVegan},
		DietTypes: veganOnly,
		Fitness:   CalorieDeviation{},
	}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// TestExactTarget tests that a reachable target is hit with zero deviation
func (suite *EngineTestSuite) TestExactTarget() {
	// Act
	result, err := suite.engine().Run(suite.ctx, suite.problem(500), seeded(1))

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, result.Best.Score())
	assert.Equal(suite.T(), 500.0, result.Best.Totals().Calories)
	assert.Equal(suite.T(), ReasonTolerance, result.Reason)
}

// TestGenomeCoversEverySlot tests slot completeness and diet filtering
func (suite *EngineTestSuite) TestGenomeCoversEverySlot() {
	result, err := suite.engine().Run(suite.ctx, suite.problem(900), seeded(7))
	require.NoError(suite.T(), err)

	genes := result.Best.Genes()
	require.Len(suite.T(), genes, len(threeSlots))
	for i, gene := range genes {
		assert.Equal(suite.T(), threeSlots[i], gene.Slot)
		r := suite.catalogue.recipes[gene.RecipeID]
		assert.Equal(suite.T(), threeSlots[i].MealType, r.mealType)
		assert.Equal(suite.T(), meal.DietTypeVegan, r.diet)
		assert.Equal(suite.T(), r.facts, gene.Facts)
	}
}

// TestTotalsMatchGenes tests that cached totals equal the gene sum
func (suite *EngineTestSuite) TestTotalsMatchGenes() {
	result, err := suite.engine().Run(suite.ctx, suite.problem(620), seeded(3))
	require.NoError(suite.T(), err)

	var facts []meal.Facts
	for _, g := range result.Best.Genes() {
		facts = append(facts, g.Facts)
	}
	assert.Equal(suite.T(), meal.Sum(facts...), result.Best.Totals())
	assert.Equal(suite.T(), CalorieDeviation{}.Evaluate(result.Best, suite.problem(620).Target), result.Best.Score())
}

// TestDeterminism tests that a seed fully determines the outcome
func (suite *EngineTestSuite) TestDeterminism() {
	suite.cfg.MaxGenerations = 30
	suite.cfg.StagnationLimit = 0

	first, err := suite.engine().Run(suite.ctx, suite.problem(777), seeded(99))
	require.NoError(suite.T(), err)
	second, err := suite.engine().Run(suite.ctx, suite.problem(777), seeded(99))
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), first.Best.Genes(), second.Best.Genes())
	assert.Equal(suite.T(), first.BestHistory, second.BestHistory)
	assert.Equal(suite.T(), first.Generations, second.Generations)
}

// TestDefaultConfigIgnoresWallClock tests that a seeded run with default
// limits does not depend on how long lookups or generations take
func (suite *EngineTestSuite) TestDefaultConfigIgnoresWallClock() {
	suite.cfg = DefaultConfig()
	suite.cfg.Tolerance = 0
	assert.Zero(suite.T(), suite.cfg.MaxDuration)

	fast, err := suite.engine().Run(suite.ctx, suite.problem(777), seeded(42))
	require.NoError(suite.T(), err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	crawl := func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Hour)
	}
	slowEngine, err := NewEngine(suite.cfg, threeSlots, slowCatalogue{fakeCatalogue: suite.catalogue, delay: 3 * time.Millisecond}, zap.NewNop(), WithClock(crawl))
	require.NoError(suite.T(), err)
	slow, err := slowEngine.Run(suite.ctx, suite.problem(777), seeded(42))
	require.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), ReasonTimeBudget, slow.Reason)
	assert.Equal(suite.T(), fast.Reason, slow.Reason)
	assert.Equal(suite.T(), fast.Generations, slow.Generations)
	assert.Equal(suite.T(), fast.Best.Genes(), slow.Best.Genes())
	assert.Equal(suite.T(), fast.BestHistory, slow.BestHistory)
}

// TestMutationFindsRecipesMissingFromInitialPopulation tests that with
// crossover off the search still reaches an optimum it did not start with
func (suite *EngineTestSuite) TestMutationFindsRecipesMissingFromInitialPopulation() {
	suite.catalogue = newFakeCatalogue().
		add("l", meal.MealTypeLunch, meal.DietTypeVegan, 100).
		add("d", meal.MealTypeDinner, meal.DietTypeVegan, 100)
	for i := 0; i < 400; i++ {
		suite.catalogue.add(fmt.Sprintf("b%03d", i), meal.MealTypeBreakfast, meal.DietTypeVegan, float64(1000+i))
	}
	suite.cfg.PopulationSize = 20
	suite.cfg.CrossoverRate = 0
	suite.cfg.MutationRate = 0.5
	suite.cfg.MaxGenerations = 2000
	suite.cfg.StagnationLimit = 0

	// Only b137 gives 1337 kcal
	for s := uint64(1); s <= 50; s++ {
		result, err := suite.engine().Run(suite.ctx, suite.problem(1337), seeded(s))
		require.NoError(suite.T(), err)
		if result.BestHistory[0] == 0 {
			continue
		}

		assert.Equal(suite.T(), ReasonTolerance, result.Reason)
		assert.Equal(suite.T(), 0.0, result.Best.Score())
		assert.Equal(suite.T(), meal.RecipeID("b137"), result.Best.Genes()[0].RecipeID)
		assert.Positive(suite.T(), result.Generations)
		return
	}
	suite.Fail("every seed drew the optimum into the initial population")
}

// TestParallelEvaluationMatchesSequential tests that workers do not change results
func (suite *EngineTestSuite) TestParallelEvaluationMatchesSequential() {
	suite.cfg.MaxGenerations = 25
	suite.cfg.StagnationLimit = 0
	sequential, err := suite.engine().Run(suite.ctx, suite.problem(777), seeded(5))
	require.NoError(suite.T(), err)

	suite.cfg.EvaluationWorkers = 4
	parallel, err := suite.engine().Run(suite.ctx, suite.problem(777), seeded(5))
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), sequential.Best.Genes(), parallel.Best.Genes())
	assert.Equal(suite.T(), sequential.BestHistory, parallel.BestHistory)
}

// TestBestHistoryNeverIncreases tests elitism of the all-time best
func (suite *EngineTestSuite) TestBestHistoryNeverIncreases() {
	suite.cfg.MaxGenerations = 40
	suite.cfg.StagnationLimit = 0
	observer := &recordingObserver{}

	result, err := suite.engine(WithObserver(observer)).Run(suite.ctx, suite.problem(333), seeded(11))
	require.NoError(suite.T(), err)

	require.Len(suite.T(), result.BestHistory, result.Generations+1)
	for i := 1; i < len(result.BestHistory); i++ {
		assert.LessOrEqual(suite.T(), result.BestHistory[i], result.BestHistory[i-1])
	}
	assert.Equal(suite.T(), result.BestHistory[len(result.BestHistory)-1], result.Best.Score())
	assert.Len(suite.T(), observer.generations, result.Generations)
	assert.Equal(suite.T(), result.BestHistory[1:], observer.best)
}

// TestStopConditions tests each termination rule
func (suite *EngineTestSuite) TestStopConditions() {
	suite.Run("MaxGenerations", func() {
		suite.cfg.MaxGenerations = 2
		suite.cfg.StagnationLimit = 0

		result, err := suite.engine().Run(suite.ctx, suite.problem(10), seeded(1))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), ReasonMaxGenerations, result.Reason)
		assert.Equal(suite.T(), 2, result.Generations)
		assert.Len(suite.T(), result.BestHistory, 3)
	})

	suite.Run("Stagnation", func() {
		suite.SetupTest()
		suite.catalogue = newFakeCatalogue().
			add("b", meal.MealTypeBreakfast, meal.DietTypeVegan, 100).
			add("l", meal.MealTypeLunch, meal.DietTypeVegan, 100).
			add("d", meal.MealTypeDinner, meal.DietTypeVegan, 100)
		suite.cfg.StagnationLimit = 3

		result, err := suite.engine().Run(suite.ctx, suite.problem(1000), seeded(1))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), ReasonStagnation, result.Reason)
		assert.Equal(suite.T(), 3, result.Generations)
		assert.Equal(suite.T(), 700.0, result.Best.Score())
	})

	suite.Run("TimeBudget", func() {
		suite.SetupTest()
		suite.cfg.MaxDuration = 500 * time.Millisecond
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		calls := 0
		clock := func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Second)
		}

		result, err := suite.engine(WithClock(clock)).Run(suite.ctx, suite.problem(10), seeded(1))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), ReasonTimeBudget, result.Reason)
		assert.Equal(suite.T(), 0, result.Generations)
	})

	suite.Run("ToleranceCheckedFirst", func() {
		suite.SetupTest()
		suite.cfg.Tolerance = 10000
		suite.cfg.MaxGenerations = 1

		result, err := suite.engine().Run(suite.ctx, suite.problem(10), seeded(1))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), ReasonTolerance, result.Reason)
		assert.Equal(suite.T(), 0, result.Generations)
	})
}

// TestNoCandidates tests that an empty slot pool aborts the run
func (suite *EngineTestSuite) TestNoCandidates() {
	suite.catalogue = newFakeCatalogue().
		add("b", meal.MealTypeBreakfast, meal.DietTypeVegan, 100).
		add("l", meal.MealTypeLunch, meal.DietTypeVegan, 100).
		add("d", meal.MealTypeDinner, meal.DietTypeOmnivore, 100)

	_, err := suite.engine().Run(suite.ctx, suite.problem(500), seeded(1))

	var noCandidates *meal.NoCandidateRecipesError
	require.ErrorAs(suite.T(), err, &noCandidates)
	assert.Equal(suite.T(), meal.MealTypeDinner, noCandidates.Slot.MealType)
	assert.Equal(suite.T(), 2, noCandidates.Slot.Position)
	assert.Equal(suite.T(), veganOnly, noCandidates.DietTypes)
}

// TestCancellation tests that a cancelled context stops the search
func (suite *EngineTestSuite) TestCancellation() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.engine().Run(ctx, suite.problem(10), seeded(1))
	assert.ErrorIs(suite.T(), err, context.Canceled)
}

// TestCatalogueQueriedOncePerMealType tests pool construction and fact memoisation
func (suite *EngineTestSuite) TestCatalogueQueriedOncePerMealType() {
	slots := []meal.MealSlot{
		{MealType: meal.MealTypeBreakfast, Position: 0},
		{MealType: meal.MealTypeDinner, Position: 1},
		{MealType: meal.MealTypeDinner, Position: 2},
	}

	g, err := RandomInit(suite.ctx, slots, veganOnly, suite.catalogue, seeded(1))
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 3, g.Len())
	assert.Equal(suite.T(), 2, suite.catalogue.findCalls)
	assert.LessOrEqual(suite.T(), suite.catalogue.factsCalls, 3)
}

// TestRunRequiresInputs tests argument validation
func (suite *EngineTestSuite) TestRunRequiresInputs() {
	e := suite.engine()

	_, err := e.Run(suite.ctx, Problem{DietTypes: veganOnly}, seeded(1))
	assert.Error(suite.T(), err)

	_, err = e.Run(suite.ctx, suite.problem(500), nil)
	assert.Error(suite.T(), err)
}

// TestEngineTestSuite runs the engine test suite
func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestNewEngine_Validation(t *testing.T) {
	catalogue := newFakeCatalogue()

	_, err := NewEngine(DefaultConfig(), nil, catalogue, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewEngine(DefaultConfig(), threeSlots, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := DefaultConfig()
	bad.PopulationSize = 1
	_, err = NewEngine(bad, threeSlots, catalogue, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	e, err := NewEngine(DefaultConfig(), threeSlots, catalogue, nil)
	require.NoError(t, err)
	assert.Equal(t, threeSlots, e.Slots())
}
