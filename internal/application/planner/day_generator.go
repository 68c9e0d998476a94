// Package planner provides the application layer for meal planning.
// It turns nutrition targets into day plans with the genetic engine and
// assembles, persists and announces week plans.
package planner

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/genetic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/alchemorsel/mealplan/internal/application/planner"

// DayGenerator produces one calendar day by running the engine
type DayGenerator struct {
	engine  *genetic.Engine
	fitness genetic.FitnessFunction
	metrics Metrics
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewDayGenerator creates a day generator. A nil metrics sink records nothing.
func NewDayGenerator(engine *genetic.Engine, fitness genetic.FitnessFunction, metrics Metrics, logger *zap.Logger) *DayGenerator {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &DayGenerator{
		engine:  engine,
		fitness: fitness,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		logger:  logger.Named("day-generator"),
	}
}

// Generate runs one search for date and converts the winning genome into a
// day plan. A NoCandidateRecipesError is returned as is.
func (g *DayGenerator) Generate(
	ctx context.Context,
	date time.Time,
	target meal.Target,
	diets []meal.DietType,
	rng *rand.Rand,
) (*plan.DayPlan, error) {
	ctx, span := g.tracer.Start(ctx, "planner.GenerateDay",
		trace.WithAttributes(
			attribute.String("plan.date", plan.CalendarDate(date).Format(time.DateOnly)),
			attribute.Float64("target.calories", target.DailyCalories),
			attribute.StringSlice("diet.types", meal.DietNames(diets)),
		),
	)
	defer span.End()

	result, err := g.engine.Run(ctx, genetic.Problem{
		Target:    target,
		DietTypes: diets,
		Fitness:   g.fitness,
	}, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	g.metrics.RecordDayGenerated(result.Reason, result.Generations, result.Best.Score(), result.Elapsed)
	span.SetAttributes(
		attribute.String("search.reason", string(result.Reason)),
		attribute.Int("search.generations", result.Generations),
		attribute.Float64("search.fitness", result.Best.Score()),
	)

	genes := result.Best.Genes()
	meals := make([]plan.Meal, len(genes))
	for i, gene := range genes {
		meals[i] = plan.Meal{
			MealType: gene.Slot.MealType,
			Position: gene.Slot.Position,
			RecipeID: gene.RecipeID,
			Facts:    gene.Facts,
		}
	}

	day, err := plan.NewGeneratedDayPlan(date, meals, result.Best.Totals(), result.Best.Score())
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Day generated",
		zap.Time("date", day.Date),
		zap.Float64("calories", day.Totals.Calories),
		zap.Float64("fitness", day.Fitness),
		zap.String("reason", string(result.Reason)),
		zap.Int("generations", result.Generations),
	)

	return &day, nil
}
