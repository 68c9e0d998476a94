// Package genetic implements the evolutionary search that fills one day's
// meal slots with recipes whose combined nutrition is closest to a target.
package genetic

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TerminationReason explains why a run stopped
type TerminationReason string

const (
	ReasonMaxGenerations TerminationReason = "max_generations"
	ReasonStagnation     TerminationReason = "stagnation"
	ReasonTolerance      TerminationReason = "tolerance"
	ReasonTimeBudget     TerminationReason = "time_budget"
)

// Problem is the per-run input: what to aim for and which recipes qualify
type Problem struct {
	Target    meal.Target
	DietTypes []meal.DietType
	Fitness   FitnessFunction
}

// Result is the outcome of a run
type Result struct {
	Best        *Genome
	Generations int
	Reason      TerminationReason
	// BestHistory holds the all-time best score after initialisation and
	// after every generation. It never increases.
	BestHistory []float64
	Elapsed     time.Duration
}

// Observer receives a summary of every generation
type Observer interface {
	OnGeneration(generation int, allTimeBest, populationBest, populationWorst float64)
}

// Engine runs the search for a fixed slot structure
type Engine struct {
	cfg       Config
	slots     []meal.MealSlot
	catalogue Catalogue
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
}

// Option customises an engine
type Option func(*Engine)

// WithObserver attaches a per-generation observer
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithClock replaces the wall clock used for the time budget
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine validates the configuration and slot structure up front so
// that runs never fail on configuration
func NewEngine(cfg Config, slots []meal.MealSlot, catalogue Catalogue, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := meal.ValidateSlots(slots); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if catalogue == nil {
		return nil, fmt.Errorf("%w: catalogue is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	owned := make([]meal.MealSlot, len(slots))
	copy(owned, slots)

	e := &Engine{
		cfg:       cfg,
		slots:     owned,
		catalogue: catalogue,
		logger:    logger.Named("genetic"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's parameters
func (e *Engine) Config() Config { return e.cfg }

// Slots returns the slot structure every genome covers
func (e *Engine) Slots() []meal.MealSlot {
	out := make([]meal.MealSlot, len(e.slots))
	copy(out, e.slots)
	return out
}

// Run evolves a population until a termination rule fires and returns the
// best genome seen across all generations. The random source belongs to
// the caller and must not be shared with concurrent runs.
func (e *Engine) Run(ctx context.Context, p Problem, rng *rand.Rand) (*Result, error) {
	if p.Fitness == nil {
		return nil, errors.New("fitness function is required")
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}

	start := e.now()

	pools, err := NewPools(ctx, e.catalogue, e.slots, p.DietTypes)
	if err != nil {
		return nil, err
	}

	pop := make([]*Genome, e.cfg.PopulationSize)
	for i := range pop {
		if pop[i], err = pools.NewRandomGenome(ctx, rng, 0); err != nil {
			return nil, err
		}
	}
	if err := e.evaluate(ctx, pop, p); err != nil {
		return nil, err
	}
	sortPopulation(pop)

	best := pop[0].Clone()
	history := []float64{best.score}
	stagnant := 0
	generation := 0

	var reason TerminationReason
	for {
		if r, done := e.shouldStop(generation, best, stagnant, start); done {
			reason = r
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		generation++
		next, err := e.breed(ctx, pop, pools, rng, generation)
		if err != nil {
			return nil, err
		}
		if err := e.evaluate(ctx, next[e.cfg.EliteCount:], p); err != nil {
			return nil, err
		}
		sortPopulation(next)
		pop = next

		if pop[0].score < best.score {
			best = pop[0].Clone()
			stagnant = 0
		} else {
			stagnant++
		}
		history = append(history, best.score)

		if e.observer != nil {
			e.observer.OnGeneration(generation, best.score, pop[0].score, pop[len(pop)-1].score)
		}
		e.logger.Debug("Generation evolved",
			zap.Int("generation", generation),
			zap.Float64("best", best.score),
			zap.Float64("population_worst", pop[len(pop)-1].score),
			zap.Int("stagnant", stagnant),
		)
	}

	elapsed := e.now().Sub(start)
	e.logger.Debug("Search finished",
		zap.String("reason", string(reason)),
		zap.Int("generations", generation),
		zap.Float64("best", best.score),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{
		Best:        best,
		Generations: generation,
		Reason:      reason,
		BestHistory: history,
		Elapsed:     elapsed,
	}, nil
}

// breed produces the next generation: elites carried over unchanged, the
// rest filled by tournament selection, crossover and mutation
func (e *Engine) breed(ctx context.Context, pop []*Genome, pools *Pools, rng *rand.Rand, generation int) ([]*Genome, error) {
	next := make([]*Genome, 0, len(pop))
	next = append(next, pop[:e.cfg.EliteCount]...)

	for len(next) < len(pop) {
		a := tournament(pop, e.cfg.TournamentSize, rng)
		b := tournament(pop, e.cfg.TournamentSize, rng)

		child := crossover(a, b, e.cfg.CrossoverRate, rng, generation)
		if err := mutate(ctx, child, pools, e.cfg.MutationRate, rng); err != nil {
			return nil, err
		}
		child.Recompute()
		next = append(next, child)
	}
	return next, nil
}

// evaluate scores genomes, fanning out across workers for large populations.
// Each worker writes only its own genomes so results do not depend on scheduling.
func (e *Engine) evaluate(ctx context.Context, genomes []*Genome, p Problem) error {
	workers := e.cfg.EvaluationWorkers
	if workers <= 1 || len(genomes) < 2*workers {
		for _, g := range genomes {
			g.score = p.Fitness.Evaluate(g, p.Target)
		}
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	chunk := (len(genomes) + workers - 1) / workers
	for lo := 0; lo < len(genomes); lo += chunk {
		part := genomes[lo:min(lo+chunk, len(genomes))]
		g.Go(func() error {
			for _, genome := range part {
				genome.score = p.Fitness.Evaluate(genome, p.Target)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) shouldStop(generation int, best *Genome, stagnant int, start time.Time) (TerminationReason, bool) {
	switch {
	case best.score <= e.cfg.Tolerance:
		return ReasonTolerance, true
	case generation >= e.cfg.MaxGenerations:
		return ReasonMaxGenerations, true
	case e.cfg.StagnationLimit > 0 && stagnant >= e.cfg.StagnationLimit:
		return ReasonStagnation, true
	case e.cfg.MaxDuration > 0 && e.now().Sub(start) >= e.cfg.MaxDuration:
		return ReasonTimeBudget, true
	}
	return "", false
}
