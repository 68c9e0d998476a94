package genetic

import (
	"fmt"
	"math"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
)

// Fitness strategy names accepted by NewFitness
const (
	StrategyCalories       = "calories"
	StrategyWeightedMacros = "weighted_macros"
)

// FitnessFunction scores a genome against a target. Lower is better and
// zero is a perfect match. The engine never looks past this interface.
type FitnessFunction interface {
	Evaluate(g *Genome, target meal.Target) float64
}

// CalorieDeviation scores the absolute calorie distance from the target
type CalorieDeviation struct{}

func (CalorieDeviation) Evaluate(g *Genome, target meal.Target) float64 {
	return math.Abs(g.Totals().Calories - target.DailyCalories)
}

// MacroWeights weights each macro's absolute deviation
type MacroWeights struct {
	Calories float64 `mapstructure:"calories"`
	Carbs    float64 `mapstructure:"carbs"`
	Protein  float64 `mapstructure:"protein"`
	Fat      float64 `mapstructure:"fat"`
}

// DefaultMacroWeights favours calories while still steering macros.
// One gram of macro deviation counts about as much as four calories.
func DefaultMacroWeights() MacroWeights {
	return MacroWeights{Calories: 1, Carbs: 4, Protein: 4, Fat: 9}
}

// WeightedMacroDeviation scores the weighted sum of absolute macro deviations
type WeightedMacroDeviation struct {
	Weights MacroWeights
}

func (w WeightedMacroDeviation) Evaluate(g *Genome, target meal.Target) float64 {
	got, want := g.Totals(), target.AsFacts()
	return w.Weights.Calories*math.Abs(got.Calories-want.Calories) +
		w.Weights.Carbs*math.Abs(got.Carbs-want.Carbs) +
		w.Weights.Protein*math.Abs(got.Protein-want.Protein) +
		w.Weights.Fat*math.Abs(got.Fat-want.Fat)
}

// NewFitness selects a fitness strategy by name
func NewFitness(strategy string, weights MacroWeights) (FitnessFunction, error) {
	switch strategy {
	case "", StrategyCalories:
		return CalorieDeviation{}, nil
	case StrategyWeightedMacros:
		for _, v := range []float64{weights.Calories, weights.Carbs, weights.Protein, weights.Fat} {
			if v < 0 || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: macro weights must be non-negative", ErrInvalidConfig)
			}
		}
		return WeightedMacroDeviation{Weights: weights}, nil
	default:
		return nil, fmt.Errorf("%w: unknown fitness strategy %q", ErrInvalidConfig, strategy)
	}
}
