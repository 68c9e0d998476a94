package genetic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by every engine configuration error
var ErrInvalidConfig = errors.New("invalid genetic algorithm configuration")

// Config holds the search parameters of one engine
type Config struct {
	PopulationSize    int           `validate:"gte=2"`
	EliteCount        int           `validate:"gte=0,ltfield=PopulationSize"`
	TournamentSize    int           `validate:"gte=1,ltefield=PopulationSize"`
	CrossoverRate     float64       `validate:"gte=0,lte=1"`
	MutationRate      float64       `validate:"gte=0,lte=1"` // per gene
	MaxGenerations    int           `validate:"gte=1"`
	StagnationLimit   int           `validate:"gte=0"` // 0 disables
	Tolerance         float64       `validate:"gte=0"` // stop once best score <= tolerance
	MaxDuration       time.Duration `validate:"gte=0"` // 0 disables
	EvaluationWorkers int           `validate:"gte=0"` // <= 1 evaluates sequentially
}

// DefaultConfig returns parameters that settle a three-slot day within a
// few dozen generations on catalogues of a few hundred recipes. The time
// budget is off: with it set the wall clock decides where a seeded run stops.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  60,
		EliteCount:      2,
		TournamentSize:  3,
		CrossoverRate:   0.9,
		MutationRate:    0.1,
		MaxGenerations:  200,
		StagnationLimit: 40,
		Tolerance:       5,
	}
}

var validate = validator.New()

// Validate checks the configuration, reporting every failing field
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
