package planner

import (
	"time"

	"github.com/alchemorsel/mealplan/internal/genetic"
)

// Week plan outcomes reported to Metrics
const (
	OutcomeSuccess      = "success"
	OutcomeNoCandidates = "no_candidates"
	OutcomeFailed       = "failed"
)

// Metrics receives planning measurements
type Metrics interface {
	RecordDayGenerated(reason genetic.TerminationReason, generations int, fitness float64, elapsed time.Duration)
	RecordWeekPlan(outcome string, elapsed time.Duration)
}

// NopMetrics discards every measurement
type NopMetrics struct{}

func (NopMetrics) RecordDayGenerated(genetic.TerminationReason, int, float64, time.Duration) {}
func (NopMetrics) RecordWeekPlan(string, time.Duration)                                      {}
