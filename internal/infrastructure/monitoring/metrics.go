// Package monitoring exposes planner metrics to Prometheus and sets up
// OpenTelemetry tracing
package monitoring

import (
	"database/sql"
	"time"

	"github.com/alchemorsel/mealplan/internal/application/planner"
	"github.com/alchemorsel/mealplan/internal/genetic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// PlannerMetrics handles Prometheus metrics collection for the planner
type PlannerMetrics struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// Search metrics
	generationsTotal  prometheus.Counter
	bestFitness       prometheus.Gauge
	populationSpread  prometheus.Gauge
	dayGenerations    prometheus.Histogram
	dayFitness        prometheus.Histogram
	dayDuration       prometheus.Histogram
	terminationsTotal *prometheus.CounterVec

	// Week metrics
	weekPlansTotal   *prometheus.CounterVec
	weekPlanDuration prometheus.Histogram

	// Catalogue cache metrics
	cacheOperations *prometheus.CounterVec
}

var (
	_ genetic.Observer = (*PlannerMetrics)(nil)
	_ planner.Metrics  = (*PlannerMetrics)(nil)
)

// NewPlannerMetrics registers the planner collectors on a private registry
// together with the Go runtime and process collectors
func NewPlannerMetrics(namespace string, logger *zap.Logger) *PlannerMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &PlannerMetrics{
		logger:   logger.Named("metrics"),
		registry: registry,

		generationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ga_generations_total",
			Help:      "Total number of evolved generations",
		}),
		bestFitness: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ga_best_fitness",
			Help:      "All-time best fitness of the running search",
		}),
		populationSpread: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ga_population_spread",
			Help:      "Difference between the worst and best fitness of the latest generation",
		}),
		dayGenerations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "day_generations",
			Help:      "Generations evolved per generated day",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		dayFitness: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "day_fitness",
			Help:      "Fitness of the returned day plan",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		dayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "day_generation_duration_seconds",
			Help:      "Time spent generating one day",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}),
		terminationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ga_terminations_total",
			Help:      "Search runs by stop condition",
		}, []string{"reason"}),
		weekPlansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "week_plans_total",
			Help:      "Week plan generation attempts by outcome",
		}, []string{"outcome"}),
		weekPlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "week_plan_duration_seconds",
			Help:      "Time spent generating a week plan",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalogue_cache_operations_total",
			Help:      "Catalogue cache lookups by kind and result",
		}, []string{"kind", "status"}),
	}
}

// Registry returns the registry backing these metrics
func (m *PlannerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBStats exports connection pool statistics of a database handle
func (m *PlannerMetrics) RegisterDBStats(db *sql.DB, dbName string) {
	if err := m.registry.Register(collectors.NewDBStatsCollector(db, dbName)); err != nil {
		m.logger.Warn("Failed to register database stats collector",
			zap.String("database", dbName),
			zap.Error(err),
		)
	}
}

// OnGeneration records the progress of a running search
func (m *PlannerMetrics) OnGeneration(generation int, allTimeBest, populationBest, populationWorst float64) {
	m.generationsTotal.Inc()
	m.bestFitness.Set(allTimeBest)
	m.populationSpread.Set(populationWorst - populationBest)
}

// RecordDayGenerated records a finished search
func (m *PlannerMetrics) RecordDayGenerated(reason genetic.TerminationReason, generations int, fitness float64, elapsed time.Duration) {
	m.terminationsTotal.WithLabelValues(string(reason)).Inc()
	m.dayGenerations.Observe(float64(generations))
	m.dayFitness.Observe(fitness)
	m.dayDuration.Observe(elapsed.Seconds())
}

// RecordWeekPlan records a week plan request
func (m *PlannerMetrics) RecordWeekPlan(outcome string, elapsed time.Duration) {
	m.weekPlansTotal.WithLabelValues(outcome).Inc()
	m.weekPlanDuration.Observe(elapsed.Seconds())
}

// CacheHit counts a catalogue cache hit
func (m *PlannerMetrics) CacheHit(kind string) {
	m.cacheOperations.WithLabelValues(kind, "hit").Inc()
}

// CacheMiss counts a catalogue cache miss
func (m *PlannerMetrics) CacheMiss(kind string) {
	m.cacheOperations.WithLabelValues(kind, "miss").Inc()
}
