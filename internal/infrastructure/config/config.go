// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/genetic"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MEALPLAN_PLANNER_POPULATION_SIZE
const EnvPrefix = "MEALPLAN"

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Planner    PlannerConfig    `mapstructure:"planner"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"` // sqlite file, ":memory:" for a throwaway database
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel        string        `mapstructure:"log_level"`
	SlowQuery       time.Duration `mapstructure:"slow_query_threshold"`
	ReadReplicas    []string      `mapstructure:"read_replicas"` // replica hosts sharing port and credentials
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	SeedDemoData    bool          `mapstructure:"seed_demo_data"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	Database      int           `mapstructure:"database"`
	MaxRetries    int           `mapstructure:"max_retries"`
	PoolSize      int           `mapstructure:"pool_size"`
	MinIdleConns  int           `mapstructure:"min_idle_conns"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	EnableCluster bool          `mapstructure:"enable_cluster"`
	ClusterNodes  []string      `mapstructure:"cluster_nodes"`
	PlanChannel   string        `mapstructure:"plan_channel"`
	CatalogueTTL  time.Duration `mapstructure:"catalogue_ttl"`
}

// PlannerConfig contains the search parameters and week assembly options
type PlannerConfig struct {
	PopulationSize    int           `mapstructure:"population_size"`
	EliteCount        int           `mapstructure:"elite_count"`
	TournamentSize    int           `mapstructure:"tournament_size"`
	CrossoverRate     float64       `mapstructure:"crossover_rate"`
	MutationRate      float64       `mapstructure:"mutation_rate"`
	MaxGenerations    int           `mapstructure:"max_generations"`
	StagnationLimit   int           `mapstructure:"stagnation_limit"`
	Tolerance         float64       `mapstructure:"tolerance"`
	MaxDuration       time.Duration `mapstructure:"max_duration"`
	EvaluationWorkers int           `mapstructure:"evaluation_workers"`
	MealSlots         []string      `mapstructure:"meal_slots"`
	ParallelDays      bool          `mapstructure:"parallel_days"`
	Fitness           FitnessConfig `mapstructure:"fitness"`
}

// FitnessConfig selects how day plans are scored
type FitnessConfig struct {
	Strategy string               `mapstructure:"strategy"`
	Weights  genetic.MacroWeights `mapstructure:"weights"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics bool   `mapstructure:"enable_metrics"`
	MetricsPort   int    `mapstructure:"metrics_port"`
	Namespace     string `mapstructure:"namespace"`
	EnableTracing bool   `mapstructure:"enable_tracing"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mealplan")
	}

	// Enable environment variable override
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "mealplan")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "mealplan.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "mealplan")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query_threshold", "200ms")
	v.SetDefault("database.read_replicas", []string{})
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed_demo_data", false)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.enable_cluster", false)
	v.SetDefault("redis.cluster_nodes", []string{})
	v.SetDefault("redis.plan_channel", "mealplan:plans:generated")
	v.SetDefault("redis.catalogue_ttl", "10m")

	// Planner defaults
	engine := genetic.DefaultConfig()
	weights := genetic.DefaultMacroWeights()
	v.SetDefault("planner.population_size", engine.PopulationSize)
	v.SetDefault("planner.elite_count", engine.EliteCount)
	v.SetDefault("planner.tournament_size", engine.TournamentSize)
	v.SetDefault("planner.crossover_rate", engine.CrossoverRate)
	v.SetDefault("planner.mutation_rate", engine.MutationRate)
	v.SetDefault("planner.max_generations", engine.MaxGenerations)
	v.SetDefault("planner.stagnation_limit", engine.StagnationLimit)
	v.SetDefault("planner.tolerance", engine.Tolerance)
	v.SetDefault("planner.max_duration", engine.MaxDuration.String())
	v.SetDefault("planner.evaluation_workers", engine.EvaluationWorkers)
	v.SetDefault("planner.meal_slots", []string{"BREAKFAST", "LUNCH", "DINNER"})
	v.SetDefault("planner.parallel_days", false)
	v.SetDefault("planner.fitness.strategy", genetic.StrategyCalories)
	v.SetDefault("planner.fitness.weights.calories", weights.Calories)
	v.SetDefault("planner.fitness.weights.carbs", weights.Carbs)
	v.SetDefault("planner.fitness.weights.protein", weights.Protein)
	v.SetDefault("planner.fitness.weights.fat", weights.Fat)

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_port", 9090)
	v.SetDefault("monitoring.namespace", "mealplan")
	v.SetDefault("monitoring.enable_tracing", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate required fields
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for postgres")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Redis.Enabled && c.Redis.CatalogueTTL < 0 {
		return fmt.Errorf("redis.catalogue_ttl must not be negative")
	}

	// Planner errors are fatal before any plan is attempted
	if err := c.Planner.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if _, err := c.Planner.Slots(); err != nil {
		return fmt.Errorf("planner.meal_slots: %w", err)
	}
	if _, err := c.Planner.FitnessFunction(); err != nil {
		return fmt.Errorf("planner.fitness: %w", err)
	}

	return nil
}

// EngineConfig converts the planner section into engine parameters
func (p PlannerConfig) EngineConfig() genetic.Config {
	return genetic.Config{
		PopulationSize:    p.PopulationSize,
		EliteCount:        p.EliteCount,
		TournamentSize:    p.TournamentSize,
		CrossoverRate:     p.CrossoverRate,
		MutationRate:      p.MutationRate,
		MaxGenerations:    p.MaxGenerations,
		StagnationLimit:   p.StagnationLimit,
		Tolerance:         p.Tolerance,
		MaxDuration:       p.MaxDuration,
		EvaluationWorkers: p.EvaluationWorkers,
	}
}

// Slots builds the per-day meal slots in configured order
func (p PlannerConfig) Slots() ([]meal.MealSlot, error) {
	return meal.ParseSlots(p.MealSlots)
}

// FitnessFunction builds the configured scoring strategy
func (p PlannerConfig) FitnessFunction() (genetic.FitnessFunction, error) {
	return genetic.NewFitness(p.Fitness.Strategy, p.Fitness.Weights)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the postgres connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// ReplicaDSN returns the connection string of a read replica host
func (c *Config) ReplicaDSN(host string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
