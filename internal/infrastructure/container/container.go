// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/alchemorsel/mealplan/internal/application/planner"
	"github.com/alchemorsel/mealplan/internal/application/shopping"
	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/genetic"
	"github.com/alchemorsel/mealplan/internal/infrastructure/cache"
	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"github.com/alchemorsel/mealplan/internal/infrastructure/events"
	"github.com/alchemorsel/mealplan/internal/infrastructure/monitoring"
	gormRepo "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/healthcheck"
	"github.com/alchemorsel/mealplan/pkg/logger"
	"github.com/redis/go-redis/v9"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConfigPath points at the configuration file; empty searches the default locations
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// Planner modules
	EngineModule,
	ServiceModule,

	// Event modules
	EventModule,

	// Health checks
	HealthModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *monitoring.PlannerMetrics {
		return monitoring.NewPlannerMetrics(cfg.Monitoring.Namespace, log)
	},
	func(m *monitoring.PlannerMetrics) planner.Metrics { return m },
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			SamplingRate:   1,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	NewDatabase,
)

// NewDatabase opens the configured store, brings its schema up to date and
// optionally seeds the demo catalogue
func NewDatabase(cfg *config.Config, log *zap.Logger, metrics *monitoring.PlannerMetrics) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgres.Open(cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := migratePostgres(db, cfg, log); err != nil {
				return nil, err
			}
		}
	default:
		db, err = sqlite.SetupDatabase(cfg.Database.Path, gormLevel(cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == sqlite.MemoryPath),
		)
	}

	if cfg.Database.SeedDemoData {
		if err := sqlite.SeedDatabase(context.Background(), db); err != nil {
			log.Warn("Failed to seed database", zap.Error(err))
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		metrics.RegisterDBStats(sqlDB, cfg.Database.Driver)
	}

	return db, nil
}

func migratePostgres(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	// The migrator is not closed: closing it would close the shared pool
	m, err := migrations.New(sqlDB, cfg.Database.Database, log)
	if err != nil {
		return err
	}
	return m.Up()
}

func gormLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "info":
		return gormLogger.Info
	case "warn":
		return gormLogger.Warn
	case "error":
		return gormLogger.Error
	default:
		return gormLogger.Silent
	}
}

// CacheModule provides caching. Redis is used when enabled, otherwise an
// in-process cache fronts the catalogue.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (redis.UniversalClient, error) {
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		return cache.NewRedisClient(cfg, log)
	},
	func(client redis.UniversalClient, log *zap.Logger) outbound.CacheRepository {
		if client == nil {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository()
		}
		return redisRepo.NewCacheRepository(client, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	// Recipe catalogue
	gormRepo.NewRecipeRepository,
	func(r *gormRepo.RecipeRepository) outbound.RecipeStore { return r },

	// Profiles
	fx.Annotate(
		gormRepo.NewProfileRepository,
		fx.As(new(outbound.ProfileRepository)),
	),
	func(r outbound.ProfileRepository) outbound.ProfileService { return r },

	// Plans
	fx.Annotate(
		gormRepo.NewWeekPlanRepository,
		fx.As(new(outbound.WeekPlanRepository)),
	),
	fx.Annotate(
		gormRepo.NewShoppingListRepository,
		fx.As(new(outbound.ShoppingListRepository)),
	),

	// Cache-fronted read side of the catalogue
	func(
		store outbound.RecipeStore,
		c outbound.CacheRepository,
		cfg *config.Config,
		metrics *monitoring.PlannerMetrics,
		log *zap.Logger,
	) *cache.CachedCatalogue {
		return cache.NewCachedCatalogue(store, c, cfg.Redis.CatalogueTTL, metrics, log)
	},
	func(c *cache.CachedCatalogue) outbound.RecipeCatalogue { return c },
	func(c *cache.CachedCatalogue) outbound.IngredientSource { return c },
)

// EngineModule provides the search engine and the per-day generator
var EngineModule = fx.Provide(
	func(
		cfg *config.Config,
		catalogue outbound.RecipeCatalogue,
		metrics *monitoring.PlannerMetrics,
		log *zap.Logger,
	) (*genetic.Engine, error) {
		slots, err := cfg.Planner.Slots()
		if err != nil {
			return nil, err
		}
		return genetic.NewEngine(cfg.Planner.EngineConfig(), slots, catalogue, log, genetic.WithObserver(metrics))
	},
	func(cfg *config.Config) (genetic.FitnessFunction, error) {
		return cfg.Planner.FitnessFunction()
	},
	planner.NewDayGenerator,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		meal.NewLevelResolver,
		fx.As(new(outbound.DietCompatibilityResolver)),
	),
	func(cfg *config.Config) planner.Options {
		return planner.Options{ParallelDays: cfg.Planner.ParallelDays}
	},
	fx.Annotate(
		planner.NewService,
		fx.As(new(inbound.MealPlanService)),
	),
)

// EventModule provides event handling
var EventModule = fx.Provide(
	shopping.NewBuilder,
	NewEventDispatcher,
	func(d *events.Dispatcher) outbound.PlanNotifier { return d },
)

// NewEventDispatcher wires every plan-generated subscriber
func NewEventDispatcher(
	cfg *config.Config,
	builder *shopping.Builder,
	client redis.UniversalClient,
	log *zap.Logger,
) *events.Dispatcher {
	d := events.NewDispatcher(log)
	d.Register(builder)
	d.Register(events.NewLogNotifier(log))
	if client != nil {
		d.Register(events.NewRedisPublisher(client, cfg.Redis.PlanChannel, log))
	}
	return d
}

// HealthModule provides the store health checks
var HealthModule = fx.Provide(
	NewHealthCheck,
)

// NewHealthCheck registers a check per store the planner depends on
func NewHealthCheck(
	cfg *config.Config,
	db *gorm.DB,
	recipes *gormRepo.RecipeRepository,
	client redis.UniversalClient,
	log *zap.Logger,
) (*healthcheck.HealthCheck, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	health := healthcheck.New(cfg.App.Version, log)
	health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
	if client != nil {
		health.Register("redis", healthcheck.NewRedisChecker(client))
	}

	// Planning fails for every user while the catalogue is empty
	health.Register("catalogue", healthcheck.NewCustomChecker("catalogue",
		func(ctx context.Context) (healthcheck.Status, string, interface{}) {
			count, err := recipes.Count(ctx)
			if err != nil {
				return healthcheck.StatusUnhealthy, err.Error(), nil
			}
			if count == 0 {
				return healthcheck.StatusDegraded, "recipe catalogue is empty", nil
			}
			return healthcheck.StatusHealthy, "", map[string]interface{}{"recipes": count}
		}))

	return health, nil
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	client redis.UniversalClient,
	cacheRepo outbound.CacheRepository,
	metrics *monitoring.PlannerMetrics,
	tracing *monitoring.TracingProvider,
	health *healthcheck.HealthCheck,
) {
	var metricsServer *monitoring.MetricsServer
	if cfg.Monitoring.EnableMetrics {
		metricsServer = monitoring.NewMetricsServer(cfg.Monitoring.MetricsPort, metrics, health, log)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting meal planner",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.Bool("redis", client != nil),
			)

			if metricsServer != nil {
				if err := metricsServer.Start(ctx); err != nil {
					// Planning does not depend on the metrics endpoint
					log.Warn("Failed to start metrics server", zap.Error(err))
					metricsServer = nil
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down meal planner")

			if metricsServer != nil {
				if err := metricsServer.Stop(ctx); err != nil {
					log.Error("Failed to shutdown metrics server", zap.Error(err))
				}
			}

			if err := tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to flush traces", zap.Error(err))
			}

			if closer, ok := cacheRepo.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil {
					log.Error("Failed to close cache", zap.Error(err))
				}
			}

			if client != nil {
				if err := client.Close(); err != nil {
					log.Error("Failed to close Redis client", zap.Error(err))
				}
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
