// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/postgres"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLiteDatabase opens a migrated in-memory database closed at test end
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(sqlite.MemoryPath, logger.Silent)
	require.NoError(t, err, "Failed to open in-memory database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// TestDatabase provides a containerised PostgreSQL instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	GormDB    *gorm.DB
	Config    *config.Config
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:15-alpine",
		Database: "mealplan_test",
		Username: "test_user",
		Password: "test_password",
	}
}

// SetupPostgresDatabase starts a PostgreSQL container and connects to it
// through the production connection code. Skipped in -short mode.
func SetupPostgresDatabase(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.Username,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start postgres container")

	testDB := &TestDatabase{Container: container, t: t}
	t.Cleanup(testDB.Cleanup)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	testDB.Config = &config.Config{
		Database: config.DatabaseConfig{
			Driver:          "postgres",
			Host:            host,
			Port:            port.Int(),
			Database:        cfg.Database,
			Username:        cfg.Username,
			Password:        cfg.Password,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "silent",
		},
	}

	testDB.GormDB, err = postgres.Open(testDB.Config, zap.NewNop())
	require.NoError(t, err, "Failed to connect to test database")

	return testDB
}

// RunMigrations applies the embedded schema
func (td *TestDatabase) RunMigrations() error {
	sqlDB, err := td.GormDB.DB()
	if err != nil {
		return err
	}
	m, err := migrations.New(sqlDB, td.Config.Database.Database, zap.NewNop())
	if err != nil {
		return err
	}
	return m.Up()
}

// TruncateAllTables removes all rows while preserving the schema
func (td *TestDatabase) TruncateAllTables() error {
	return td.GormDB.Exec(
		"TRUNCATE TABLE shopping_lists, day_meals, day_plans, week_plans, nutrition_profiles, recipes CASCADE",
	).Error
}

// Cleanup closes the connection and stops the container
func (td *TestDatabase) Cleanup() {
	if td.GormDB != nil {
		if sqlDB, err := td.GormDB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if td.Container != nil {
		if err := td.Container.Terminate(context.Background()); err != nil {
			td.t.Logf("Failed to terminate postgres container: %v", err)
		}
	}
}
