// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"context"
	"fmt"

	gormModels "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = MemoryPath
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every pooled connection would otherwise see its own empty in-memory database
	if dbPath == MemoryPath {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Run auto-migration
	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with the demo catalogue and profile
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	recipes := gormModels.NewRecipeRepository(db)

	// Check if data already exists
	count, err := recipes.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		return nil // Already seeded
	}

	if err := recipes.SaveAll(ctx, DemoRecipes()); err != nil {
		return fmt.Errorf("failed to create demo recipes: %w", err)
	}

	profiles := gormModels.NewProfileRepository(db)
	if err := profiles.SaveNutritionTarget(ctx, DemoUserID, DemoTarget()); err != nil {
		return fmt.Errorf("failed to create demo profile: %w", err)
	}

	return nil
}
