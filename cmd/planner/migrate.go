package main

import (
	"fmt"

	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/postgres"
	"github.com/alchemorsel/mealplan/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Manage the PostgreSQL schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations apply to the postgres driver, configured driver is %q", cfg.Database.Driver)
	}

	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.Open(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	m, err := migrations.New(sqlDB, cfg.Database.Database, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() { _ = m.Close() }()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	default:
		status, err := m.Status()
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), status)
	}
}
