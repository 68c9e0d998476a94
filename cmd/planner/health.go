package main

import (
	"context"
	"fmt"

	"github.com/alchemorsel/mealplan/pkg/healthcheck"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database, cache and catalogue",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	var health *healthcheck.HealthCheck
	return withApp(cmd.Context(), func(ctx context.Context) error {
		response := health.Check(ctx)
		if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
			return err
		}
		if response.Status == healthcheck.StatusUnhealthy {
			return fmt.Errorf("planner is %s", response.Status)
		}
		return nil
	}, &health)
}
