package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a week plan for a user",
	RunE:  runGenerate,
}

var (
	generateUser  string
	generateSeed  string
	generateStart string
)

func init() {
	generateCmd.Flags().StringVarP(&generateUser, "user", "u", "", "ID of the user to plan for (required)")
	generateCmd.Flags().StringVar(&generateSeed, "seed", "", "Seed for a reproducible plan (default random)")
	generateCmd.Flags().StringVar(&generateStart, "start", "", "First day of the week as YYYY-MM-DD (default today)")

	if err := generateCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	command, err := parseGenerateFlags()
	if err != nil {
		return err
	}

	var svc inbound.MealPlanService
	return withApp(cmd.Context(), func(ctx context.Context) error {
		dto, err := svc.GenerateWeekPlan(ctx, command)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), dto)
	}, &svc)
}

func parseGenerateFlags() (inbound.GenerateWeekPlanCommand, error) {
	userID, err := uuid.Parse(generateUser)
	if err != nil {
		return inbound.GenerateWeekPlanCommand{}, fmt.Errorf("invalid user id: %w", err)
	}

	command := inbound.GenerateWeekPlanCommand{UserID: userID}

	if generateSeed != "" {
		seed, err := strconv.ParseUint(generateSeed, 10, 64)
		if err != nil {
			return inbound.GenerateWeekPlanCommand{}, fmt.Errorf("invalid seed: %w", err)
		}
		command.Seed = &seed
	}

	if generateStart != "" {
		start, err := time.Parse(time.DateOnly, generateStart)
		if err != nil {
			return inbound.GenerateWeekPlanCommand{}, fmt.Errorf("invalid start date: %w", err)
		}
		command.StartDate = start
	}

	return command, nil
}
