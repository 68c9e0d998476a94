package main

import (
	"context"
	"fmt"

	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Print a stored week plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's week plans, latest first",
	RunE:  runList,
}

var (
	listUser     string
	listPage     int
	listPageSize int
)

func init() {
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "ID of the plan owner (required)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "Plans per page")

	if err := listCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(showCmd, listCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	planID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid plan id: %w", err)
	}

	var svc inbound.MealPlanService
	return withApp(cmd.Context(), func(ctx context.Context) error {
		dto, err := svc.GetWeekPlan(ctx, planID)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), dto)
	}, &svc)
}

func runList(cmd *cobra.Command, _ []string) error {
	ownerID, err := uuid.Parse(listUser)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	var svc inbound.MealPlanService
	return withApp(cmd.Context(), func(ctx context.Context) error {
		list, err := svc.ListWeekPlans(ctx, ownerID, inbound.PaginationParams{Page: listPage, PageSize: listPageSize})
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), list)
	}, &svc)
}
