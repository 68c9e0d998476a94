// Package main provides the command line entry point of the meal planner
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/infrastructure/container"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const stopTimeout = 30 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:          "planner",
	Short:        "Weekly meal plan generator",
	Long:         "Builds seven-day meal plans that match a user's nutrition target and diet using an evolutionary search over the recipe catalogue.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default searches ./config.yaml, ./config, /etc/mealplan)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// withApp starts the dependency graph, hands the populated targets to run
// and stops the graph afterwards
func withApp(ctx context.Context, run func(ctx context.Context) error, targets ...interface{}) error {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(container.ConfigPath(configPath)),
		container.Module,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	runErr := run(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return runErr
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError prints planning failures as a structured error document and
// anything else as a plain message
func reportError(w io.Writer, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) && !meal.IsNoCandidateRecipes(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	_ = writeJSON(w, errors.ToErrorResponse(errors.Wrap(err, "command failed"), ""))
}
