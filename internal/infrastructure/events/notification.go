package events

import (
	"context"
	"fmt"
	"math"

	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"go.uber.org/zap"
)

// LogNotifier writes the "plan ready" notification to the log in place of
// a mail transport
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs plan-ready messages
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

func (n *LogNotifier) Name() string { return "plan-ready-notification" }

func (n *LogNotifier) HandlePlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	subject, body := PlanReadyMessage(event)
	n.logger.Info("Plan ready notification",
		zap.String("owner_id", event.OwnerID.String()),
		zap.String("plan_id", event.PlanID.String()),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// PlanReadyMessage renders the subject and body of the notification
func PlanReadyMessage(event plan.PlanGeneratedEvent) (string, string) {
	subject := "Your weekly meal plan is ready"
	if event.Plan == nil {
		return subject, fmt.Sprintf("Plan %s has been generated.", event.PlanID)
	}

	wp := event.Plan
	days := len(wp.Days())
	avg := 0.0
	if days > 0 {
		avg = wp.Totals().Calories / float64(days)
	}
	body := fmt.Sprintf("Your plan for the week of %s covers %d days and %d meals, averaging %d kcal per day.",
		wp.StartDate().Format("January 2, 2006"),
		days,
		len(wp.RecipeIDs()),
		int(math.Round(avg)),
	)
	return subject, body
}
