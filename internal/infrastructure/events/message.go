package events

import (
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/google/uuid"
)

// PlanMessage is the wire form of a generated plan
type PlanMessage struct {
	Event       string        `json:"event"`
	PlanID      uuid.UUID     `json:"plan_id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	StartDate   string        `json:"start_date"`
	Seed        uint64        `json:"seed"`
	Totals      MessageTotals `json:"totals"`
	Days        []MessageDay  `json:"days"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// MessageTotals carries nutrition totals
type MessageTotals struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// MessageDay summarises one day of the plan
type MessageDay struct {
	Date      string        `json:"date"`
	RecipeIDs []string      `json:"recipe_ids"`
	Totals    MessageTotals `json:"totals"`
}

// NewPlanMessage flattens an event for publishing
func NewPlanMessage(event plan.PlanGeneratedEvent) PlanMessage {
	msg := PlanMessage{
		Event:       event.EventName(),
		PlanID:      event.PlanID,
		OwnerID:     event.OwnerID,
		GeneratedAt: event.GeneratedAt,
	}
	if event.Plan == nil {
		return msg
	}

	wp := event.Plan
	msg.StartDate = wp.StartDate().Format(time.DateOnly)
	msg.Seed = wp.Seed()
	msg.Totals = MessageTotals(wp.Totals())
	for _, day := range wp.Days() {
		ids := make([]string, 0, len(day.Meals))
		for _, id := range day.RecipeIDs() {
			ids = append(ids, string(id))
		}
		msg.Days = append(msg.Days, MessageDay{
			Date:      day.Date.Format(time.DateOnly),
			RecipeIDs: ids,
			Totals:    MessageTotals(day.Totals),
		})
	}
	return msg
}
