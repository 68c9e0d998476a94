package plan

import (
	"time"

	"github.com/google/uuid"
)

// PlanGeneratedEventName is the topic consumers subscribe to
const PlanGeneratedEventName = "plan.generated"

// PlanGeneratedEvent is raised once a generated week plan is complete.
// Shopping-list construction and user notification consume it.
type PlanGeneratedEvent struct {
	PlanID      uuid.UUID
	OwnerID     uuid.UUID
	Plan        *WeekPlan
	GeneratedAt time.Time
}

func (e PlanGeneratedEvent) EventName() string {
	return PlanGeneratedEventName
}

func (e PlanGeneratedEvent) OccurredAt() time.Time {
	return e.GeneratedAt
}
