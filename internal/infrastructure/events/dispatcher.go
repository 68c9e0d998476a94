// Package events delivers plan events to in-process handlers and external
// subscribers
package events

import (
	"context"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"go.uber.org/zap"
)

// PlanGeneratedHandler consumes completed plans
type PlanGeneratedHandler interface {
	Name() string
	HandlePlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error
}

// Dispatcher fans a plan event out to every registered handler. A failing
// handler is logged and does not stop the others.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []PlanGeneratedHandler
	log      *zap.Logger
}

var _ outbound.PlanNotifier = (*Dispatcher)(nil)

// NewDispatcher creates a new event dispatcher
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{log: log.Named("events")}
}

// Register registers an event handler
func (d *Dispatcher) Register(handler PlanGeneratedHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = append(d.handlers, handler)
	d.log.Debug("Registered event handler",
		zap.String("event", plan.PlanGeneratedEventName),
		zap.String("handler", handler.Name()),
	)
}

// NotifyPlanGenerated dispatches the event to registered handlers in
// registration order
func (d *Dispatcher) NotifyPlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	d.mu.RLock()
	handlers := make([]PlanGeneratedHandler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.log.Debug("No handlers registered for event", zap.String("event", event.EventName()))
		return nil
	}

	for _, handler := range handlers {
		if err := handler.HandlePlanGenerated(ctx, event); err != nil {
			d.log.Error("Failed to handle event",
				zap.String("event", event.EventName()),
				zap.String("handler", handler.Name()),
				zap.String("plan_id", event.PlanID.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}
