package events

import (
	"context"
	"errors"
	"testing"

	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubHandler struct {
	name  string
	err   error
	calls *[]string
}

func (h stubHandler) Name() string { return h.name }

func (h stubHandler) HandlePlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	*h.calls = append(*h.calls, h.name)
	return h.err
}

func generatedEvent(t *testing.T) plan.PlanGeneratedEvent {
	t.Helper()
	wp, err := testutils.GeneratedWeekPlan(uuid.New(), testutils.WeekStart, 2000, 77)
	require.NoError(t, err)

	events := wp.Events()
	require.Len(t, events, 1)
	return events[0].(plan.PlanGeneratedEvent)
}

func TestDispatcher_DeliversInOrderAndIsolatesFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewDispatcher(zap.New(core))

	var calls []string
	d.Register(stubHandler{name: "first", calls: &calls})
	d.Register(stubHandler{name: "broken", err: errors.New("boom"), calls: &calls})
	d.Register(stubHandler{name: "last", calls: &calls})

	err := d.NotifyPlanGenerated(context.Background(), generatedEvent(t))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "broken", "last"}, calls)

	failures := logs.FilterMessage("Failed to handle event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].ContextMap()["handler"])
}

func TestDispatcher_NoHandlers(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	assert.NoError(t, d.NotifyPlanGenerated(context.Background(), plan.PlanGeneratedEvent{PlanID: uuid.New()}))
}

func TestNewPlanMessage(t *testing.T) {
	event := generatedEvent(t)

	msg := NewPlanMessage(event)

	assert.Equal(t, plan.PlanGeneratedEventName, msg.Event)
	assert.Equal(t, event.PlanID, msg.PlanID)
	assert.Equal(t, event.OwnerID, msg.OwnerID)
	assert.Equal(t, "2024-03-04", msg.StartDate)
	assert.Equal(t, uint64(77), msg.Seed)
	assert.Equal(t, 14000.0, msg.Totals.Calories)
	require.Len(t, msg.Days, plan.DaysPerWeek)
	assert.Equal(t, "2024-03-10", msg.Days[6].Date)
	assert.Equal(t, []string{"dinner-6"}, msg.Days[6].RecipeIDs)
	assert.Equal(t, 2000.0, msg.Days[6].Totals.Calories)

	bare := NewPlanMessage(plan.PlanGeneratedEvent{PlanID: event.PlanID})
	assert.Empty(t, bare.Days)
	assert.Empty(t, bare.StartDate)
}

func TestPlanReadyMessage(t *testing.T) {
	subject, body := PlanReadyMessage(generatedEvent(t))

	assert.Equal(t, "Your weekly meal plan is ready", subject)
	assert.Equal(t, "Your plan for the week of March 4, 2024 covers 7 days and 7 meals, averaging 2000 kcal per day.", body)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	event := generatedEvent(t)

	require.NoError(t, NewLogNotifier(zap.New(core)).HandlePlanGenerated(context.Background(), event))

	entries := logs.FilterMessage("Plan ready notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, event.PlanID.String(), entries[0].ContextMap()["plan_id"])
}

func TestNewRedisPublisher_DefaultChannel(t *testing.T) {
	p := NewRedisPublisher(nil, "", zap.NewNop())
	assert.Equal(t, DefaultPlanChannel, p.channel)
	assert.Equal(t, "redis-publisher", p.Name())
}
