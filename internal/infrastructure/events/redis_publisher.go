package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultPlanChannel is the pub/sub channel generated plans are announced on
const DefaultPlanChannel = "mealplan:plans:generated"

// RedisPublisher announces generated plans on a Redis channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a publisher for channel
func NewRedisPublisher(client redis.UniversalClient, channel string, logger *zap.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultPlanChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.Named("redis-publisher"),
	}
}

func (p *RedisPublisher) Name() string { return "redis-publisher" }

// HandlePlanGenerated publishes the plan summary as JSON
func (p *RedisPublisher) HandlePlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	payload, err := json.Marshal(NewPlanMessage(event))
	if err != nil {
		return fmt.Errorf("marshal plan message: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}

	p.logger.Debug("Plan published",
		zap.String("channel", p.channel),
		zap.String("plan_id", event.PlanID.String()),
		zap.Int64("receivers", receivers),
	)
	return nil
}
