package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/walletd/internal/domain"
)

// DefaultEventChannel is the pub/sub channel outbox events are published on.
const DefaultEventChannel = "walletd.events"

// eventEnvelope is the wire format for published events.
type eventEnvelope struct {
	ID            string         `json:"id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

// EventPublisher publishes outbox events on a Redis pub/sub channel.
type EventPublisher struct {
	client  *redis.Client
	channel string
}

// NewEventPublisher creates an EventPublisher on DefaultEventChannel.
func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{
		client:  client,
		channel: DefaultEventChannel,
	}
}

// Publish sends the event as JSON. Subscribers are not required, a publish
// with no listeners still succeeds.
func (p *EventPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := json.Marshal(eventEnvelope{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, body).Err()
}
