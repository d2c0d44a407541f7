package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

const eventChannelPrefix = "workspace:"

// EventMessage is the wire form published on a workspace channel.
type EventMessage struct {
	Event   string              `json:"event"`
	Payload domain.EventPayload `json:"payload"`
}

// EventBus publishes and subscribes to workspace-scoped real-time events
// over Redis pub/sub. Subscribers on any node receive events published on
// any other, which keeps notifications working behind a load balancer.
type EventBus struct {
	client *Client
}

// NewEventBus creates a new event bus
func NewEventBus(client *Client) *EventBus {
	return &EventBus{client: client}
}

// ChannelFor returns the pub/sub channel name for a workspace.
func ChannelFor(workspaceID uuid.UUID) string {
	return eventChannelPrefix + workspaceID.String()
}

// Publish emits an event on the workspace channel
func (b *EventBus) Publish(ctx context.Context, workspaceID uuid.UUID, event string, payload domain.EventPayload) error {
	msg := EventMessage{Event: event, Payload: payload}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.rdb.Publish(ctx, ChannelFor(workspaceID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a subscription to a workspace channel. The caller owns
// the returned PubSub and must close it.
func (b *EventBus) Subscribe(ctx context.Context, workspaceID uuid.UUID) *redis.PubSub {
	return b.client.rdb.Subscribe(ctx, ChannelFor(workspaceID))
}
