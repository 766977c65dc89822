package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.Notifier = (*RedisBridge)(nil)

// envelope is the message published to Redis: the recipient's channel id and
// the pre-marshaled event, so subscribers forward bytes without re-encoding.
type envelope struct {
	Recipient string          `json:"recipient"`
	Event     json.RawMessage `json:"event"`
}

// RedisBridge fans events out through Redis Pub/Sub so every instance
// behind a load balancer delivers to its own local sessions. The delivery
// contract stays at-most-once: Redis Pub/Sub itself drops messages published
// while a subscriber is away.
type RedisBridge struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
}

// NewRedisBridge connects to Redis and verifies the connection with a ping.
func NewRedisBridge(ctx context.Context, addr, channel string, hub *Hub) (*RedisBridge, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("notify: ping redis at %s: %w", addr, err)
	}
	return &RedisBridge{hub: hub, rdb: rdb, channel: channel}, nil
}

// Run subscribes to the bridge channel and forwards each message to the
// local hub. It blocks until ctx is cancelled; run it in its own goroutine.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	for {
		select {
		case msg, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				slog.WarnContext(ctx, "discarding malformed fan-out message", "error", err)
				continue
			}
			b.hub.deliverRaw(ctx, env.Recipient, env.Event)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the Redis connection.
func (b *RedisBridge) Close() error {
	return b.rdb.Close()
}

func (b *RedisBridge) NotifyNewOrder(ctx context.Context, supplierID string, order *entity.OrderView, message string) error {
	return b.publish(ctx, supplierID, Event{Kind: KindNewOrder, Data: NewOrderData{Order: order, Message: message}})
}

func (b *RedisBridge) NotifyStatusChange(ctx context.Context, vendorID string, orderID string, status entity.OrderStatus, message string) error {
	return b.publish(ctx, vendorID, Event{Kind: KindStatusUpdate, Data: StatusUpdateData{OrderID: orderID, Status: status, Message: message}})
}

func (b *RedisBridge) publish(ctx context.Context, recipient string, event Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal %s event: %w", event.Kind, err)
	}
	payload, err := json.Marshal(envelope{Recipient: recipient, Event: raw})
	if err != nil {
		return fmt.Errorf("notify: marshal envelope: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("notify: publish to %s: %w", b.channel, err)
	}
	return nil
}
