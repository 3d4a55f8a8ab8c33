package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	redis "github.com/redis/go-redis/v9"
)

// DefaultRedisChannel is the pub/sub channel shared by all API instances.
const DefaultRedisChannel = "cash_registers"

// RedisBroker relays events between API instances through Redis pub/sub.
// Published events come back through Run and land in the local Hub, so every
// instance's subscribers see every event exactly once.
type RedisBroker struct {
	client  *redis.Client
	hub     *Hub
	channel string
	logger  *slog.Logger
}

// NewRedisClient creates a client for addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisBroker wires client to hub on channel.
func NewRedisBroker(client *redis.Client, hub *Hub, channel string, logger *slog.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBroker{client: client, hub: hub, channel: channel, logger: logger}
}

func (b *RedisBroker) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

// Publish sends event to the shared channel.
func (b *RedisBroker) Publish(ctx context.Context, event domain.CashRegisterEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to redis: %w", err)
	}
	return nil
}

// Run forwards messages from the shared channel into the local Hub until ctx is done.
func (b *RedisBroker) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var event domain.CashRegisterEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("Dropping malformed cash register event", slog.String("error", err.Error()))
				continue
			}
			_ = b.hub.Publish(ctx, event)
		}
	}
}
