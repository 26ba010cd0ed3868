package websocket

import (
	"context"
	"encoding/json"

	"decorlens/infrastructure/redis"
	"decorlens/pkg/logger"
)

const DefaultChannel = "decorlens:board-events"

// RedisBus relays board events over redis pub/sub so every API instance
// can reach its own websocket clients
type RedisBus struct {
	client  *redis.RedisClient
	channel string
}

func NewRedisBus(client *redis.RedisClient, channel string) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBus{client: client, channel: channel}
}

func (b *RedisBus) Publish(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, raw)
}

func (b *RedisBus) StartForwarder(ctx context.Context, onMsg func(Message)) error {
	sub, err := b.client.Subscribe(ctx, b.channel)
	if err != nil {
		return err
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					logger.Warn(logger.CategoryWebSocket, "bad_bus_payload", "Ignoring malformed bus message", map[string]interface{}{"error": err.Error()})
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}
