package redisclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const settingsChannel = "agenda:settings:changed"

// ChangeEvent is the cross-instance sync payload: which named record changed
// and its full serialized value. Receivers replace their in-memory copy
// wholesale; last writer wins, there is no merge.
type ChangeEvent struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// Notifier broadcasts and receives settings change events between instances.
type Notifier interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Subscribe(ctx context.Context, fn func(ev ChangeEvent))
}

type redisNotifier struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisNotifier creates a pub/sub backed notifier on a fixed channel.
func NewRedisNotifier(client *redis.Client, log zerolog.Logger) Notifier {
	return &redisNotifier{client: client, log: log}
}

func (n *redisNotifier) Publish(ctx context.Context, ev ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := n.client.Publish(ctx, settingsChannel, data).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Subscribe consumes change events until ctx is cancelled. It runs its own
// goroutine; malformed messages are logged and skipped.
func (n *redisNotifier) Subscribe(ctx context.Context, fn func(ev ChangeEvent)) {
	sub := n.client.Subscribe(ctx, settingsChannel)

	go func() {
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					n.log.Warn().Err(err).Msg("malformed settings change event, skipping")
					continue
				}
				fn(ev)
			}
		}
	}()
}

// NoopNotifier drops published events and never delivers any. Used when no
// Redis is configured and the process is the only instance.
type NoopNotifier struct{}

func (NoopNotifier) Publish(context.Context, ChangeEvent) error      { return nil }
func (NoopNotifier) Subscribe(context.Context, func(ev ChangeEvent)) {}
