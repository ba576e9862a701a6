package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes board events as JSON to a Redis pub/sub channel
// so other board clients can refresh.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewRedisPublisher creates a RedisPublisher on an existing client.
func NewRedisPublisher(client redis.UniversalClient, channel string, logger *slog.Logger) *RedisPublisher {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "redis_publisher", "channel", channel),
	}
}

// NewRedisClient builds a client from a redis:// URL. A bare host:port is
// accepted as well.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		if strings.Contains(rawURL, "://") {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = &redis.Options{Addr: rawURL}
	}
	return redis.NewClient(opts), nil
}

// HandleEvent implements EventHandler.
func (p *RedisPublisher) HandleEvent(ctx context.Context, event *BoardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}

	p.logger.Debug("published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"receivers", receivers)
	return nil
}

// Subscribe delivers events published on channel to fn until ctx is done.
// Messages that are not valid events are logged and skipped.
func Subscribe(ctx context.Context, client redis.UniversalClient, channel string, logger *slog.Logger, fn func(*BoardEvent)) error {
	if logger == nil {
		logger = slog.Default()
	}
	sub := client.Subscribe(ctx, channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event BoardEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("dropping malformed board event",
					"channel", channel,
					"error", err)
				continue
			}
			fn(&event)
		}
	}
}
