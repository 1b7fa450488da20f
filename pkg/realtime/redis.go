package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix namespaces dashgrid pub/sub channels in a shared
// Redis instance.
const DefaultChannelPrefix = "dashgrid:layout:"

// RedisConfig holds connection settings for the Redis publisher.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string // defaults to DefaultChannelPrefix
}

// RedisPublisher broadcasts layout changes over Redis pub/sub so every
// server instance sees mutations made on any other instance.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher connects to Redis and verifies the connection with a ping.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (*RedisPublisher, error) {
	if cfg.ChannelPrefix == "" {
		cfg.ChannelPrefix = DefaultChannelPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisPublisher{client: client, prefix: cfg.ChannelPrefix}, nil
}

// Publish broadcasts a layout change on the dashboard's channel.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	if event.PublishedAt.IsZero() {
		event.PublishedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal layout event: %w", err)
	}
	if err := p.client.Publish(ctx, p.prefix+event.DashboardID, payload).Err(); err != nil {
		return fmt.Errorf("publish layout event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of layout events for one dashboard. The
// returned cancel function must be called to release the subscription.
func (p *RedisPublisher) Subscribe(ctx context.Context, dashboardID string) (<-chan Event, func() error, error) {
	sub := p.client.Subscribe(ctx, p.prefix+dashboardID)

	// Wait for the subscription to be confirmed before handing it out.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", dashboardID, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, sub.Close, nil
}

// Close releases the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

var _ Publisher = (*RedisPublisher)(nil)
