package events

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bytebitgo/rackview/internal/utils"
)

// RedisConfig holds Redis Streams settings for the bus.
type RedisConfig struct {
	URL      string // Redis URL (e.g., redis://localhost:6379)
	Password string // Optional password
	DB       int    // Database number (default: 0)
	Stream   string // Stream prefix (default: "rackview")
	Group    string // Consumer group name (default: "rackview-group")
	Consumer string // Consumer name (default: hostname)
}

// RedisBus implements Bus using Redis Streams with a consumer group.
type RedisBus struct {
	client        *redis.Client
	config        RedisConfig
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newRedisBus connects to Redis and applies config defaults.
func newRedisBus(cfg RedisConfig) (*RedisBus, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to plain host:port addressing
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), utils.BusDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Stream == "" {
		cfg.Stream = "rackview"
	}
	if cfg.Group == "" {
		cfg.Group = "rackview-group"
	}
	if cfg.Consumer == "" {
		hostname, _ := os.Hostname()
		if hostname == "" {
			hostname = "consumer-1"
		}
		cfg.Consumer = hostname
	}

	return &RedisBus{
		client:        client,
		config:        cfg,
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

func (b *RedisBus) streamName(subject string) string {
	return fmt.Sprintf("%s:%s", b.config.Stream, subject)
}

// Publish appends a message to the subject's stream.
func (b *RedisBus) Publish(ctx context.Context, subject string, data []byte) error {
	stream := b.streamName(subject)

	_, err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		ID:     "*",
		Values: map[string]interface{}{"data": data},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to Redis stream %s: %w", stream, err)
	}
	return nil
}

// Subscribe reads the subject's stream through a consumer group in a
// background goroutine.
func (b *RedisBus) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	stream := b.streamName(subject)
	ctx, cancel := context.WithCancel(context.Background())

	err := b.client.XGroupCreateMkStream(ctx, stream, b.config.Group, "$").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		cancel()
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	go b.readStream(ctx, stream, handler)

	b.subscriptions[subject] = cancel
	return nil
}

func (b *RedisBus) readStream(ctx context.Context, stream string, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.config.Group,
			Consumer: b.config.Consumer,
			Streams:  []string{stream, ">"},
			Count:    100,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				data, ok := msg.Values["data"].(string)
				if !ok {
					b.client.XAck(ctx, stream, b.config.Group, msg.ID)
					continue
				}
				if err := handler([]byte(data)); err != nil {
					// No ACK: message will be redelivered
					continue
				}
				b.client.XAck(ctx, stream, b.config.Group, msg.ID)
			}
		}
	}
}

// Unsubscribe stops the subject's reader goroutine.
func (b *RedisBus) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cancel, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}
	cancel()
	delete(b.subscriptions, subject)
	return nil
}

// Close cancels all subscriptions and closes the client.
func (b *RedisBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subject, cancel := range b.subscriptions {
		cancel()
		delete(b.subscriptions, subject)
	}
	return b.client.Close()
}
