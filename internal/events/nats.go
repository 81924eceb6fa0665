package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBus implements Bus using NATS JetStream.
type NATSBus struct {
	conn          *nats.Conn
	js            nats.JetStreamContext
	subscriptions map[string]*nats.Subscription
	mu            sync.RWMutex
}

// newNATSBus connects to NATS and enables JetStream.
func newNATSBus(url string) (*NATSBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSBus{
		conn:          conn,
		js:            js,
		subscriptions: make(map[string]*nats.Subscription),
	}, nil
}

// Publish publishes a message to a subject using JetStream.
func (b *NATSBus) Publish(ctx context.Context, subject string, data []byte) error {
	if _, err := b.js.PublishAsync(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

// Subscribe subscribes to a subject with a durable JetStream consumer.
// Telemetry frames are transient, so the stream uses memory storage and
// redelivery is capped; a viewer that falls behind simply resumes from the
// live edge after the retention window.
func (b *NATSBus) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	streamName := "rackview-" + sanitizeName(subject)
	if _, err := b.js.StreamInfo(streamName); err != nil {
		_, err = b.js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
			Storage:  nats.MemoryStorage,
			MaxAge:   time.Minute,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream for subject %s: %w", subject, err)
		}
	}

	sub, err := b.js.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("consumer-"+sanitizeName(subject)),
		nats.ManualAck(),
		nats.MaxAckPending(100),
		nats.AckWait(10*time.Second),
		nats.MaxDeliver(3),
		nats.DeliverNew(),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	b.subscriptions[subject] = sub
	return nil
}

// Unsubscribe unsubscribes from a subject.
func (b *NATSBus) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}
	if err := sub.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe from subject %s: %w", subject, err)
	}
	delete(b.subscriptions, subject)
	return nil
}

// Close closes all subscriptions and the connection.
func (b *NATSBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subject, sub := range b.subscriptions {
		_ = sub.Unsubscribe()
		delete(b.subscriptions, subject)
	}
	b.conn.Close()
	return nil
}

// sanitizeName replaces characters that are invalid in stream and consumer
// names (only A-Z, a-z, 0-9, dash and underscore are allowed).
func sanitizeName(subject string) string {
	result := make([]byte, 0, len(subject))
	for i := 0; i < len(subject); i++ {
		c := subject[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}
