package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig holds Apache Kafka settings for the bus.
type KafkaConfig struct {
	Brokers       []string      // Broker addresses
	GroupID       string        // Consumer group ID (default: "rackview-group")
	BatchTimeout  time.Duration // Producer batch timeout (default: 10ms)
	MaxRetries    int           // Max produce attempts (default: 3)
	RetryBackoff  time.Duration // Backoff between commit retries (default: 100ms)
	CommitRetries int           // Consumer commit retries (default: 3)
}

// KafkaBus implements Bus using Kafka topics. One writer/reader pair is
// created per subject on demand.
type KafkaBus struct {
	config        KafkaConfig
	writers       map[string]*kafka.Writer
	readers       map[string]*kafka.Reader
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newKafkaBus creates a Kafka bus, applying config defaults.
func newKafkaBus(cfg KafkaConfig) (*KafkaBus, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	if cfg.GroupID == "" {
		cfg.GroupID = "rackview-group"
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.CommitRetries == 0 {
		cfg.CommitRetries = 3
	}

	return &KafkaBus{
		config:        cfg,
		writers:       make(map[string]*kafka.Writer),
		readers:       make(map[string]*kafka.Reader),
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

func (b *KafkaBus) getOrCreateWriter(topic string) *kafka.Writer {
	b.mu.Lock()
	defer b.mu.Unlock()

	if writer, exists := b.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(b.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: b.config.BatchTimeout,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  b.config.MaxRetries,
	}
	b.writers[topic] = writer
	return writer
}

// Publish writes a message to the subject's topic.
func (b *KafkaBus) Publish(ctx context.Context, subject string, data []byte) error {
	writer := b.getOrCreateWriter(subject)

	err := writer.WriteMessages(ctx, kafka.Message{
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", subject, err)
	}
	return nil
}

// Subscribe consumes the subject's topic with a consumer group reader.
func (b *KafkaBus) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	if _, exists := b.subscriptions[subject]; exists {
		b.mu.Unlock()
		return fmt.Errorf("already subscribed to topic: %s", subject)
	}
	b.mu.Unlock()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        b.config.Brokers,
		GroupID:        b.config.GroupID,
		Topic:          subject,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.readers[subject] = reader
	b.subscriptions[subject] = cancel
	b.mu.Unlock()

	go b.consume(ctx, reader, handler)
	return nil
}

func (b *KafkaBus) consume(ctx context.Context, reader *kafka.Reader, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		if err := handler(msg.Value); err != nil {
			// No commit: message will be redelivered
			continue
		}

		for i := 0; i < b.config.CommitRetries; i++ {
			if err := reader.CommitMessages(ctx, msg); err == nil {
				break
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(b.config.RetryBackoff)
		}
	}
}

// Unsubscribe stops the subject's consumer and closes its reader.
func (b *KafkaBus) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cancel, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to topic: %s", subject)
	}
	cancel()

	if reader, ok := b.readers[subject]; ok {
		_ = reader.Close()
		delete(b.readers, subject)
	}
	delete(b.subscriptions, subject)
	return nil
}

// Close closes all readers and writers.
func (b *KafkaBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var lastErr error

	for subject, cancel := range b.subscriptions {
		cancel()
		if reader, ok := b.readers[subject]; ok {
			if err := reader.Close(); err != nil {
				lastErr = err
			}
		}
		delete(b.subscriptions, subject)
		delete(b.readers, subject)
	}
	for topic, writer := range b.writers {
		if err := writer.Close(); err != nil {
			lastErr = err
		}
		delete(b.writers, topic)
	}
	return lastErr
}
