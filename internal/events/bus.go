// Package events provides the event bus carrying telemetry frames and
// interaction effects to external consumers. The backend is pluggable:
// an in-process channel bus by default, or NATS JetStream, Redis Streams,
// or Kafka when the viewer feeds a larger pipeline.
package events

import "context"

// Publisher publishes messages to a subject/topic.
type Publisher interface {
	// Publish publishes a message to a subject
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection
	Close() error
}

// Subscriber subscribes to messages from a subject/topic.
type Subscriber interface {
	// Subscribe subscribes to a subject with a handler
	Subscribe(subject string, handler MessageHandler) error

	// Unsubscribe unsubscribes from a subject
	Unsubscribe(subject string) error

	// Close closes the connection
	Close() error
}

// MessageHandler handles incoming messages.
type MessageHandler func(data []byte) error

// Bus combines Publisher and Subscriber.
type Bus interface {
	Publisher
	Subscriber
}
