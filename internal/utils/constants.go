package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// PublishTimeout is the timeout for publishing a single event to the bus
	PublishTimeout = 5 * time.Second

	// BusDialTimeout is the timeout for establishing a bus connection
	BusDialTimeout = 5 * time.Second
)

// =============================================================================
// Simulation Constants
// =============================================================================

const (
	// DefaultTickInterval is the default telemetry simulation tick rate
	DefaultTickInterval = 2 * time.Second

	// MinTickInterval is the fastest supported tick rate
	MinTickInterval = 50 * time.Millisecond
)

// =============================================================================
// Event Bus Subjects
// =============================================================================

const (
	// SubjectTelemetryFrames carries one frame per simulation tick
	SubjectTelemetryFrames = "rackview.telemetry.frames"

	// SubjectInteractionEffects carries hover/selection effect batches
	SubjectInteractionEffects = "rackview.interaction.effects"
)

// =============================================================================
// Bus Type Constants
// =============================================================================

// BusType represents the type of event bus backend
type BusType string

const (
	// BusTypeMemory represents the in-process channel bus (default)
	BusTypeMemory BusType = "memory"

	// BusTypeNATS represents NATS JetStream
	BusTypeNATS BusType = "nats"

	// BusTypeRedis represents Redis Streams
	BusTypeRedis BusType = "redis"

	// BusTypeKafka represents Apache Kafka
	BusTypeKafka BusType = "kafka"
)
