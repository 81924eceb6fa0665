package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/utils"
)

// FrameServer is the per-server payload of a telemetry frame, including the
// normalized heat level consumed by the renderer's shader uniforms.
type FrameServer struct {
	ID          string  `json:"id"`
	Rack        int     `json:"rack"`
	Slot        int     `json:"slot"`
	Temperature float64 `json:"temperature"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	HeatLevel   float64 `json:"heat_level"`
	Status      Status  `json:"status"`
}

// FrameEvent is published on the bus after every tick.
type FrameEvent struct {
	Tick      uint64        `json:"tick"`
	Timestamp time.Time     `json:"timestamp"`
	Servers   []FrameServer `json:"servers"`
}

// Frame builds a FrameEvent from the store's current state.
func Frame(store *Store) FrameEvent {
	records := store.Records()
	servers := make([]FrameServer, 0, len(records))
	for i := range records {
		rec := &records[i]
		servers = append(servers, FrameServer{
			ID:          rec.ID,
			Rack:        rec.Rack,
			Slot:        rec.Slot,
			Temperature: rec.Temperature,
			CPUUsage:    rec.CPUUsage,
			MemoryUsage: rec.MemoryUsage,
			HeatLevel:   rec.HeatLevel(),
			Status:      rec.Status,
		})
	}
	return FrameEvent{
		Tick:      store.Ticks(),
		Timestamp: time.Now().UTC(),
		Servers:   servers,
	}
}

// Simulator drives the store at a fixed tick interval, decoupled from any
// render cadence, and publishes one FrameEvent per tick.
type Simulator struct {
	store     *Store
	publisher events.Publisher
	interval  time.Duration
	logger    *logging.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSimulator creates a simulator. The publisher may be a no-op memory bus
// when no external consumer exists.
func NewSimulator(store *Store, publisher events.Publisher, interval time.Duration, logger *logging.Logger) *Simulator {
	if interval < utils.MinTickInterval {
		interval = utils.MinTickInterval
	}
	return &Simulator{
		store:     store,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start launches the tick loop in a background goroutine.
func (s *Simulator) Start(ctx context.Context) {
	s.logger.Info("Simulator starting", "tick_interval", s.interval)
	go s.run(ctx)
}

// Stop halts the tick loop and waits for it to exit.
func (s *Simulator) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("Simulator stopped", "ticks", s.store.Ticks())
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.step(ctx)
		}
	}
}

// step advances the simulation one tick and publishes the resulting frame.
// Publish failures are logged and skipped; the simulation never stalls on
// the bus.
func (s *Simulator) step(ctx context.Context) {
	tick := s.store.Tick()

	frame := Frame(s.store)
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("Failed to marshal frame", "tick", tick, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, utils.SubjectTelemetryFrames, data); err != nil {
		s.logger.Warn("Failed to publish frame", "tick", tick, "error", err)
	}
}
