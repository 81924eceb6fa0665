package services

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/utils"
)

// clientBufferSize is the per-client frame buffer. A client that falls this
// far behind starts dropping frames; telemetry is a live feed, not a log.
const clientBufferSize = 16

// StreamService fans incoming telemetry frames out to connected stream
// clients. It holds the single bus subscription; clients register for a
// private channel and unregister when their connection closes.
type StreamService struct {
	mu      sync.Mutex
	clients map[uint64]chan []byte
	nextID  uint64

	bus    events.Subscriber
	logger *logging.Logger
}

// NewStreamService subscribes to the telemetry frame subject and starts
// fanning frames out.
func NewStreamService(bus events.Subscriber, logger *logging.Logger) (*StreamService, error) {
	s := &StreamService{
		clients: make(map[uint64]chan []byte),
		bus:     bus,
		logger:  logger,
	}

	if err := bus.Subscribe(utils.SubjectTelemetryFrames, s.fanOut); err != nil {
		return nil, fmt.Errorf("failed to subscribe to frames: %w", err)
	}
	return s, nil
}

// fanOut delivers one frame to every registered client. Slow clients drop
// the frame rather than stalling the rest.
func (s *StreamService) fanOut(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.clients {
		select {
		case ch <- data:
		default:
			s.logger.Debug("Dropping frame for slow client", "client_id", id)
		}
	}
	return nil
}

// Register adds a stream client and returns its id and frame channel.
func (s *StreamService) Register() (uint64, <-chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	ch := make(chan []byte, clientBufferSize)
	s.clients[id] = ch

	s.logger.Debug("Stream client registered", "client_id", id, "clients", len(s.clients))
	return id, ch
}

// Unregister removes a client and closes its channel.
func (s *StreamService) Unregister(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.clients[id]; ok {
		close(ch)
		delete(s.clients, id)
		s.logger.Debug("Stream client unregistered", "client_id", id, "clients", len(s.clients))
	}
}

// ClientCount returns the number of connected stream clients.
func (s *StreamService) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close drops the bus subscription and disconnects every client.
func (s *StreamService) Close() error {
	err := s.bus.Unsubscribe(utils.SubjectTelemetryFrames)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	return err
}

// SSEWriter implements Server-Sent Events framing over an io.Writer.
type SSEWriter struct {
	writer  io.Writer
	eventID int
}

// NewSSEWriter wraps w with SSE event framing; event ids start at 1.
func NewSSEWriter(w io.Writer) *SSEWriter {
	return &SSEWriter{writer: w}
}

// WriteFrame writes a pre-marshaled telemetry frame as a "frame" event.
func (w *SSEWriter) WriteFrame(data []byte) error {
	w.eventID++
	_, err := fmt.Fprintf(w.writer, "id: %d\nevent: frame\ndata: %s\n\n", w.eventID, data)
	return err
}

// WriteEvent writes a custom event with a JSON-marshaled payload.
func (w *SSEWriter) WriteEvent(eventType string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	w.eventID++
	_, err = fmt.Fprintf(w.writer, "id: %d\nevent: %s\ndata: %s\n\n", w.eventID, eventType, jsonData)
	return err
}

// Flush flushes the underlying writer when it supports it.
func (w *SSEWriter) Flush() error {
	if flusher, ok := w.writer.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}
