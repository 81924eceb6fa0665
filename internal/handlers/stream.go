package handlers

import (
	"bufio"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/services"
	"github.com/bytebitgo/rackview/internal/telemetry"
)

// StreamFrames handles GET /v1/stream/frames with SSE. The client receives
// one "frame" event per simulation tick until it disconnects.
func (h *Handler) StreamFrames(c *fiber.Ctx) error {
	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	clientID, frames := h.streamService.Register()
	h.logger.Info("Frame stream opened", "client_id", clientID)

	// The Fiber context is released once the handler returns, so the
	// stream loop must not touch it.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.streamService.Unregister(clientID)

		sseWriter := services.NewSSEWriter(w)

		// An initial snapshot so the client renders before the first tick.
		if err := sseWriter.WriteEvent("snapshot", telemetry.Frame(h.store)); err != nil {
			h.logger.Warn("Failed to write snapshot event", "client_id", clientID, "error", err)
			return
		}
		if err := sseWriter.Flush(); err != nil {
			return
		}

		for frame := range frames {
			if err := sseWriter.WriteFrame(frame); err != nil {
				h.logger.Info("Frame stream closed", "client_id", clientID, "error", err)
				return
			}
			if err := sseWriter.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}
