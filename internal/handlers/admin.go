package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/utils"
)

// Tick handles POST /admin/tick: advance the simulation one step by hand,
// publishing the resulting frame exactly as the background simulator does.
func (h *Handler) Tick(c *fiber.Ctx) error {
	tick := h.store.Tick()

	data, err := json.Marshal(telemetry.Frame(h.store))
	if err != nil {
		h.logger.Error("Failed to marshal frame", "tick", tick, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ERROR",
				Message: "Failed to marshal frame",
			},
		})
	}
	if err := h.publisher.Publish(c.Context(), utils.SubjectTelemetryFrames, data); err != nil {
		h.logger.Warn("Failed to publish frame", "tick", tick, "error", err)
	}

	return c.JSON(models.TickResponse{
		Tick:     tick,
		Statuses: h.store.StatusCounts(),
	})
}

// Reset handles POST /admin/reset: reseed the telemetry population and
// clear hover/selection state.
func (h *Handler) Reset(c *fiber.Ctx) error {
	h.store.Initialize()
	h.interactionService.Reset()
	h.logger.Info("Simulation reset", "servers", h.store.Count())

	return c.JSON(fiber.Map{
		"success": true,
		"servers": h.store.Count(),
	})
}
