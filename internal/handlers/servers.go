package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

func recordView(rec telemetry.ServerRecord) models.ServerRecordView {
	return models.ServerRecordView{
		ID:          rec.ID,
		Rack:        rec.Rack,
		Slot:        rec.Slot,
		Brand:       topology.BrandLabel(rec.Slot),
		Temperature: rec.Temperature,
		CPUUsage:    rec.CPUUsage,
		MemoryUsage: rec.MemoryUsage,
		HeatLevel:   rec.HeatLevel(),
		Status:      rec.Status,
	}
}

// ListServers handles GET /v1/servers?status=
func (h *Handler) ListServers(c *fiber.Ctx) error {
	statusFilter := c.Query("status")

	servers := make([]models.ServerRecordView, 0, h.store.Count())
	for _, rec := range h.store.Records() {
		if statusFilter != "" && rec.Status.String() != statusFilter {
			continue
		}
		servers = append(servers, recordView(rec))
	}

	return c.JSON(models.ServerListResponse{
		Servers: servers,
		Count:   len(servers),
	})
}

// GetServer handles GET /v1/servers/:id. A stale or unknown id is a plain
// 404; clients probe ids routinely.
func (h *Handler) GetServer(c *fiber.Ctx) error {
	id := c.Params("id")

	rec, ok := h.store.Get(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("No server with id %q", id),
			},
		})
	}
	return c.JSON(recordView(rec))
}

// GetRack handles GET /v1/racks/:rack, returning the rack roster slot by
// slot from the bottom up.
func (h *Handler) GetRack(c *fiber.Ctx) error {
	rack, err := c.ParamsInt("rack")
	if err != nil || rack < 0 || rack >= h.topo.Racks() {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "BAD_REQUEST",
				Message: fmt.Sprintf("Rack index must be in [0,%d]", h.topo.Racks()-1),
			},
		})
	}

	servers := make([]models.ServerRecordView, 0, h.topo.SlotsPerRack())
	for slot := 0; slot < h.topo.SlotsPerRack(); slot++ {
		if rec, ok := h.store.Get(topology.ServerID(rack, slot)); ok {
			servers = append(servers, recordView(rec))
		}
	}

	return c.JSON(models.RackResponse{Rack: rack, Servers: servers})
}

// GetStatusSummary handles GET /v1/status
func (h *Handler) GetStatusSummary(c *fiber.Ctx) error {
	return c.JSON(models.StatusSummaryResponse{
		Tick:     h.store.Ticks(),
		Statuses: h.store.StatusCounts(),
	})
}
