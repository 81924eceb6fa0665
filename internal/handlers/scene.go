package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/topology"
)

// GetTopology handles GET /v1/topology
func (h *Handler) GetTopology(c *fiber.Ctx) error {
	return c.JSON(models.TopologyResponse{
		Racks:        h.topo.Racks(),
		SlotsPerRack: h.topo.SlotsPerRack(),
		ServerCount:  h.topo.ServerCount(),
		Brands:       topology.BrandLabels(),
		ServerIDs:    h.topo.ServerIDs(),
	})
}

// GetScene handles GET /v1/scene. The node arena is returned as-is; parent
// indices let clients rebuild the hierarchy.
func (h *Handler) GetScene(c *fiber.Ctx) error {
	return c.JSON(models.SceneResponse{Nodes: h.scene.Nodes()})
}
