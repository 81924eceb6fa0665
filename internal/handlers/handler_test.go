package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/config"
	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

// setupTestApp creates a handler over a seeded store, a built scene, and an
// in-memory bus.
func setupTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	logger := logging.NewDevelopment()
	topo := topology.Default()
	store := telemetry.NewStore(topo, 99, logger)
	store.Initialize()

	bus, err := events.NewBus(config.BusConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	handler, err := New(logger, topo, store, scene.Build(topo), bus, "1.0.0")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = handler.Close() })

	return fiber.New(), handler
}

// rayToward aims at the named scene node's bounds center from 2 units
// toward +Z.
func rayToward(t *testing.T, h *Handler, name string) scene.Ray {
	t.Helper()
	node, ok := h.scene.FindNode(name)
	if !ok {
		t.Fatalf("missing node %s", name)
	}
	c := node.Bounds.Center()
	return scene.Ray{
		Origin:    scene.Vec3{X: c.X, Y: c.Y, Z: c.Z + 2},
		Direction: scene.Vec3{Z: -1},
	}
}
