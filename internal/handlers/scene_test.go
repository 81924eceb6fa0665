package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/topology"
)

func TestHandler_GetTopology(t *testing.T) {
	app, handler := setupTestApp(t)
	app.Get("/v1/topology", handler.GetTopology)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/topology", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var topo models.TopologyResponse
	if err := json.NewDecoder(resp.Body).Decode(&topo); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if topo.Racks != topology.RackCount || topo.SlotsPerRack != topology.SlotsPerRack {
		t.Errorf("Unexpected layout: %+v", topo)
	}
	if topo.ServerCount != topology.ServerCount || len(topo.ServerIDs) != topology.ServerCount {
		t.Errorf("Expected %d servers, got count=%d ids=%d", topology.ServerCount, topo.ServerCount, len(topo.ServerIDs))
	}
	if len(topo.Brands) != topology.SlotsPerRack {
		t.Errorf("Expected %d brands, got %d", topology.SlotsPerRack, len(topo.Brands))
	}
}

func TestHandler_GetScene(t *testing.T) {
	app, handler := setupTestApp(t)
	app.Get("/v1/scene", handler.GetScene)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/scene", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	var sceneResp models.SceneResponse
	if err := json.NewDecoder(resp.Body).Decode(&sceneResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(sceneResp.Nodes) == 0 {
		t.Fatal("Scene has no nodes")
	}

	// Parent indices must point at earlier arena entries.
	for _, n := range sceneResp.Nodes {
		if n.Parent >= n.ID {
			t.Errorf("Node %d has parent %d", n.ID, n.Parent)
		}
	}
}
