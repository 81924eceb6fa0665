package router

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/config"
	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	logger := logging.NewDevelopment()
	topo := topology.Default()
	store := telemetry.NewStore(topo, 77, logger)
	store.Initialize()

	bus, err := events.NewBus(config.BusConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	app, h, err := New(logger, topo, store, scene.Build(topo), bus, cfg, "test")
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return app
}

func TestRoutes_NoAuth(t *testing.T) {
	app := newTestApp(t, config.Config{})

	paths := []struct {
		method, path string
		status       int
	}{
		{"GET", "/health", fiber.StatusOK},
		{"GET", "/v1/topology", fiber.StatusOK},
		{"GET", "/v1/scene", fiber.StatusOK},
		{"GET", "/v1/servers", fiber.StatusOK},
		{"GET", "/v1/servers/rack0-server0", fiber.StatusOK},
		{"GET", "/v1/servers/rack9-server9", fiber.StatusNotFound},
		{"GET", "/v1/racks/0", fiber.StatusOK},
		{"GET", "/v1/status", fiber.StatusOK},
		{"GET", "/v1/interaction/state", fiber.StatusOK},
		{"GET", "/v1/panel", fiber.StatusOK},
		{"POST", "/admin/tick", fiber.StatusOK},
		{"POST", "/admin/reset", fiber.StatusOK},
		{"GET", "/no/such/route", fiber.StatusNotFound},
	}

	for _, p := range paths {
		resp, err := app.Test(httptest.NewRequest(p.method, p.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", p.method, p.path, err)
		}
		if resp.StatusCode != p.status {
			t.Errorf("%s %s: status = %d, want %d", p.method, p.path, resp.StatusCode, p.status)
		}
	}
}

func TestRoutes_AuthEnabled(t *testing.T) {
	key := strings.Repeat("k", 32)
	app := newTestApp(t, config.Config{
		Auth: config.AuthConfig{Enabled: true, APIKeys: []string{key}},
	})

	// Health stays open.
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}

	// Protected routes reject missing keys and accept valid ones.
	for _, path := range []string{"/v1/topology", "/admin/tick"} {
		method := "GET"
		if strings.HasPrefix(path, "/admin") {
			method = "POST"
		}

		resp, err := app.Test(httptest.NewRequest(method, path, nil))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s without key: status = %d, want 401", path, resp.StatusCode)
		}

		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("X-API-Key", key)
		resp, err = app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s with key: status = %d, want 200", path, resp.StatusCode)
		}
	}
}
