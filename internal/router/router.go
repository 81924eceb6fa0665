package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bytebitgo/rackview/internal/config"
	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/handlers"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/middleware"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, topo *topology.Topology,
	store *telemetry.Store, sc *scene.Scene, bus events.Bus,
	cfg config.Config, version string,
) (*handlers.Handler, error) {
	h, err := handlers.New(logger, topo, store, sc, bus, version)
	if err != nil {
		return nil, err
	}

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Layout & scene routes
	v1.Get("/topology", h.GetTopology)
	v1.Get("/scene", h.GetScene)

	// Telemetry routes
	v1.Get("/servers", h.ListServers)
	v1.Get("/servers/:id", h.GetServer)
	v1.Get("/racks/:rack", h.GetRack)
	v1.Get("/status", h.GetStatusSummary)

	// Interaction routes
	v1.Post("/interaction/pointer-move", h.PointerMove)
	v1.Post("/interaction/click", h.Click)
	v1.Get("/interaction/state", h.GetInteractionState)
	v1.Get("/panel", h.GetPanel)

	// Frame streaming (SSE)
	v1.Get("/stream/frames", h.StreamFrames)

	// Admin routes (protected by API key)
	admin := app.Group("/admin", authMiddleware)
	admin.Post("/tick", h.Tick)
	admin.Post("/reset", h.Reset)

	// 404 handler
	app.Use(h.NotFound)

	return h, nil
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, topo *topology.Topology, store *telemetry.Store,
	sc *scene.Scene, bus events.Bus, cfg config.Config, version string,
) (*fiber.App, *handlers.Handler, error) {
	app := fiber.New(fiber.Config{
		AppName:               "RackView",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	h, err := Setup(app, logger, topo, store, sc, bus, cfg, version)
	if err != nil {
		return nil, nil, err
	}
	return app, h, nil
}
