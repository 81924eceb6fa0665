package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytebitgo/rackview/internal/config"
	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/router"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Viewer service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Connect to the event bus (in-memory unless configured otherwise)
	logger.Info("Connecting to event bus", "type", cfg.Bus.Type, "url", cfg.Bus.URL)
	bus, err := events.NewBus(cfg.Bus)
	if err != nil {
		logger.Fatal("Failed to connect to event bus", "error", err)
	}
	defer func() { _ = bus.Close() }()

	// Build the data center: topology, telemetry population, scene graph
	topo := topology.Default()
	store := telemetry.NewStore(topo, cfg.Simulation.Seed, logger)
	store.Initialize()
	sc := scene.Build(topo)
	logger.Info("Scene built", "racks", topo.Racks(), "servers", store.Count(), "nodes", len(sc.Nodes()))

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app, handler, err := router.New(logger, topo, store, sc, bus, *cfg, Version)
	if err != nil {
		logger.Fatal("Failed to initialize router", "error", err)
	}
	defer func() { _ = handler.Close() }()

	// Create context for background services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the telemetry simulator
	sim := telemetry.NewSimulator(store, bus, cfg.Simulation.TickInterval, logger)
	sim.Start(ctx)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sim.Stop()

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
