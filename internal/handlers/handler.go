package handlers

import (
	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/services"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	topo   *topology.Topology
	store  *telemetry.Store
	scene  *scene.Scene

	// Services
	interactionService *services.InteractionService
	streamService      *services.StreamService

	publisher events.Publisher
	version   string
}

// New creates a new handler instance
func New(logger *logging.Logger, topo *topology.Topology, store *telemetry.Store,
	sc *scene.Scene, bus events.Bus, version string,
) (*Handler, error) {
	streamService, err := services.NewStreamService(bus, logger)
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:             logger,
		topo:               topo,
		store:              store,
		scene:              sc,
		interactionService: services.NewInteractionService(sc, store, topo, bus, logger),
		streamService:      streamService,
		publisher:          bus,
		version:            version,
	}, nil
}

// Close releases the stream fan-out resources.
func (h *Handler) Close() error {
	return h.streamService.Close()
}
