package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bytebitgo/rackview/internal/events"
	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/panel"
	"github.com/bytebitgo/rackview/internal/picking"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/session"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
	"github.com/bytebitgo/rackview/internal/utils"
)

// PointerResult is the full outcome of one pointer event: the resolved
// target, the effects the transition produced, and the panel view the
// client should render.
type PointerResult struct {
	Target   picking.Target
	Distance float64
	Hit      bool
	Effects  []models.EffectView
	Panel    panel.View
}

// effectRecorder collects the effects fired during one interaction. It is
// the session's EffectSink; the service drains it after every call.
type effectRecorder struct {
	effects []models.EffectView
}

func (r *effectRecorder) EnterRack(rack int) { r.add("enter", "rack", rack, "") }
func (r *effectRecorder) LeaveRack(rack int) { r.add("leave", "rack", rack, "") }
func (r *effectRecorder) EnterServer(id string) {
	r.add("enter", "server", 0, id)
}
func (r *effectRecorder) LeaveServer(id string) {
	r.add("leave", "server", 0, id)
}
func (r *effectRecorder) SelectServer(id string) {
	r.add("select", "server", 0, id)
}
func (r *effectRecorder) DeselectServer(id string) {
	r.add("deselect", "server", 0, id)
}

func (r *effectRecorder) add(effect, kind string, rack int, id string) {
	r.effects = append(r.effects, models.EffectView{
		Effect:    effect,
		Kind:      kind,
		RackIndex: rack,
		ServerID:  id,
	})
}

func (r *effectRecorder) drain() []models.EffectView {
	out := r.effects
	r.effects = nil
	return out
}

// panelRecorder remembers the most recent panel request so the current
// panel can be rebuilt against live telemetry at any time.
type panelRecorder struct {
	kind   panel.ViewKind
	rack   int
	server string
}

func (p *panelRecorder) ShowDefault() { p.kind, p.rack, p.server = panel.KindDefault, 0, "" }
func (p *panelRecorder) ShowRack(rack int) {
	p.kind, p.rack, p.server = panel.KindRack, rack, ""
}
func (p *panelRecorder) ShowServer(id string) {
	p.kind, p.rack, p.server = panel.KindServer, 0, id
}

func (p *panelRecorder) render(b *panel.Builder) panel.View {
	switch p.kind {
	case panel.KindRack:
		return b.ForRack(p.rack)
	case panel.KindServer:
		return b.ForServer(p.server)
	default:
		return b.Default()
	}
}

// effectEvent is the bus payload published after each interaction.
type effectEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Effects   []models.EffectView `json:"effects"`
}

// InteractionService resolves pointer rays against the scene and drives the
// hover/selection session. Calls are serialized: each pointer event is
// applied to completion, and the effects it produced belong to that event
// alone.
type InteractionService struct {
	mu sync.Mutex

	scene   *scene.Scene
	session *session.Session
	effects *effectRecorder
	panels  *panelRecorder
	builder *panel.Builder

	publisher events.Publisher
	logger    *logging.Logger
}

// NewInteractionService wires a session over the given scene and store.
func NewInteractionService(sc *scene.Scene, store *telemetry.Store, topo *topology.Topology, publisher events.Publisher, logger *logging.Logger) *InteractionService {
	effects := &effectRecorder{}
	panels := &panelRecorder{kind: panel.KindDefault}
	return &InteractionService{
		scene:     sc,
		session:   session.New(effects, panels),
		effects:   effects,
		panels:    panels,
		builder:   panel.NewBuilder(store, topo),
		publisher: publisher,
		logger:    logger,
	}
}

// PointerMove resolves the ray and applies a hover transition.
func (s *InteractionService) PointerMove(ctx context.Context, ray scene.Ray) *PointerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, dist, hit := picking.Resolve(s.scene, ray)
	s.session.PointerMove(target)
	return s.finish(ctx, target, dist, hit)
}

// Click resolves the ray and applies a selection transition.
func (s *InteractionService) Click(ctx context.Context, ray scene.Ray) *PointerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, dist, hit := picking.Resolve(s.scene, ray)
	s.session.Click(target)

	// Clicking empty space or a rack leaves the panel as-is, so render
	// whatever the last request was.
	return s.finish(ctx, target, dist, hit)
}

// finish drains the recorded effects, rebuilds the current panel, and
// publishes the effects. Callers hold s.mu.
func (s *InteractionService) finish(ctx context.Context, target picking.Target, dist float64, hit bool) *PointerResult {
	effects := s.effects.drain()
	view := s.panels.render(s.builder)

	s.publishEffects(ctx, effects)

	return &PointerResult{
		Target:   target,
		Distance: dist,
		Hit:      hit,
		Effects:  effects,
		Panel:    view,
	}
}

// publishEffects is best-effort: a bus failure never fails the interaction.
func (s *InteractionService) publishEffects(ctx context.Context, effects []models.EffectView) {
	if len(effects) == 0 {
		return
	}

	data, err := json.Marshal(effectEvent{Timestamp: time.Now().UTC(), Effects: effects})
	if err != nil {
		s.logger.Error("Failed to marshal effects", "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, utils.SubjectInteractionEffects, data); err != nil {
		s.logger.Warn("Failed to publish effects", "error", err)
	}
}

// State reports the current hover and selection targets.
func (s *InteractionService) State() models.InteractionStateResponse {
	hovered, selected := s.session.State()
	return models.InteractionStateResponse{
		Hovered:  models.NewTargetView(hovered),
		Selected: models.NewTargetView(selected),
	}
}

// Panel rebuilds the most recently requested panel view against live
// telemetry.
func (s *InteractionService) Panel() panel.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels.render(s.builder)
}

// Reset clears hover and selection, returning the panel to the default
// view.
func (s *InteractionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	s.panels.ShowDefault()
	s.effects.drain()
}
