// Package session owns the hover/selection interaction state and decides
// which pick results turn into visual effects and panel renders.
package session

import (
	"sync"

	"github.com/bytebitgo/rackview/internal/picking"
)

// EffectSink receives visual effect requests. Implementations apply hover
// emphasis (rack case dimming, server outlines) and sticky selection
// emphasis; the session only decides when each fires.
type EffectSink interface {
	EnterRack(rack int)
	LeaveRack(rack int)
	EnterServer(id string)
	LeaveServer(id string)
	SelectServer(id string)
	DeselectServer(id string)
}

// PanelRenderer receives info-panel render requests: a default legend view,
// a rack roster, or a single-server detail view.
type PanelRenderer interface {
	ShowDefault()
	ShowRack(rack int)
	ShowServer(id string)
}

// Session is the single owner of interaction state. Hover is transient and
// recomputed on every pointer move; selection is sticky and changes only by
// clicking a server. Selection emphasis has strictly higher precedence than
// hover emphasis: a server that is both hovered and selected receives
// neither enter nor leave effects, so its selection emphasis is never
// disturbed.
//
// All methods serialize on an internal mutex; callers from concurrent
// request handlers see each interaction applied to completion.
type Session struct {
	mu       sync.Mutex
	hovered  picking.Target
	selected picking.Target

	effects EffectSink
	panel   PanelRenderer
}

// New creates a session with no hover and no selection.
func New(effects EffectSink, panel PanelRenderer) *Session {
	return &Session{
		hovered:  picking.None(),
		selected: picking.None(),
		effects:  effects,
		panel:    panel,
	}
}

// PointerMove applies a hover transition to the resolved target. Repeated
// moves onto the same target fire no effects, but the panel is re-rendered
// every time so it tracks live telemetry.
func (s *Session) PointerMove(target picking.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !target.Equal(s.hovered) {
		s.fireLeave(s.hovered)
		s.fireEnter(target)
		s.hovered = target
	}
	s.renderPanel(target)
}

// Click applies a selection transition. Clicking anything other than a
// server changes nothing. Clicking a server deselects the previous
// selection (if any), selects the clicked server, and renders its detail
// panel; re-clicking the current selection re-fires both effects.
func (s *Session) Click(target picking.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !target.IsServer() {
		return
	}

	if s.selected.IsServer() {
		s.effects.DeselectServer(s.selected.ServerID)
	}
	s.selected = target
	s.effects.SelectServer(target.ServerID)
	s.panel.ShowServer(target.ServerID)
}

// State returns the current hovered and selected targets.
func (s *Session) State() (hovered, selected picking.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered, s.selected
}

// Reset clears hover and selection without firing effects. Used when the
// scene is rebuilt and stale emphasis no longer exists.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hovered = picking.None()
	s.selected = picking.None()
}

func (s *Session) fireLeave(t picking.Target) {
	switch {
	case t.IsRack():
		s.effects.LeaveRack(t.RackIndex)
	case t.IsServer() && !t.Equal(s.selected):
		s.effects.LeaveServer(t.ServerID)
	}
}

func (s *Session) fireEnter(t picking.Target) {
	switch {
	case t.IsRack():
		s.effects.EnterRack(t.RackIndex)
	case t.IsServer() && !t.Equal(s.selected):
		s.effects.EnterServer(t.ServerID)
	}
}

func (s *Session) renderPanel(t picking.Target) {
	switch {
	case t.IsRack():
		s.panel.ShowRack(t.RackIndex)
	case t.IsServer():
		s.panel.ShowServer(t.ServerID)
	default:
		s.panel.ShowDefault()
	}
}
