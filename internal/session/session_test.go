package session

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/bytebitgo/rackview/internal/picking"
)

// recorder captures effect and panel calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) EnterRack(rack int)       { r.record("enter-rack:%d", rack) }
func (r *recorder) LeaveRack(rack int)       { r.record("leave-rack:%d", rack) }
func (r *recorder) EnterServer(id string)    { r.record("enter-server:%s", id) }
func (r *recorder) LeaveServer(id string)    { r.record("leave-server:%s", id) }
func (r *recorder) SelectServer(id string)   { r.record("select:%s", id) }
func (r *recorder) DeselectServer(id string) { r.record("deselect:%s", id) }
func (r *recorder) ShowDefault()             { r.record("panel-default") }
func (r *recorder) ShowRack(rack int)        { r.record("panel-rack:%d", rack) }
func (r *recorder) ShowServer(id string)     { r.record("panel-server:%s", id) }

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) expect(t *testing.T, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func newTestSession() (*Session, *recorder) {
	rec := &recorder{}
	return New(rec, rec), rec
}

func TestInitialState(t *testing.T) {
	s, _ := newTestSession()
	hovered, selected := s.State()
	if !hovered.IsNone() || !selected.IsNone() {
		t.Errorf("fresh session should be (None, None), got (%s, %s)", hovered, selected)
	}
}

func TestHoverRack(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.Rack(3))
	rec.expect(t, "enter-rack:3", "panel-rack:3")

	hovered, _ := s.State()
	if !hovered.Equal(picking.Rack(3)) {
		t.Errorf("hovered = %s, want rack 3", hovered)
	}
}

func TestHoverIdempotent(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.Server("rack0-server0"))
	s.PointerMove(picking.Server("rack0-server0"))

	// One enter effect, but the panel refreshes on both moves.
	rec.expect(t,
		"enter-server:rack0-server0", "panel-server:rack0-server0",
		"panel-server:rack0-server0")
}

func TestHoverTransition(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.Rack(1))
	rec.reset()

	s.PointerMove(picking.Server("rack1-server4"))
	rec.expect(t,
		"leave-rack:1",
		"enter-server:rack1-server4",
		"panel-server:rack1-server4")

	rec.reset()
	s.PointerMove(picking.None())
	rec.expect(t, "leave-server:rack1-server4", "panel-default")
}

func TestHoverNoneFromNone(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.None())
	rec.expect(t, "panel-default")
}

func TestClickSelectsServer(t *testing.T) {
	s, rec := newTestSession()

	s.Click(picking.Server("rack2-server1"))
	rec.expect(t, "select:rack2-server1", "panel-server:rack2-server1")

	_, selected := s.State()
	if !selected.Equal(picking.Server("rack2-server1")) {
		t.Errorf("selected = %s, want rack2-server1", selected)
	}
}

func TestClickReplacesSelection(t *testing.T) {
	s, rec := newTestSession()

	s.Click(picking.Server("rack2-server1"))
	rec.reset()

	s.Click(picking.Server("rack5-server0"))
	rec.expect(t,
		"deselect:rack2-server1",
		"select:rack5-server0",
		"panel-server:rack5-server0")
}

func TestClickSameServerRefires(t *testing.T) {
	s, rec := newTestSession()

	s.Click(picking.Server("rack2-server1"))
	rec.reset()

	s.Click(picking.Server("rack2-server1"))
	rec.expect(t,
		"deselect:rack2-server1",
		"select:rack2-server1",
		"panel-server:rack2-server1")
}

func TestClickNonServerIsNoOp(t *testing.T) {
	s, rec := newTestSession()

	s.Click(picking.Server("rack2-server1"))
	rec.reset()

	s.Click(picking.Rack(4))
	s.Click(picking.None())
	rec.expect(t)

	_, selected := s.State()
	if !selected.Equal(picking.Server("rack2-server1")) {
		t.Errorf("selection changed by non-server click: %s", selected)
	}
}

// Selection has higher precedence than hover: a selected server receives
// neither enter nor leave effects while hovered, so its selection emphasis
// is never disturbed.
func TestSelectionPrecedenceOverHover(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.Server("rack0-server0"))
	s.Click(picking.Server("rack0-server0"))
	rec.reset()

	// Moving off the selected server fires no leave for it.
	s.PointerMove(picking.Server("rack0-server1"))
	rec.expect(t,
		"enter-server:rack0-server1",
		"panel-server:rack0-server1")

	// Moving back onto it fires no enter; moving away again, no leave.
	rec.reset()
	s.PointerMove(picking.Server("rack0-server0"))
	rec.expect(t,
		"leave-server:rack0-server1",
		"panel-server:rack0-server0")

	rec.reset()
	s.PointerMove(picking.None())
	rec.expect(t, "panel-default")
}

func TestReset(t *testing.T) {
	s, rec := newTestSession()

	s.PointerMove(picking.Rack(2))
	s.Click(picking.Server("rack2-server0"))
	rec.reset()

	s.Reset()
	rec.expect(t)

	hovered, selected := s.State()
	if !hovered.IsNone() || !selected.IsNone() {
		t.Errorf("after reset expected (None, None), got (%s, %s)", hovered, selected)
	}
}
