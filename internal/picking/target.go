// Package picking resolves pick rays against the scene's node arena to
// logical interaction targets. Resolution is a pure function over the ray,
// the precomputed pickable list, and the parent-link tag table.
package picking

import "strconv"

// Kind discriminates the target union.
type Kind int

const (
	KindNone Kind = iota
	KindRack
	KindServer
)

// Target identifies what a pick resolved to: nothing, a rack, or a server.
type Target struct {
	Kind      Kind
	RackIndex int
	ServerID  string
}

// None returns the empty target.
func None() Target {
	return Target{Kind: KindNone}
}

// Rack returns a rack target.
func Rack(index int) Target {
	return Target{Kind: KindRack, RackIndex: index}
}

// Server returns a server target.
func Server(id string) Target {
	return Target{Kind: KindServer, ServerID: id}
}

// Equal reports whether two targets identify the same logical entity.
func (t Target) Equal(o Target) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindRack:
		return t.RackIndex == o.RackIndex
	case KindServer:
		return t.ServerID == o.ServerID
	default:
		return true
	}
}

// IsNone reports whether the target is empty.
func (t Target) IsNone() bool { return t.Kind == KindNone }

// IsRack reports whether the target is a rack.
func (t Target) IsRack() bool { return t.Kind == KindRack }

// IsServer reports whether the target is a server.
func (t Target) IsServer() bool { return t.Kind == KindServer }

// String returns a short description for logs.
func (t Target) String() string {
	switch t.Kind {
	case KindRack:
		return "rack:" + strconv.Itoa(t.RackIndex)
	case KindServer:
		return "server:" + t.ServerID
	default:
		return "none"
	}
}
