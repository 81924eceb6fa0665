package scene

// RootParent marks a node with no parent.
const RootParent = -1

// TagKind classifies what a tagged node logically is.
type TagKind int

const (
	// TagServerBody marks a server assembly; any geometric hit on its
	// sub-parts resolves to this server.
	TagServerBody TagKind = iota + 1

	// TagRackCase marks a rack enclosure; hits on its panels resolve to
	// the rack.
	TagRackCase
)

// Tag attaches a logical identity to a node. Exactly one of ServerID or
// RackIndex is meaningful, per Kind.
type Tag struct {
	Kind      TagKind `json:"kind"`
	ServerID  string  `json:"server_id,omitempty"`
	RackIndex int     `json:"rack_index,omitempty"`
}

// Node is one element of the scene arena. Bounds are world-absolute;
// Parent is an arena index used only for tag resolution, never traversed
// as a live tree.
type Node struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Parent   int    `json:"parent"`
	Bounds   AABB   `json:"bounds"`
	Pickable bool   `json:"pickable"`
	Tag      *Tag   `json:"tag,omitempty"`
}

// Scene is the precomputed node arena plus the pickable index list.
// It is immutable after Build, so concurrent reads need no locking.
type Scene struct {
	nodes    []Node
	pickable []int
	byName   map[string]int
}

// New creates an empty scene. Most callers want Build; New supports
// assembling custom layouts directly.
func New() *Scene {
	return &Scene{byName: make(map[string]int)}
}

// AddNode appends a node and returns its arena id. Any Parent must already
// be in the arena.
func (s *Scene) AddNode(n Node) int {
	n.ID = len(s.nodes)
	s.nodes = append(s.nodes, n)
	if n.Pickable {
		s.pickable = append(s.pickable, n.ID)
	}
	s.byName[n.Name] = n.ID
	return n.ID
}

// Nodes returns the node arena. Callers must not mutate it.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Pickable returns the arena ids of all pickable nodes.
func (s *Scene) Pickable() []int {
	return s.pickable
}

// Node returns the node at arena id.
func (s *Scene) Node(id int) (Node, bool) {
	if id < 0 || id >= len(s.nodes) {
		return Node{}, false
	}
	return s.nodes[id], true
}

// FindNode looks a node up by name.
func (s *Scene) FindNode(name string) (Node, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Node{}, false
	}
	return s.nodes[id], true
}

// TagFor walks the ownership chain from node id outward and returns the
// first tag encountered, starting with the node itself. Server tags sit
// below rack tags in the chain, so the more specific tag wins. Returns nil
// when the chain reaches the root untagged (decorative geometry).
func (s *Scene) TagFor(id int) *Tag {
	for id != RootParent {
		if id < 0 || id >= len(s.nodes) {
			return nil
		}
		if tag := s.nodes[id].Tag; tag != nil {
			return tag
		}
		id = s.nodes[id].Parent
	}
	return nil
}
