package picking

import (
	"testing"

	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/topology"
)

// boxAt returns a unit-ish box centered at (x, y, z).
func boxAt(x, y, z, half float64) scene.AABB {
	return scene.AABB{
		Min: scene.Vec3{X: x - half, Y: y - half, Z: z - half},
		Max: scene.Vec3{X: x + half, Y: y + half, Z: z + half},
	}
}

func TestResolveEmptyScene(t *testing.T) {
	s := scene.New()
	ray := scene.Ray{Origin: scene.Vec3{Z: 5}, Direction: scene.Vec3{Z: -1}}

	target, _, hit := Resolve(s, ray)
	if hit {
		t.Error("expected no hit in empty scene")
	}
	if !target.IsNone() {
		t.Errorf("expected None, got %s", target)
	}
}

func TestResolveZeroRay(t *testing.T) {
	s := scene.Build(topology.Default())
	target, _, hit := Resolve(s, scene.Ray{})
	if hit || !target.IsNone() {
		t.Errorf("degenerate ray should resolve to nothing, got %s hit=%v", target, hit)
	}
}

func TestResolveNestedSubPartToServer(t *testing.T) {
	s := scene.Build(topology.Default())

	// Aim straight at the indicator light of rack4-server2 from in front
	// of the rack (the front faces +Z).
	node, ok := s.FindNode("rack4-server2/indicator")
	if !ok {
		t.Fatal("missing indicator node")
	}
	// Start between the middle and front rack rows so nothing else is in
	// the way.
	c := node.Bounds.Center()
	ray := scene.Ray{
		Origin:    scene.Vec3{X: c.X, Y: c.Y, Z: c.Z + 2},
		Direction: scene.Vec3{Z: -1},
	}

	target, dist, hit := Resolve(s, ray)
	if !hit {
		t.Fatal("expected hit")
	}
	if !target.Equal(Server("rack4-server2")) {
		t.Errorf("resolved to %s, want server rack4-server2", target)
	}
	if dist <= 0 || dist >= 2 {
		t.Errorf("unexpected distance %v", dist)
	}
}

func TestResolveRackPanelToRack(t *testing.T) {
	s := scene.Build(topology.Default())

	// Approach rack 1 (back row, z=-4) from behind: the back panel is hit
	// before anything inside.
	node, ok := s.FindNode("rack1/panel-back")
	if !ok {
		t.Fatal("missing back panel")
	}
	c := node.Bounds.Center()
	ray := scene.Ray{
		Origin:    scene.Vec3{X: c.X, Y: c.Y, Z: c.Z - 3},
		Direction: scene.Vec3{Z: 1},
	}

	target, _, hit := Resolve(s, ray)
	if !hit {
		t.Fatal("expected hit")
	}
	if !target.Equal(Rack(1)) {
		t.Errorf("resolved to %s, want rack 1", target)
	}
}

func TestResolveDecorativeToNone(t *testing.T) {
	s := scene.Build(topology.Default())

	// Straight down at an empty corner of the floor, far from any rack.
	ray := scene.Ray{
		Origin:    scene.Vec3{X: 11, Y: 3, Z: 11},
		Direction: scene.Vec3{Y: -1},
	}

	target, _, hit := Resolve(s, ray)
	if !hit {
		t.Fatal("expected geometric hit on the floor")
	}
	if !target.IsNone() {
		t.Errorf("floor hit resolved to %s, want None", target)
	}
}

func TestResolveMissesEverything(t *testing.T) {
	s := scene.Build(topology.Default())

	// Upward from above the whole scene.
	ray := scene.Ray{
		Origin:    scene.Vec3{Y: 50},
		Direction: scene.Vec3{Y: 1},
	}

	target, dist, hit := Resolve(s, ray)
	if hit {
		t.Errorf("expected no hit, got %s at %v", target, dist)
	}
}

func TestResolveNearestGoverns(t *testing.T) {
	s := scene.New()
	root := s.AddNode(scene.Node{Name: "root", Parent: scene.RootParent})

	s.AddNode(scene.Node{
		Name:     "near",
		Parent:   root,
		Pickable: true,
		Bounds:   boxAt(0, 0, -2, 0.5),
		Tag:      &scene.Tag{Kind: scene.TagServerBody, ServerID: "rack0-server0"},
	})
	s.AddNode(scene.Node{
		Name:     "far",
		Parent:   root,
		Pickable: true,
		Bounds:   boxAt(0, 0, -5, 0.5),
		Tag:      &scene.Tag{Kind: scene.TagRackCase, RackIndex: 3},
	})

	ray := scene.Ray{Origin: scene.Vec3{Z: 0.5}, Direction: scene.Vec3{Z: -1}}
	target, dist, hit := Resolve(s, ray)
	if !hit {
		t.Fatal("expected hit")
	}
	if !target.Equal(Server("rack0-server0")) {
		t.Errorf("resolved to %s, want the nearer server", target)
	}
	if dist != 2.0 {
		t.Errorf("expected distance 2.0, got %v", dist)
	}
}

func TestResolveEqualDistanceTieDoesNotPanic(t *testing.T) {
	s := scene.New()
	root := s.AddNode(scene.Node{Name: "root", Parent: scene.RootParent})

	// Two coincident boxes: tie broken by arena order, outcome defined
	// only as "one of them, deterministically".
	s.AddNode(scene.Node{
		Name: "a", Parent: root, Pickable: true,
		Bounds: boxAt(0, 0, -3, 0.5),
		Tag:    &scene.Tag{Kind: scene.TagServerBody, ServerID: "rack0-server1"},
	})
	s.AddNode(scene.Node{
		Name: "b", Parent: root, Pickable: true,
		Bounds: boxAt(0, 0, -3, 0.5),
		Tag:    &scene.Tag{Kind: scene.TagServerBody, ServerID: "rack0-server2"},
	})

	ray := scene.Ray{Origin: scene.Vec3{}, Direction: scene.Vec3{Z: -1}}

	first, _, hit := Resolve(s, ray)
	if !hit || !first.IsServer() {
		t.Fatalf("expected a server hit, got %s", first)
	}
	for i := 0; i < 10; i++ {
		again, _, _ := Resolve(s, ray)
		if !again.Equal(first) {
			t.Fatal("tie resolution is not deterministic")
		}
	}
}

func TestTargetEqual(t *testing.T) {
	if !None().Equal(None()) {
		t.Error("None != None")
	}
	if !Rack(3).Equal(Rack(3)) || Rack(3).Equal(Rack(4)) {
		t.Error("rack equality broken")
	}
	if !Server("a").Equal(Server("a")) || Server("a").Equal(Server("b")) {
		t.Error("server equality broken")
	}
	if Rack(0).Equal(None()) || Server("a").Equal(Rack(0)) {
		t.Error("cross-kind equality broken")
	}
}
