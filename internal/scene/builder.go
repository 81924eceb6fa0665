package scene

import (
	"fmt"

	"github.com/bytebitgo/rackview/internal/topology"
)

// Layout constants, world units. Racks stand on a 3x3 grid, front faces
// toward +Z.
const (
	rackSpacing   = 4.0
	rackHalfWidth = 1.0
	rackHalfDepth = 0.6
	rackHeight    = 4.2
	panelGauge    = 0.05

	slotBaseY   = 0.4
	slotPitch   = 0.72
	slotHeight  = 0.6
	chassisHalf = 0.85
	frontZ      = 0.5

	floorExtent = 12.0
	trayY       = 5.0
)

// Build constructs the full data-center scene for a topology: a root,
// decorative floor and overhead cable trays, one tagged case node per rack
// with untagged panel geometry, and one tagged assembly per server whose
// untagged sub-parts (chassis, indicator, brand panel, label, vents) carry
// the pickable geometry.
func Build(topo *topology.Topology) *Scene {
	s := New()

	root := s.AddNode(Node{Name: "datacenter", Parent: RootParent})

	// Decorative geometry: pickable so it occludes, but untagged so hits
	// resolve to no target.
	s.AddNode(Node{
		Name:     "floor",
		Parent:   root,
		Pickable: true,
		Bounds: AABB{
			Min: Vec3{X: -floorExtent, Y: -0.1, Z: -floorExtent},
			Max: Vec3{X: floorExtent, Y: 0, Z: floorExtent},
		},
	})
	for i := 0; i < 3; i++ {
		z := (float64(i) - 1) * rackSpacing
		s.AddNode(Node{
			Name:     fmt.Sprintf("tray-%d", i),
			Parent:   root,
			Pickable: true,
			Bounds: AABB{
				Min: Vec3{X: -floorExtent, Y: trayY, Z: z - 0.2},
				Max: Vec3{X: floorExtent, Y: trayY + 0.2, Z: z + 0.2},
			},
		})
	}

	for rack := 0; rack < topo.Racks(); rack++ {
		buildRack(s, topo, root, rack)
	}

	return s
}

// RackCenter returns the floor-plan center of a rack.
func RackCenter(rack int) (cx, cz float64) {
	col := rack % 3
	row := rack / 3
	return (float64(col) - 1) * rackSpacing, (float64(row) - 1) * rackSpacing
}

func buildRack(s *Scene, topo *topology.Topology, root, rack int) {
	cx, cz := RackCenter(rack)

	caseNode := s.AddNode(Node{
		Name:   fmt.Sprintf("rack%d", rack),
		Parent: root,
		Tag:    &Tag{Kind: TagRackCase, RackIndex: rack},
	})

	// Enclosure panels: back, sides, top. The front stays open so server
	// faces are reachable by rays from +Z.
	panels := []struct {
		name   string
		bounds AABB
	}{
		{"panel-back", AABB{
			Min: Vec3{X: cx - rackHalfWidth, Y: 0, Z: cz - rackHalfDepth},
			Max: Vec3{X: cx + rackHalfWidth, Y: rackHeight, Z: cz - rackHalfDepth + panelGauge},
		}},
		{"panel-left", AABB{
			Min: Vec3{X: cx - rackHalfWidth, Y: 0, Z: cz - rackHalfDepth},
			Max: Vec3{X: cx - rackHalfWidth + panelGauge, Y: rackHeight, Z: cz + rackHalfDepth},
		}},
		{"panel-right", AABB{
			Min: Vec3{X: cx + rackHalfWidth - panelGauge, Y: 0, Z: cz - rackHalfDepth},
			Max: Vec3{X: cx + rackHalfWidth, Y: rackHeight, Z: cz + rackHalfDepth},
		}},
		{"panel-top", AABB{
			Min: Vec3{X: cx - rackHalfWidth, Y: rackHeight, Z: cz - rackHalfDepth},
			Max: Vec3{X: cx + rackHalfWidth, Y: rackHeight + 0.1, Z: cz + rackHalfDepth},
		}},
	}
	for _, p := range panels {
		s.AddNode(Node{
			Name:     fmt.Sprintf("rack%d/%s", rack, p.name),
			Parent:   caseNode,
			Pickable: true,
			Bounds:   p.bounds,
		})
	}

	for slot := 0; slot < topo.SlotsPerRack(); slot++ {
		buildServer(s, caseNode, rack, slot, cx, cz)
	}
}

func buildServer(s *Scene, caseNode, rack, slot int, cx, cz float64) {
	id := topology.ServerID(rack, slot)
	y0 := slotBaseY + float64(slot)*slotPitch

	assembly := s.AddNode(Node{
		Name:   id,
		Parent: caseNode,
		Tag:    &Tag{Kind: TagServerBody, ServerID: id},
	})

	parts := []struct {
		name   string
		bounds AABB
	}{
		{"chassis", AABB{
			Min: Vec3{X: cx - chassisHalf, Y: y0, Z: cz - frontZ},
			Max: Vec3{X: cx + chassisHalf, Y: y0 + slotHeight, Z: cz + frontZ},
		}},
		// Front-face details sit slightly proud of the chassis.
		{"indicator", AABB{
			Min: Vec3{X: cx - 0.75, Y: y0 + 0.25, Z: cz + frontZ},
			Max: Vec3{X: cx - 0.65, Y: y0 + 0.35, Z: cz + frontZ + 0.06},
		}},
		{"brand-panel", AABB{
			Min: Vec3{X: cx - 0.35, Y: y0 + 0.34, Z: cz + frontZ},
			Max: Vec3{X: cx + 0.35, Y: y0 + 0.5, Z: cz + frontZ + 0.05},
		}},
		{"label", AABB{
			Min: Vec3{X: cx + 0.45, Y: y0 + 0.38, Z: cz + frontZ},
			Max: Vec3{X: cx + 0.72, Y: y0 + 0.48, Z: cz + frontZ + 0.04},
		}},
		{"vents", AABB{
			Min: Vec3{X: cx - 0.45, Y: y0 + 0.08, Z: cz + frontZ},
			Max: Vec3{X: cx + 0.35, Y: y0 + 0.24, Z: cz + frontZ + 0.03},
		}},
	}
	for _, p := range parts {
		s.AddNode(Node{
			Name:     fmt.Sprintf("%s/%s", id, p.name),
			Parent:   assembly,
			Pickable: true,
			Bounds:   p.bounds,
		})
	}
}
