// Package panel builds info-panel view models from live telemetry. Views
// are plain data; the presentation layer is responsible for formatting.
package panel

import (
	"github.com/bytebitgo/rackview/internal/picking"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

// ViewKind discriminates the three panel shapes.
type ViewKind string

const (
	KindDefault ViewKind = "default"
	KindRack    ViewKind = "rack"
	KindServer  ViewKind = "server"
)

// SlotRow is one line of a rack roster.
type SlotRow struct {
	ServerID    string           `json:"server_id"`
	Brand       string           `json:"brand"`
	Temperature float64          `json:"temperature"`
	CPUUsage    float64          `json:"cpu_usage"`
	Status      telemetry.Status `json:"status"`
}

// RackView lists every slot of one rack, bottom slot first.
type RackView struct {
	Rack  int       `json:"rack"`
	Slots []SlotRow `json:"slots"`
}

// ServerView is the single-server detail view.
type ServerView struct {
	ServerID    string           `json:"server_id"`
	Brand       string           `json:"brand"`
	Temperature float64          `json:"temperature"`
	CPUUsage    float64          `json:"cpu_usage"`
	MemoryUsage float64          `json:"memory_usage"`
	HeatLevel   float64          `json:"heat_level"`
	Status      telemetry.Status `json:"status"`
}

// View is the tagged union handed to the panel renderer. Exactly one of
// Rack and Server is set when Kind says so; the default view carries only
// the status legend.
type View struct {
	Kind   ViewKind    `json:"kind"`
	Legend []string    `json:"legend,omitempty"`
	Rack   *RackView   `json:"rack,omitempty"`
	Server *ServerView `json:"server,omitempty"`
}

// Builder renders views against the current store contents. Stateless
// between calls; every view reflects telemetry at the moment it is built.
type Builder struct {
	store *telemetry.Store
	topo  *topology.Topology
}

func NewBuilder(store *telemetry.Store, topo *topology.Topology) *Builder {
	return &Builder{store: store, topo: topo}
}

// Default returns the legend view shown when nothing is hovered or the
// hovered entity has no backing record.
func (b *Builder) Default() View {
	return View{
		Kind: KindDefault,
		Legend: []string{
			telemetry.StatusNormal.String(),
			telemetry.StatusWarning.String(),
			telemetry.StatusError.String(),
		},
	}
}

// ForRack returns the roster for one rack. An out-of-range index degrades
// to the default view.
func (b *Builder) ForRack(rack int) View {
	if rack < 0 || rack >= b.topo.Racks() {
		return b.Default()
	}

	slots := make([]SlotRow, 0, b.topo.SlotsPerRack())
	for slot := 0; slot < b.topo.SlotsPerRack(); slot++ {
		id := topology.ServerID(rack, slot)
		rec, ok := b.store.Get(id)
		if !ok {
			continue
		}
		slots = append(slots, SlotRow{
			ServerID:    rec.ID,
			Brand:       topology.BrandLabel(slot),
			Temperature: rec.Temperature,
			CPUUsage:    rec.CPUUsage,
			Status:      rec.Status,
		})
	}

	return View{Kind: KindRack, Rack: &RackView{Rack: rack, Slots: slots}}
}

// ForServer returns the detail view for one server. An unknown id degrades
// to the default view; stale handles are a normal miss, not an error.
func (b *Builder) ForServer(id string) View {
	rec, ok := b.store.Get(id)
	if !ok {
		return b.Default()
	}

	return View{Kind: KindServer, Server: &ServerView{
		ServerID:    rec.ID,
		Brand:       topology.BrandLabel(rec.Slot),
		Temperature: rec.Temperature,
		CPUUsage:    rec.CPUUsage,
		MemoryUsage: rec.MemoryUsage,
		HeatLevel:   rec.HeatLevel(),
		Status:      rec.Status,
	}}
}

// ForTarget maps an interaction target to its view.
func (b *Builder) ForTarget(t picking.Target) View {
	switch {
	case t.IsRack():
		return b.ForRack(t.RackIndex)
	case t.IsServer():
		return b.ForServer(t.ServerID)
	default:
		return b.Default()
	}
}
