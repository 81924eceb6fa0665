// Package topology defines the fixed rack/server grid of the simulated
// data center and the server identity format shared by every other layer.
package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid dimensions. The floor plan is a fixed 3x3 arrangement of racks,
// each holding five server slots.
const (
	RackCount    = 9
	SlotsPerRack = 5
	ServerCount  = RackCount * SlotsPerRack
)

// brandLabels maps slot index to a vendor label. The slot index of a server
// id selects its label, so order matters.
var brandLabels = [SlotsPerRack]string{
	"Dell",
	"HPE",
	"IBM",
	"Lenovo",
	"Supermicro",
}

// Topology describes the static rack grid for a session. The population is
// fixed at construction; servers are never added or removed.
type Topology struct {
	racks        int
	slotsPerRack int
}

// Default returns the standard 9-rack, 5-slot topology.
func Default() *Topology {
	return &Topology{racks: RackCount, slotsPerRack: SlotsPerRack}
}

// Racks returns the number of racks.
func (t *Topology) Racks() int { return t.racks }

// SlotsPerRack returns the number of server slots per rack.
func (t *Topology) SlotsPerRack() int { return t.slotsPerRack }

// ServerCount returns the total server population.
func (t *Topology) ServerCount() int { return t.racks * t.slotsPerRack }

// Contains reports whether the (rack, slot) pair exists in the grid.
func (t *Topology) Contains(rack, slot int) bool {
	return rack >= 0 && rack < t.racks && slot >= 0 && slot < t.slotsPerRack
}

// ServerIDs returns every server id in rack-major, slot-minor order.
func (t *Topology) ServerIDs() []string {
	ids := make([]string, 0, t.ServerCount())
	for rack := 0; rack < t.racks; rack++ {
		for slot := 0; slot < t.slotsPerRack; slot++ {
			ids = append(ids, ServerID(rack, slot))
		}
	}
	return ids
}

// ParseServerID parses an id and validates it against this topology's bounds.
func (t *Topology) ParseServerID(id string) (rack, slot int, ok bool) {
	rack, slot, ok = ParseServerID(id)
	if !ok || !t.Contains(rack, slot) {
		return 0, 0, false
	}
	return rack, slot, true
}

// ServerID formats the canonical server identity. Ids double as map keys and
// must round-trip through ParseServerID.
func ServerID(rack, slot int) string {
	return fmt.Sprintf("rack%d-server%d", rack, slot)
}

// ParseServerID extracts rack and slot indices from a server id. It returns
// ok=false for anything that does not match rack<R>-server<S>; callers probe
// ids defensively and a malformed id is a normal miss, not an error.
func ParseServerID(id string) (rack, slot int, ok bool) {
	rest, found := strings.CutPrefix(id, "rack")
	if !found {
		return 0, 0, false
	}
	rackStr, slotStr, found := strings.Cut(rest, "-server")
	if !found {
		return 0, 0, false
	}
	rack, err := strconv.Atoi(rackStr)
	if err != nil || rack < 0 {
		return 0, 0, false
	}
	slot, err = strconv.Atoi(slotStr)
	if err != nil || slot < 0 {
		return 0, 0, false
	}
	return rack, slot, true
}

// BrandLabel returns the vendor label for a slot index.
func BrandLabel(slot int) string {
	if slot < 0 || slot >= SlotsPerRack {
		return "Unknown"
	}
	return brandLabels[slot]
}

// BrandLabels returns the ordered label list.
func BrandLabels() []string {
	labels := make([]string, SlotsPerRack)
	copy(labels, brandLabels[:])
	return labels
}
