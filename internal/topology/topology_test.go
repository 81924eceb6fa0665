package topology

import "testing"

func TestServerIDRoundTrip(t *testing.T) {
	topo := Default()

	seen := make(map[string]bool)
	for rack := 0; rack < topo.Racks(); rack++ {
		for slot := 0; slot < topo.SlotsPerRack(); slot++ {
			id := ServerID(rack, slot)
			if seen[id] {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = true

			gotRack, gotSlot, ok := topo.ParseServerID(id)
			if !ok {
				t.Fatalf("ParseServerID(%q) failed", id)
			}
			if gotRack != rack || gotSlot != slot {
				t.Errorf("ParseServerID(%q) = (%d, %d), want (%d, %d)", id, gotRack, gotSlot, rack, slot)
			}
		}
	}

	if len(seen) != ServerCount {
		t.Errorf("expected %d unique ids, got %d", ServerCount, len(seen))
	}
}

func TestServerIDs(t *testing.T) {
	topo := Default()
	ids := topo.ServerIDs()

	if len(ids) != 45 {
		t.Fatalf("expected 45 ids, got %d", len(ids))
	}
	if ids[0] != "rack0-server0" {
		t.Errorf("first id = %q, want rack0-server0", ids[0])
	}
	if ids[len(ids)-1] != "rack8-server4" {
		t.Errorf("last id = %q, want rack8-server4", ids[len(ids)-1])
	}
}

func TestParseServerIDInvalid(t *testing.T) {
	cases := []string{
		"",
		"rack0",
		"server0",
		"rack0-server",
		"rack-server0",
		"rackX-server0",
		"rack0-serverX",
		"rack0_server0",
		"node0-server0",
	}
	for _, id := range cases {
		if _, _, ok := ParseServerID(id); ok {
			t.Errorf("ParseServerID(%q) unexpectedly succeeded", id)
		}
	}
}

func TestParseServerIDOutOfRange(t *testing.T) {
	topo := Default()

	// Syntactically valid but outside the 9x5 grid.
	for _, id := range []string{"rack9-server0", "rack0-server5", "rack100-server1"} {
		if _, _, ok := topo.ParseServerID(id); ok {
			t.Errorf("ParseServerID(%q) unexpectedly in range", id)
		}
	}
}

func TestBrandLabel(t *testing.T) {
	labels := BrandLabels()
	if len(labels) != SlotsPerRack {
		t.Fatalf("expected %d labels, got %d", SlotsPerRack, len(labels))
	}
	for slot, want := range labels {
		if got := BrandLabel(slot); got != want {
			t.Errorf("BrandLabel(%d) = %q, want %q", slot, got, want)
		}
	}
	if got := BrandLabel(-1); got != "Unknown" {
		t.Errorf("BrandLabel(-1) = %q, want Unknown", got)
	}
	if got := BrandLabel(SlotsPerRack); got != "Unknown" {
		t.Errorf("BrandLabel(%d) = %q, want Unknown", SlotsPerRack, got)
	}
}

func TestContains(t *testing.T) {
	topo := Default()
	if !topo.Contains(0, 0) || !topo.Contains(8, 4) {
		t.Error("expected grid corners to be contained")
	}
	if topo.Contains(-1, 0) || topo.Contains(0, -1) || topo.Contains(9, 0) || topo.Contains(0, 5) {
		t.Error("expected out-of-range pairs to be rejected")
	}
}
