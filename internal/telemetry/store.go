package telemetry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/topology"
)

// Store holds every ServerRecord for the session. Records live in a flat
// arena with stable indices; ids resolve through a lookup map. Tick is the
// only writer; readers receive snapshot copies.
type Store struct {
	mu      sync.RWMutex
	records []ServerRecord
	index   map[string]int
	rng     *rand.Rand
	ticks   uint64

	topo   *topology.Topology
	logger *logging.Logger
}

// NewStore creates an empty store for the given topology. A seed of 0 uses
// the current time; tests pass a fixed seed for repeatable walks (the walk
// itself is still treated as random by assertions).
func NewStore(topo *topology.Topology, seed int64, logger *logging.Logger) *Store {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Store{
		index:  make(map[string]int, topo.ServerCount()),
		rng:    rand.New(rand.NewSource(seed)),
		topo:   topo,
		logger: logger,
	}
}

// Initialize populates one record per (rack, slot) pair with randomized
// healthy starting metrics. Calling it again resets the population.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]ServerRecord, 0, s.topo.ServerCount())
	s.index = make(map[string]int, s.topo.ServerCount())
	s.ticks = 0

	for rack := 0; rack < s.topo.Racks(); rack++ {
		for slot := 0; slot < s.topo.SlotsPerRack(); slot++ {
			rec := ServerRecord{
				ID:          topology.ServerID(rack, slot),
				Rack:        rack,
				Slot:        slot,
				Temperature: TemperatureMin + s.rng.Float64()*20,
				CPUUsage:    CPUUsageMin + s.rng.Float64()*60,
				MemoryUsage: MemoryUsageMin + s.rng.Float64()*50,
			}
			rec.recomputeStatus()
			s.index[rec.ID] = len(s.records)
			s.records = append(s.records, rec)
		}
	}

	s.logger.Info("Telemetry store initialized", "servers", len(s.records))
}

// Tick advances every record one simulation step: drift each metric by a
// uniform amount, clamp to its bounds, then rederive the status. Updates are
// independent and order-insensitive. Returns the new tick number.
func (s *Store) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		rec := &s.records[i]
		rec.Temperature = clamp(rec.Temperature+s.uniform(temperatureDrift), TemperatureMin, TemperatureMax)
		rec.CPUUsage = clamp(rec.CPUUsage+s.uniform(cpuDrift), CPUUsageMin, CPUUsageMax)
		rec.MemoryUsage = clamp(rec.MemoryUsage+s.uniform(memoryDrift), MemoryUsageMin, MemoryUsageMax)
		rec.recomputeStatus()
	}
	s.ticks++
	return s.ticks
}

// uniform returns a value in [-amplitude, +amplitude). Callers hold s.mu.
func (s *Store) uniform(amplitude float64) float64 {
	return (s.rng.Float64()*2 - 1) * amplitude
}

// Get returns a copy of the record for id. Unknown ids are a normal miss
// (stale handles are expected), never an error.
func (s *Store) Get(id string) (ServerRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return ServerRecord{}, false
	}
	return s.records[i], true
}

// All returns a snapshot of every record keyed by id. The copies are
// detached from the store; mutating them has no effect.
func (s *Store) All() map[string]ServerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ServerRecord, len(s.records))
	for i := range s.records {
		out[s.records[i].ID] = s.records[i]
	}
	return out
}

// Records returns a snapshot slice in arena (rack-major) order.
func (s *Store) Records() []ServerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ServerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Count returns the record population.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Ticks returns how many ticks have been applied since Initialize.
func (s *Store) Ticks() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}

// StatusCounts returns the record count per status name.
func (s *Store) StatusCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{
		StatusNormal.String():  0,
		StatusWarning.String(): 0,
		StatusError.String():   0,
	}
	for i := range s.records {
		counts[s.records[i].Status.String()]++
	}
	return counts
}
