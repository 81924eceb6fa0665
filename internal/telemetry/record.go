// Package telemetry owns the simulated per-server metrics: a bounded
// random walk advanced once per tick, with a status derived from fixed
// thresholds. Records live in an arena with stable indices plus an
// id -> index lookup; the population is fixed for the session.
package telemetry

import (
	"encoding/json"
	"fmt"
)

// Metric bounds. Every update clamps back into these ranges.
const (
	TemperatureMin = 25.0
	TemperatureMax = 45.0
	CPUUsageMin    = 20.0
	CPUUsageMax    = 95.0
	MemoryUsageMin = 30.0
	MemoryUsageMax = 95.0
)

// Per-tick drift amplitudes: each metric moves by a uniform value in
// [-amplitude, +amplitude) before clamping.
const (
	temperatureDrift = 1.0
	cpuDrift         = 5.0
	memoryDrift      = 2.5
)

// Status thresholds, evaluated most severe first.
const (
	temperatureError = 42.0
	cpuError         = 90.0
	memoryError      = 90.0

	temperatureWarn = 38.0
	cpuWarn         = 75.0
	memoryWarn      = 75.0
)

// Status is the health classification derived from the three metrics.
// It is never set independently.
type Status int

const (
	StatusNormal Status = iota
	StatusWarning
	StatusError
)

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "normal"
	}
}

// MarshalJSON encodes the status as its string name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status from its string name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "normal":
		*s = StatusNormal
	case "warning":
		*s = StatusWarning
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown status %q", name)
	}
	return nil
}

// ServerRecord holds the simulated metrics for one server.
type ServerRecord struct {
	ID          string  `json:"id"`
	Rack        int     `json:"rack"`
	Slot        int     `json:"slot"`
	Temperature float64 `json:"temperature"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	Status      Status  `json:"status"`
}

// HeatLevel returns the temperature normalized for shader uniforms:
// (t-20)/30, deliberately unclamped.
func (r *ServerRecord) HeatLevel() float64 {
	return HeatLevel(r.Temperature)
}

// HeatLevel normalizes a temperature to the renderer's heat scale.
func HeatLevel(temperature float64) float64 {
	return (temperature - 20) / 30
}

// recomputeStatus derives the status from the current metrics, most severe
// rule first. Pure per-record; no cross-record coupling.
func (r *ServerRecord) recomputeStatus() {
	switch {
	case r.Temperature > temperatureError || r.CPUUsage > cpuError || r.MemoryUsage > memoryError:
		r.Status = StatusError
	case r.Temperature > temperatureWarn || r.CPUUsage > cpuWarn || r.MemoryUsage > memoryWarn:
		r.Status = StatusWarning
	default:
		r.Status = StatusNormal
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
