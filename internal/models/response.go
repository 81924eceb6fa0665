package models

import (
	"github.com/bytebitgo/rackview/internal/panel"
	"github.com/bytebitgo/rackview/internal/picking"
	"github.com/bytebitgo/rackview/internal/scene"
	"github.com/bytebitgo/rackview/internal/telemetry"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// TargetView represents a resolved interaction target
type TargetView struct {
	Kind      string `json:"kind"` // none | rack | server
	RackIndex int    `json:"rack_index,omitempty"`
	ServerID  string `json:"server_id,omitempty"`
}

// NewTargetView converts a picking target to its wire form
func NewTargetView(t picking.Target) TargetView {
	switch {
	case t.IsRack():
		return TargetView{Kind: "rack", RackIndex: t.RackIndex}
	case t.IsServer():
		return TargetView{Kind: "server", ServerID: t.ServerID}
	default:
		return TargetView{Kind: "none"}
	}
}

// EffectView represents one visual effect emitted by an interaction
type EffectView struct {
	Effect    string `json:"effect"` // enter | leave | select | deselect
	Kind      string `json:"kind"`   // rack | server
	RackIndex int    `json:"rack_index,omitempty"`
	ServerID  string `json:"server_id,omitempty"`
}

// InteractionResponse represents the outcome of a pointer event
type InteractionResponse struct {
	Target   TargetView   `json:"target"`
	Distance float64      `json:"distance"`
	Hit      bool         `json:"hit"`
	Effects  []EffectView `json:"effects"`
	Panel    panel.View   `json:"panel"`
}

// InteractionStateResponse represents current hover/selection state
type InteractionStateResponse struct {
	Hovered  TargetView `json:"hovered"`
	Selected TargetView `json:"selected"`
}

// TopologyResponse represents the fixed rack/slot layout
type TopologyResponse struct {
	Racks        int      `json:"racks"`
	SlotsPerRack int      `json:"slots_per_rack"`
	ServerCount  int      `json:"server_count"`
	Brands       []string `json:"brands"`
	ServerIDs    []string `json:"server_ids"`
}

// SceneResponse represents the pickable scene graph
type SceneResponse struct {
	Nodes []scene.Node `json:"nodes"`
}

// ServerRecordView represents one server's telemetry on the wire
type ServerRecordView struct {
	ID          string           `json:"id"`
	Rack        int              `json:"rack"`
	Slot        int              `json:"slot"`
	Brand       string           `json:"brand"`
	Temperature float64          `json:"temperature"`
	CPUUsage    float64          `json:"cpu_usage"`
	MemoryUsage float64          `json:"memory_usage"`
	HeatLevel   float64          `json:"heat_level"`
	Status      telemetry.Status `json:"status"`
}

// ServerListResponse represents list servers response
type ServerListResponse struct {
	Servers []ServerRecordView `json:"servers"`
	Count   int                `json:"count"`
}

// RackResponse represents one rack's roster
type RackResponse struct {
	Rack    int                `json:"rack"`
	Servers []ServerRecordView `json:"servers"`
}

// StatusSummaryResponse represents the fleet-wide status distribution
type StatusSummaryResponse struct {
	Tick     uint64         `json:"tick"`
	Statuses map[string]int `json:"statuses"`
}

// TickResponse represents a manual tick response
type TickResponse struct {
	Tick     uint64         `json:"tick"`
	Statuses map[string]int `json:"statuses"`
}
