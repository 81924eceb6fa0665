package events

import (
	"context"
	"testing"
	"time"

	"github.com/bytebitgo/rackview/internal/config"
)

func TestNewBus_DefaultsToMemory(t *testing.T) {
	bus, err := NewBus(config.BusConfig{})
	if err != nil {
		t.Fatalf("NewBus with empty type failed: %v", err)
	}
	defer func() { _ = bus.Close() }()

	if _, ok := bus.(*MemoryBus); !ok {
		t.Errorf("Expected *MemoryBus, got %T", bus)
	}
}

func TestNewBus_Memory(t *testing.T) {
	bus, err := NewBus(config.BusConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewBus failed: %v", err)
	}
	defer func() { _ = bus.Close() }()

	if _, ok := bus.(*MemoryBus); !ok {
		t.Errorf("Expected *MemoryBus, got %T", bus)
	}
}

func TestNewBus_TypeCaseInsensitive(t *testing.T) {
	bus, err := NewBus(config.BusConfig{Type: "Memory"})
	if err != nil {
		t.Fatalf("NewBus failed: %v", err)
	}
	defer func() { _ = bus.Close() }()
}

func TestNewBus_UnsupportedType(t *testing.T) {
	bus, err := NewBus(config.BusConfig{Type: "carrier-pigeon"})
	if err == nil {
		_ = bus.Close()
		t.Fatal("Expected error for unsupported bus type")
	}
}

func TestMemoryBus_PublishSubscribeRoundTrip(t *testing.T) {
	bus, err := NewBus(config.BusConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewBus failed: %v", err)
	}
	defer func() { _ = bus.Close() }()

	received := make(chan string, 1)
	if err := bus.Subscribe("roundtrip", func(data []byte) error {
		received <- string(data)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := bus.Publish(context.Background(), "roundtrip", []byte("payload")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got != "payload" {
			t.Errorf("Expected 'payload', got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
	}
}
