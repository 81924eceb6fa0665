package events

import (
	"context"
	"fmt"
	"sync"
)

// memoryBufferSize is the per-subject channel capacity. Frames are small and
// consumers are local, so a modest buffer absorbs slow subscribers without
// ever blocking the simulation tick.
const memoryBufferSize = 1024

// MemoryBus implements Bus with in-process channels. It is the default
// backend: a single-viewer session needs no external broker.
type MemoryBus struct {
	channels      map[string]chan []byte
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newMemoryBus creates a new in-memory bus.
func newMemoryBus() *MemoryBus {
	return &MemoryBus{
		channels:      make(map[string]chan []byte),
		subscriptions: make(map[string]context.CancelFunc),
	}
}

func (b *MemoryBus) getOrCreateChannel(subject string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.channels[subject]; exists {
		return ch
	}
	ch := make(chan []byte, memoryBufferSize)
	b.channels[subject] = ch
	return ch
}

// Publish delivers a message to the subject's channel. The data is copied so
// callers may reuse their buffer.
func (b *MemoryBus) Publish(ctx context.Context, subject string, data []byte) error {
	ch := b.getOrCreateChannel(subject)

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case ch <- dataCopy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("channel full for subject: %s", subject)
	}
}

// Subscribe consumes the subject's channel with handler in a background
// goroutine. One subscription per subject.
func (b *MemoryBus) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	if _, exists := b.subscriptions[subject]; exists {
		b.mu.Unlock()
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}
	b.mu.Unlock()

	ch := b.getOrCreateChannel(subject)
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.subscriptions[subject] = cancel
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-ch:
				if !ok {
					return
				}
				// Handler errors are the consumer's problem; keep draining.
				_ = handler(data)
			}
		}
	}()

	return nil
}

// Unsubscribe stops the subject's consumer goroutine.
func (b *MemoryBus) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cancel, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}
	cancel()
	delete(b.subscriptions, subject)
	return nil
}

// Close cancels all subscriptions and closes all channels.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subject, cancel := range b.subscriptions {
		cancel()
		delete(b.subscriptions, subject)
	}
	for subject, ch := range b.channels {
		close(ch)
		delete(b.channels, subject)
	}
	return nil
}

// Pending returns the number of undelivered messages for a subject. Used by
// tests.
func (b *MemoryBus) Pending(subject string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, exists := b.channels[subject]; exists {
		return len(ch)
	}
	return 0
}
