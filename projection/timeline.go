// Package projection builds local read models from observed events.
// Handles ordering and projections.
// Does not emit events or interact with transports directly.
package projection

import (
	"context"
	"sync"

	"watchroom/domain"
	"watchroom/domain/event"
)

// Timeline keeps an in-memory per-room copy of the message stream, in
// the order the events arrived. Because events are published in
// mutation order, each room's slice is sorted by sequence.
type Timeline struct {
	mu       sync.RWMutex
	messages map[domain.RoomID][]domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{
		messages: make(map[domain.RoomID][]domain.Message),
	}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageAppended:
		t.mu.Lock()
		t.messages[evt.Room] = append(t.messages[evt.Room], evt.Message)
		t.mu.Unlock()
	}
	return nil
}

// Messages returns the room's projected timeline, oldest first.
func (t *Timeline) Messages(room domain.RoomID) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages[room]))
	copy(out, t.messages[room])
	return out
}

// Len reports how many messages the room's timeline holds.
func (t *Timeline) Len(room domain.RoomID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages[room])
}
