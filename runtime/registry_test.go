package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"watchroom/domain/event"
)

type recordingSink struct {
	events []event.DomainEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.events = append(s.events, e)
	return nil
}

func Test_Registry_Routes_Sinks_Per_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	aliceSink := &recordingSink{}
	bobSink := &recordingSink{}
	carolSink := &recordingSink{}

	// Given alice and bob in r1, carol in r2
	registry.Subscribe("alice", "r1", aliceSink)
	registry.Subscribe("bob", "r1", bobSink)
	registry.Subscribe("carol", "r2", carolSink)

	// Then r1 resolves exactly its two sinks
	req.Len(registry.GetSinksForRoom("r1"), 2)
	req.Len(registry.GetSinksForRoom("r2"), 1)
	req.Nil(registry.GetSinksForRoom("nope"))
	req.Equal(3, registry.CountSessions())
}

func Test_Registry_Unsubscribe_Cleans_Up(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Subscribe("alice", "r1", &recordingSink{})
	registry.Subscribe("bob", "r1", &recordingSink{})

	// When alice disconnects
	registry.Unsubscribe("alice", "r1")

	req.Len(registry.GetSinksForRoom("r1"), 1)
	req.Equal(1, registry.CountSessions())

	// When the last member disconnects the room entry disappears
	registry.Unsubscribe("bob", "r1")
	req.Nil(registry.GetSinksForRoom("r1"))
	req.Zero(registry.CountSessions())

	// Unsubscribing an unknown participant is harmless
	registry.Unsubscribe("ghost", "r1")
}

func Test_Registry_Resubscribe_Replaces_The_Sink(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	old := &recordingSink{}
	fresh := &recordingSink{}

	// Given a reconnect replacing the connection
	registry.Subscribe("alice", "r1", old)
	registry.Subscribe("alice", "r1", fresh)

	sinks := registry.GetSinksForRoom("r1")
	req.Len(sinks, 1)
	req.Same(fresh, sinks[0].(*recordingSink))
	req.Equal(1, registry.CountSessions())
}
