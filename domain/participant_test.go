package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"watchroom/errors"
)

func Test_Registry_Join_And_List_Order(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given three participants joining in order
	_, err := registry.Join("alice", "Alice")
	req.NoError(err)
	_, err = registry.Join("bob", "Bob")
	req.NoError(err)
	_, err = registry.Join("carol", "Carol")
	req.NoError(err)

	// When listing the members
	members := registry.List()

	// Then the join order is preserved and everyone is Active
	req.Len(members, 3)
	req.Equal("alice", members[0].ID)
	req.Equal("bob", members[1].ID)
	req.Equal("carol", members[2].ID)
	for _, p := range members {
		req.Equal(PresenceActive, p.Presence)
	}
}

func Test_Registry_Duplicate_Join_Is_Rejected(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, err := registry.Join("alice", "Alice")
	req.NoError(err)

	// When the same id joins again
	_, err = registry.Join("alice", "Alice Again")

	// Then the join fails and the original member is untouched
	req.ErrorIs(err, errors.ErrDuplicateParticipant)
	p, ok := registry.Get("alice")
	req.True(ok)
	req.Equal("Alice", p.DisplayName)
}

func Test_Registry_Leave_Is_Idempotent_And_Remembered(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	_, err := registry.Join("alice", "Alice")
	req.NoError(err)

	// When alice leaves twice
	p, left := registry.Leave("alice")
	req.True(left)
	req.Equal("alice", p.ID)

	_, left = registry.Leave("alice")
	req.False(left)

	// Then she is gone but still attributable
	req.False(registry.Has("alice"))
	req.True(registry.Seen("alice"))
	req.Zero(registry.Len())
}

func Test_Registry_Rejoin_Makes_Id_Current_Again(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, err := registry.Join("alice", "Alice")
	req.NoError(err)
	_, left := registry.Leave("alice")
	req.True(left)

	// When the same id joins again with a new display name
	p, err := registry.Join("alice", "Alice v2")
	req.NoError(err)

	// Then the membership is fresh
	req.Equal("Alice v2", p.DisplayName)
	req.True(registry.Has("alice"))
}

func Test_Registry_SetPresence(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	_, err := registry.Join("alice", "Alice")
	req.NoError(err)

	// When presence flips to idle
	p, err := registry.SetPresence("alice", PresenceIdle)
	req.NoError(err)
	req.Equal(PresenceIdle, p.Presence)

	// Then the change is visible on the next read
	got, ok := registry.Get("alice")
	req.True(ok)
	req.Equal(PresenceIdle, got.Presence)

	// And unknown members are rejected
	_, err = registry.SetPresence("ghost", PresenceActive)
	req.ErrorIs(err, errors.ErrUnknownParticipant)
}
