package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MessageLog_Sequences_Are_Gapless_From_One(t *testing.T) {
	req := require.New(t)
	log := NewMessageLog()

	// When appending a batch of messages
	for i := 0; i < 50; i++ {
		log.append("alice", "hello", "")
	}

	// Then the sequence is 1..n with no gap and no duplicate
	var expected uint64
	for m := range log.History() {
		expected++
		req.Equal(expected, m.Sequence)
	}
	req.Equal(uint64(50), expected)
	req.Equal(50, log.Len())
}

func Test_MessageLog_History_Is_A_Stable_Snapshot(t *testing.T) {
	req := require.New(t)
	log := NewMessageLog()
	log.append("alice", "first", "")

	// Given a history taken before a later append
	history := log.History()
	log.append("alice", "second", "")

	// Then the snapshot does not see the later append
	count := 0
	for range history {
		count++
	}
	req.Equal(1, count)

	// And a fresh history does
	count = 0
	for range log.History() {
		count++
	}
	req.Equal(2, count)
}

func Test_MessageLog_History_Can_Be_Restarted(t *testing.T) {
	req := require.New(t)
	log := NewMessageLog()
	log.append("alice", "one", "")
	log.append("alice", "two", "")

	history := log.History()

	// When iterating twice over the same sequence
	first := 0
	for range history {
		first++
	}
	second := 0
	for range history {
		second++
	}

	// Then both passes see the full snapshot
	req.Equal(2, first)
	req.Equal(2, second)
}

func Test_Message_IsSystem(t *testing.T) {
	req := require.New(t)
	log := NewMessageLog()

	system := log.append(SystemSenderID, "welcome", "")
	user := log.append("alice", "hi", "")

	req.True(system.IsSystem())
	req.False(user.IsSystem())
}
