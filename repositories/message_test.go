package repositories

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	db "github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"watchroom/domain"
)

func archived(room domain.RoomID, sequence uint64, body string) ArchivedMessage {
	return ArchivedMessage{
		ID:       uuid.New(),
		Room:     room,
		Sender:   "alice",
		Body:     body,
		Sequence: sequence,
		At:       time.Now().UTC().Truncate(time.Millisecond),
		Lang:     "en",
	}
}

func Test_MessageRepository_Store_And_Get(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewMessageRepository(badgerDB, log, nil)

	// Given three archived messages in one room
	for seq := uint64(1); seq <= 3; seq++ {
		req.NoError(repo.StoreMessage(archived("r1", seq, fmt.Sprintf("message %d", seq))))
	}

	// When fetching without a cursor
	messages, cursor, err := repo.GetMessages("r1", nil)
	req.NoError(err)

	// Then messages come back newest first
	req.Len(messages, 3)
	req.NotNil(cursor)
	req.Equal(uint64(3), messages[0].Sequence)
	req.Equal(uint64(2), messages[1].Sequence)
	req.Equal(uint64(1), messages[2].Sequence)
	req.Equal("message 3", messages[0].Body)
	req.Equal("en", messages[0].Lang)
}

func Test_MessageRepository_Rooms_Are_Isolated(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewMessageRepository(badgerDB, log, nil)

	req.NoError(repo.StoreMessage(archived("r1", 1, "in r1")))
	req.NoError(repo.StoreMessage(archived("r2", 1, "in r2")))

	messages, _, err := repo.GetMessages("r1", nil)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("in r1", messages[0].Body)

	// An unknown room yields nothing, not an error
	messages, cursor, err := repo.GetMessages("nope", nil)
	req.NoError(err)
	req.Nil(messages)
	req.Nil(cursor)
}

func Test_MessageRepository_Pagination(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	// Given a page size of 2 and five stored messages
	repo := NewMessageRepository(badgerDB, log, lo.ToPtr(2))
	for seq := uint64(1); seq <= 5; seq++ {
		req.NoError(repo.StoreMessage(archived("r1", seq, fmt.Sprintf("message %d", seq))))
	}

	// When walking the pages with the returned cursor
	var collected []uint64
	var cursor *string
	for {
		page, next, err := repo.GetMessages("r1", cursor)
		req.NoError(err)
		if len(page) == 0 {
			break
		}
		for _, m := range page {
			collected = append(collected, m.Sequence)
		}
		req.LessOrEqual(len(page), 2)
		cursor = next
	}

	// Then the walk covers every message exactly once, newest first
	req.Equal([]uint64{5, 4, 3, 2, 1}, collected)
}

func Test_MessageRepository_Runs_On_An_In_Memory_Store(t *testing.T) {
	req := require.New(t)

	// Given the production open mode: no directory, nothing on disk
	badgerDB, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer badgerDB.Close()

	repo := NewMessageRepository(badgerDB, slog.Default(), nil)
	req.NoError(repo.StoreMessage(archived("r1", 1, "ephemeral")))

	messages, _, err := repo.GetMessages("r1", nil)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("ephemeral", messages[0].Body)
}

func Test_FromMessage_Maps_All_Fields(t *testing.T) {
	req := require.New(t)

	msg := domain.Message{
		ID:        uuid.New(),
		SenderID:  "alice",
		Body:      "hello",
		Sequence:  7,
		Timestamp: time.Now().UTC(),
		Lang:      "en",
	}

	got := FromMessage("r1", msg)
	req.Equal(msg.ID, got.ID)
	req.Equal(domain.RoomID("r1"), got.Room)
	req.Equal("alice", got.Sender)
	req.Equal("hello", got.Body)
	req.Equal(uint64(7), got.Sequence)
	req.Equal(msg.Timestamp, got.At)
	req.Equal("en", got.Lang)
}
