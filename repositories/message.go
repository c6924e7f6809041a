//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"watchroom/domain"
)

type IMessageRepository interface {
	StoreMessage(message ArchivedMessage) error
	GetMessages(room domain.RoomID, cursor *string) ([]ArchivedMessage, *string, error)
}

// MessageRepository archives appended messages in BadgerDB. It is a
// read model fed by the event stream; the in-room log stays the source
// of truth for sequence assignment.
type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

type ArchivedMessage struct {
	ID       uuid.UUID     `json:"id"`
	Room     domain.RoomID `json:"room"`
	Sender   string        `json:"sender"`
	Body     string        `json:"body"`
	Sequence uint64        `json:"sequence"`
	At       time.Time     `json:"at"`
	Lang     string        `json:"lang,omitempty"`
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "msg:{room_id}:{sequence_padded}:{uuid}" to:
//  1. Ensure sequence sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector should
//     two rooms ever share a key prefix by misconfiguration.
func (m MessageRepository) StoreMessage(message ArchivedMessage) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.Room,
		message.Sequence,
		message.ID,
	)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		err = txn.Set([]byte(key), bytes)
		return err
	})
}

// GetMessages retrieves messages for a specific room using a prefix scan.
// Thanks to the padded sequence in the key, messages are naturally sorted.
// The scan runs newest first; the cursor is the key suffix of the last
// returned entry and resumes the scan on the next page.
// It stops collecting messages once the configured limitMessages is reached.
func (m MessageRepository) GetMessages(room domain.RoomID, cursor *string) ([]ArchivedMessage, *string, error) {
	var byteMessages [][]byte
	var archived []ArchivedMessage
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", room)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the highest possible sequence, then walk back
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(byteMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, b := range byteMessages {
		var message ArchivedMessage
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, nil, err
		}
		archived = append(archived, message)
	}
	if len(archived) == 0 {
		return nil, nil, nil
	}
	return archived, &lastKey, err
}

// FromMessage maps a domain message into its archive form.
func FromMessage(room domain.RoomID, msg domain.Message) ArchivedMessage {
	return ArchivedMessage{
		ID:       msg.ID,
		Room:     room,
		Sender:   msg.SenderID,
		Body:     msg.Body,
		Sequence: msg.Sequence,
		At:       msg.Timestamp,
		Lang:     msg.Lang,
	}
}
