// Package domain contains core concepts of the room session.
// This file defines Message and the append-only log.
// Messages are immutable once appended.
package domain

import (
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"

	"watchroom/errors"
)

// SystemSenderID is the reserved pseudo-participant used for
// room-generated informational messages.
const SystemSenderID = "system"

// Message is an immutable chat entry. Sequence is the sole sort key;
// Timestamp is informational only and never used for ordering, so
// clock skew cannot reorder the conversation.
type Message struct {
	ID        uuid.UUID
	SenderID  string
	Body      string
	Sequence  uint64
	Timestamp time.Time
	Lang      string // ISO 639-1 code of the detected language, may be empty
}

func (m Message) IsSystem() bool { return m.SenderID == SystemSenderID }

// MessageLog is the append-only record of a room's messages.
// Sequence numbers start at 1 and increase by exactly 1 per append;
// they are assigned here and never supplied by callers.
type MessageLog struct {
	nextSeq  uint64
	messages []Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

func (l *MessageLog) append(senderID, body, lang string) Message {
	l.nextSeq++
	msg := Message{
		ID:        uuid.New(),
		SenderID:  senderID,
		Body:      body,
		Sequence:  l.nextSeq,
		Timestamp: time.Now().UTC(),
		Lang:      lang,
	}
	l.messages = append(l.messages, msg)
	return msg
}

// History yields all messages in ascending sequence order. The
// sequence is lazy and restartable, over a snapshot taken when
// History returns: appends that happen later are not visible to it,
// and past entries are never mutated.
func (l *MessageLog) History() iter.Seq[Message] {
	snapshot := l.messages
	return func(yield func(Message) bool) {
		for _, m := range snapshot {
			if !yield(m) {
				return
			}
		}
	}
}

func (l *MessageLog) Len() int { return len(l.messages) }

// trimBody normalizes a candidate body, returning ErrEmptyBody when
// nothing remains.
func trimBody(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", errors.ErrEmptyBody
	}
	return trimmed, nil
}
