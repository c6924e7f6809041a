// Package ws exposes the room session over a websocket JSON protocol.
// Client intents arrive as frames; room events leave as frames of the
// same shape, so a session is a single bidirectional stream.
package ws

import (
	"encoding/json"
	"time"

	"watchroom/domain"
	"watchroom/domain/event"
	"watchroom/repositories"
)

// Frame is the wire envelope in both directions. Type names the intent
// or event; Payload is the type-specific body.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client intent types.
const (
	IntentMessagePost  = "message.post"
	IntentShareStart   = "share.start"
	IntentShareGranted = "share.granted"
	IntentShareDenied  = "share.denied"
	IntentShareStop    = "share.stop"
	IntentShareEnded   = "share.ended"
	IntentShareAck     = "share.ack"
	IntentPresenceSet  = "presence.set"
	IntentHistoryGet   = "history.get"
	IntentWho          = "who"
	IntentSearch       = "search"
)

// Server reply types not derived from domain events.
const (
	TypeError       = "error"
	TypeShareTicket = "share.ticket"
	TypeHistory     = "history"
	TypeWho         = "who.result"
	TypeSearch      = "search.result"
)

type MessagePostPayload struct {
	Body string `json:"body"`
}

type ShareGrantedPayload struct {
	Ticket string `json:"ticket"`
	Handle string `json:"handle"`
}

type ShareDeniedPayload struct {
	Ticket string `json:"ticket"`
	Reason string `json:"reason"`
}

type PresenceSetPayload struct {
	Presence string `json:"presence"`
}

type SearchPayload struct {
	Query  string `json:"query"`
	Offset int    `json:"offset"`
}

// SearchResultPayload carries one page of full-text hits plus the
// total match count for pagination.
type SearchResultPayload struct {
	Total uint64                         `json:"total"`
	Hits  []repositories.ArchivedMessage `json:"hits"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type ShareTicketPayload struct {
	Ticket string `json:"ticket"`
}

// ParticipantPayload mirrors domain.Participant on the wire.
type ParticipantPayload struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Presence    string    `json:"presence"`
	JoinedAt    time.Time `json:"joined_at"`
}

// MessagePayload mirrors domain.Message on the wire.
type MessagePayload struct {
	ID       string    `json:"id"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	Sequence uint64    `json:"sequence"`
	At       time.Time `json:"at"`
	Lang     string    `json:"lang,omitempty"`
}

// SharePayload mirrors the share slot snapshot on the wire.
type SharePayload struct {
	OwnerID string `json:"owner_id,omitempty"`
	State   string `json:"state"`
	Handle  string `json:"handle,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func toParticipantPayload(p domain.Participant) ParticipantPayload {
	return ParticipantPayload{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Presence:    string(p.Presence),
		JoinedAt:    p.JoinedAt,
	}
}

func toMessagePayload(m domain.Message) MessagePayload {
	return MessagePayload{
		ID:       m.ID.String(),
		SenderID: m.SenderID,
		Body:     m.Body,
		Sequence: m.Sequence,
		At:       m.Timestamp,
		Lang:     m.Lang,
	}
}

func toSharePayload(s domain.ScreenShareSession) SharePayload {
	return SharePayload{
		OwnerID: s.OwnerID,
		State:   string(s.State),
		Handle:  string(s.Handle),
		Reason:  s.Reason,
	}
}

// NewFrame marshals a payload under the given type.
func NewFrame(frameType string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: frameType, Payload: raw}, nil
}

// EventFrame maps a domain event to its wire frame. The frame type is
// the event name, so subscribers switch on one discriminator.
func EventFrame(e event.DomainEvent) (Frame, error) {
	switch evt := e.(type) {
	case event.ParticipantJoined:
		return NewFrame(evt.Name(), toParticipantPayload(evt.Participant))
	case event.ParticipantLeft:
		return NewFrame(evt.Name(), toParticipantPayload(evt.Participant))
	case event.PresenceChanged:
		return NewFrame(evt.Name(), toParticipantPayload(evt.Participant))
	case event.MessageAppended:
		return NewFrame(evt.Name(), toMessagePayload(evt.Message))
	case event.ScreenShareStateChanged:
		return NewFrame(evt.Name(), toSharePayload(evt.Session))
	default:
		return NewFrame(e.Name(), struct{}{})
	}
}
