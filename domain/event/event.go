// Package event defines the notifications the room core emits.
// This is the sole channel the presentation layer uses to stay in
// sync, and the shape a network transport would serialize.
package event

import (
	"watchroom/domain"
)

// DomainEvent is a room-scoped state-change notification, delivered
// to subscribers in the order the underlying mutations occurred.
type DomainEvent interface {
	RoomID() domain.RoomID
	Name() string
}

type ParticipantJoined struct {
	Room        domain.RoomID
	Participant domain.Participant
}

func (e ParticipantJoined) RoomID() domain.RoomID { return e.Room }
func (e ParticipantJoined) Name() string          { return "participant.joined" }

type ParticipantLeft struct {
	Room        domain.RoomID
	Participant domain.Participant
}

func (e ParticipantLeft) RoomID() domain.RoomID { return e.Room }
func (e ParticipantLeft) Name() string          { return "participant.left" }

type PresenceChanged struct {
	Room        domain.RoomID
	Participant domain.Participant
}

func (e PresenceChanged) RoomID() domain.RoomID { return e.Room }
func (e PresenceChanged) Name() string          { return "presence.changed" }

type MessageAppended struct {
	Room    domain.RoomID
	Message domain.Message
}

func (e MessageAppended) RoomID() domain.RoomID { return e.Room }
func (e MessageAppended) Name() string          { return "message.appended" }

type ScreenShareStateChanged struct {
	Room    domain.RoomID
	Session domain.ScreenShareSession
}

func (e ScreenShareStateChanged) RoomID() domain.RoomID { return e.Room }
func (e ScreenShareStateChanged) Name() string          { return "share.state" }
