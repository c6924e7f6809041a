package domain

// Command is a room-scoped intent. Every command against the same
// room is applied by that room's single worker, which is what keeps
// sequence assignment and the share slot race free.
type Command interface {
	Room() RoomID
}

type JoinRoomCommand struct {
	RoomID        RoomID
	ParticipantID string
	DisplayName   string
}

func (c JoinRoomCommand) Room() RoomID { return c.RoomID }

type LeaveRoomCommand struct {
	RoomID        RoomID
	ParticipantID string
}

func (c LeaveRoomCommand) Room() RoomID { return c.RoomID }

type SetPresenceCommand struct {
	RoomID        RoomID
	ParticipantID string
	Presence      Presence
}

func (c SetPresenceCommand) Room() RoomID { return c.RoomID }

type PostMessageCommand struct {
	RoomID   RoomID
	SenderID string
	Body     string
}

func (c PostMessageCommand) Room() RoomID { return c.RoomID }

type PostSystemMessageCommand struct {
	RoomID RoomID
	Body   string
}

func (c PostSystemMessageCommand) Room() RoomID { return c.RoomID }

type StartShareCommand struct {
	RoomID  RoomID
	OwnerID string
}

func (c StartShareCommand) Room() RoomID { return c.RoomID }

// GrantShareCommand carries the outcome of the external capture
// acquisition back into the room.
type GrantShareCommand struct {
	RoomID RoomID
	Ticket Ticket
	Handle CaptureHandle
}

func (c GrantShareCommand) Room() RoomID { return c.RoomID }

type DenyShareCommand struct {
	RoomID RoomID
	Ticket Ticket
	Reason string
}

func (c DenyShareCommand) Room() RoomID { return c.RoomID }

type StopShareCommand struct {
	RoomID  RoomID
	OwnerID string
}

func (c StopShareCommand) Room() RoomID { return c.RoomID }

// ShareEndedCommand is the capture-source-ended signal: the share dies
// without an owner check because the signal comes from the owner's own
// device.
type ShareEndedCommand struct {
	RoomID RoomID
}

func (c ShareEndedCommand) Room() RoomID { return c.RoomID }

// ExpireShareCommand is scheduled internally when a ticket is issued;
// it is a no-op unless the ticket still names the pending request.
type ExpireShareCommand struct {
	RoomID RoomID
	Ticket Ticket
}

func (c ExpireShareCommand) Room() RoomID { return c.RoomID }

type AckShareErrorCommand struct {
	RoomID RoomID
}

func (c AckShareErrorCommand) Room() RoomID { return c.RoomID }

// Read commands travel the same channel as mutations so their
// snapshots are consistent as of the last completed mutation.

type GetHistoryCommand struct {
	RoomID RoomID
}

func (c GetHistoryCommand) Room() RoomID { return c.RoomID }

type GetParticipantsCommand struct {
	RoomID RoomID
}

func (c GetParticipantsCommand) Room() RoomID { return c.RoomID }

type GetShareCommand struct {
	RoomID RoomID
}

func (c GetShareCommand) Room() RoomID { return c.RoomID }
