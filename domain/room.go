package domain

import (
	"fmt"
	"iter"
	"time"

	"watchroom/errors"
)

// WelcomeBody seeds every new room's log.
const WelcomeBody = "Welcome to WatcherMy! Start chatting or share your screen."

// Room is the aggregate composing the participant registry, the
// message log, and the screen-share slot. Every mutating operation
// goes through it so the invariants are enforced in one place; each
// operation either fully applies or leaves no trace.
//
// Room is not safe for concurrent use. A single room worker owns each
// instance and serializes all calls (see runtime/workers).
type Room struct {
	id        RoomID
	createdAt time.Time
	registry  *Registry
	log       *MessageLog
	share     *ShareManager
}

func NewRoom(id RoomID) *Room {
	return &Room{
		id:        id,
		createdAt: time.Now().UTC(),
		registry:  NewRegistry(),
		log:       NewMessageLog(),
		share:     NewShareManager(),
	}
}

func (r *Room) ID() RoomID { return r.id }

func (r *Room) CreatedAt() time.Time { return r.createdAt }

// AddParticipant joins a participant with presence Active.
func (r *Room) AddParticipant(id, displayName string) (Participant, error) {
	return r.registry.Join(id, displayName)
}

// LeaveResult describes everything a removal touched: the share slot
// is force-stopped in the same atomic operation when the departing
// participant owned it, so no Active session survives without owner.
type LeaveResult struct {
	Participant  Participant
	Left         bool
	Share        ScreenShareSession
	ShareStopped bool
	Notice       *Message
}

// RemoveParticipant removes a participant; idempotent. If the
// departing participant owns the Requesting or Active share, the slot
// is torn down as part of the removal and a system notice is logged.
func (r *Room) RemoveParticipant(id string) LeaveResult {
	p, left := r.registry.Leave(id)
	res := LeaveResult{Participant: p, Left: left}
	if !left {
		return res
	}
	share, stopped := r.share.ForceStop(id)
	res.Share = share
	res.ShareStopped = stopped
	if stopped {
		notice := r.log.append(SystemSenderID, fmt.Sprintf("%s stopped sharing.", p.DisplayName), "")
		res.Notice = &notice
	}
	return res
}

// SetPresence records an externally signaled presence change.
func (r *Room) SetPresence(id string, presence Presence) (Participant, error) {
	if !ValidPresence(presence) {
		return Participant{}, errors.ErrInvalidPresence
	}
	return r.registry.SetPresence(id, presence)
}

// AppendMessage validates and appends a participant message,
// returning it fully populated (id and sequence assigned). A departed
// sender is rejected even though their past messages remain valid.
func (r *Room) AppendMessage(senderID, body, lang string) (Message, error) {
	trimmed, err := trimBody(body)
	if err != nil {
		return Message{}, err
	}
	if senderID != SystemSenderID && !r.registry.Has(senderID) {
		return Message{}, errors.ErrUnknownSender
	}
	return r.log.append(senderID, trimmed, lang), nil
}

// AppendSystemMessage appends a room-generated message from the
// reserved system sender.
func (r *Room) AppendSystemMessage(body string) (Message, error) {
	trimmed, err := trimBody(body)
	if err != nil {
		return Message{}, err
	}
	return r.log.append(SystemSenderID, trimmed, ""), nil
}

// ShareResult pairs a share transition with the system notice it
// logged, if any.
type ShareResult struct {
	Ticket  Ticket
	Session ScreenShareSession
	Changed bool
	Notice  *Message
}

// RequestShare reserves the share slot for a current participant.
func (r *Room) RequestShare(ownerID string) (ShareResult, error) {
	if !r.registry.Has(ownerID) {
		return ShareResult{}, errors.ErrUnknownParticipant
	}
	ticket, session, err := r.share.RequestStart(ownerID)
	if err != nil {
		return ShareResult{Session: session}, err
	}
	return ShareResult{Ticket: ticket, Session: session, Changed: true}, nil
}

// ConfirmShare binds the granted capture handle and announces the
// share to the room.
func (r *Room) ConfirmShare(ticket Ticket, handle CaptureHandle) (ShareResult, error) {
	session, err := r.share.ConfirmActive(ticket, handle)
	if err != nil {
		return ShareResult{Session: session}, err
	}
	res := ShareResult{Session: session, Changed: true}
	if p, ok := r.registry.Get(session.OwnerID); ok {
		notice := r.log.append(SystemSenderID, fmt.Sprintf("%s started sharing their screen.", p.DisplayName), "")
		res.Notice = &notice
	}
	return res, nil
}

// FailShare resolves a pending request as denied or failed.
func (r *Room) FailShare(ticket Ticket, reason string) (ShareResult, error) {
	session, err := r.share.ReportFailure(ticket, reason)
	if err != nil {
		return ShareResult{Session: session}, err
	}
	return ShareResult{Session: session, Changed: true}, nil
}

// StopShare tears down the Active share on the owner's explicit stop.
// Stopping an already idle slot is a no-op.
func (r *Room) StopShare(ownerID string) (ShareResult, error) {
	before := r.share.Current()
	session, stopped, err := r.share.Stop(ownerID)
	if err != nil {
		return ShareResult{Session: session}, err
	}
	res := ShareResult{Session: session, Changed: stopped}
	if stopped {
		res.Notice = r.stopNotice(before.OwnerID)
	}
	return res, nil
}

// ShareEnded handles the externally signaled end of the capture
// source. Idempotent, no owner check.
func (r *Room) ShareEnded() ShareResult {
	before := r.share.Current()
	session, stopped := r.share.ExternalTermination()
	res := ShareResult{Session: session, Changed: stopped}
	if stopped {
		res.Notice = r.stopNotice(before.OwnerID)
	}
	return res
}

// ExpireShare times out a Requesting session whose grant never came.
func (r *Room) ExpireShare(ticket Ticket) ShareResult {
	session, expired := r.share.Expire(ticket)
	return ShareResult{Session: session, Changed: expired}
}

// AcknowledgeShareError clears a sticky Error back to Idle.
func (r *Room) AcknowledgeShareError() ShareResult {
	before := r.share.Current()
	session := r.share.AcknowledgeError()
	return ShareResult{Session: session, Changed: before.State == ShareError}
}

func (r *Room) stopNotice(ownerID string) *Message {
	name := ownerID
	if p, ok := r.registry.Get(ownerID); ok {
		name = p.DisplayName
	}
	notice := r.log.append(SystemSenderID, fmt.Sprintf("%s stopped sharing.", name), "")
	return &notice
}

// Read-side snapshots, consistent as of the last completed mutation.

func (r *Room) Participants() []Participant { return r.registry.List() }

func (r *Room) History() iter.Seq[Message] { return r.log.History() }

func (r *Room) Share() ScreenShareSession { return r.share.Current() }

func (r *Room) MessageCount() int { return r.log.Len() }
