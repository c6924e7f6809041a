// Package domain contains core concepts of the room session.
// This file defines the single screen-share slot and its ticketed
// two-phase lifecycle.
package domain

import (
	"github.com/google/uuid"

	"watchroom/errors"
)

type ShareState string

const (
	ShareIdle       ShareState = "idle"
	ShareRequesting ShareState = "requesting"
	ShareActive     ShareState = "active"
	ShareError      ShareState = "error"
)

// CaptureHandle is an opaque reference to an externally owned capture
// resource. It is bound when a share becomes Active and owned
// exclusively by the share manager until teardown.
type CaptureHandle string

// Ticket correlates a start request with its eventual grant or denial.
// Single use: it dies with the Requesting state that issued it.
type Ticket string

// ScreenShareSession is a point-in-time snapshot of the share slot.
// Handle is non-empty if and only if State is Active.
type ScreenShareSession struct {
	OwnerID string
	State   ShareState
	Handle  CaptureHandle
	Reason  string // last failure reason, only meaningful in Error
}

// ShareManager owns the at-most-one screen share of a room.
//
// The slot is reserved from requestStart until the external capture
// acquisition resolves, so two participants cannot both sit on a
// pending permission prompt. A failed grant releases the slot
// immediately; an active share holds it until an explicit stop or an
// external termination signal.
type ShareManager struct {
	state   ShareState
	ownerID string
	handle  CaptureHandle
	ticket  Ticket
	reason  string
}

func NewShareManager() *ShareManager {
	return &ShareManager{state: ShareIdle}
}

// RequestStart reserves the slot and issues a ticket. Fails with
// ErrAlreadyActive while any session is Requesting or Active,
// regardless of requester. Starting from Error counts as the retry
// that clears it.
func (m *ShareManager) RequestStart(ownerID string) (Ticket, ScreenShareSession, error) {
	if m.state == ShareRequesting || m.state == ShareActive {
		return "", m.Current(), errors.ErrAlreadyActive
	}
	m.state = ShareRequesting
	m.ownerID = ownerID
	m.handle = ""
	m.reason = ""
	m.ticket = Ticket(uuid.NewString())
	return m.ticket, m.Current(), nil
}

// ConfirmActive resolves a pending request with a granted capture
// handle, binding it to the now-Active session.
func (m *ShareManager) ConfirmActive(ticket Ticket, handle CaptureHandle) (ScreenShareSession, error) {
	if m.state != ShareRequesting || ticket == "" || ticket != m.ticket {
		return m.Current(), errors.ErrInvalidTicket
	}
	if handle == "" {
		return m.Current(), errors.ErrNoCaptureHandle
	}
	m.state = ShareActive
	m.handle = handle
	m.ticket = ""
	return m.Current(), nil
}

// ReportFailure resolves a pending request as denied or failed. The
// slot is released immediately so a retry does not have to wait for an
// explicit reset; the Error state sticks around only as information.
func (m *ShareManager) ReportFailure(ticket Ticket, reason string) (ScreenShareSession, error) {
	if m.state != ShareRequesting || ticket == "" || ticket != m.ticket {
		return m.Current(), errors.ErrInvalidTicket
	}
	m.state = ShareError
	m.reason = reason
	m.handle = ""
	m.ticket = ""
	return m.Current(), nil
}

// Stop tears down the Active session. Only the owner may stop it.
// Stopping when nothing is active is a no-op, not an error.
func (m *ShareManager) Stop(ownerID string) (ScreenShareSession, bool, error) {
	if m.state != ShareActive {
		return m.Current(), false, nil
	}
	if ownerID != m.ownerID {
		return m.Current(), false, errors.ErrNotOwner
	}
	m.release()
	return m.Current(), true, nil
}

// ExternalTermination handles the capture source ending itself (the
// user clicked the native "stop sharing" control). No owner check: the
// signal originates from the owner's own device. Idempotent.
func (m *ShareManager) ExternalTermination() (ScreenShareSession, bool) {
	if m.state != ShareActive {
		return m.Current(), false
	}
	m.release()
	return m.Current(), true
}

// ForceStop clears the slot regardless of state, used when the owner
// leaves the room while Requesting or Active. Returns true if a
// Requesting or Active session was torn down.
func (m *ShareManager) ForceStop(ownerID string) (ScreenShareSession, bool) {
	if m.ownerID != ownerID || (m.state != ShareActive && m.state != ShareRequesting) {
		return m.Current(), false
	}
	m.release()
	return m.Current(), true
}

// AcknowledgeError returns the slot from Error to Idle.
func (m *ShareManager) AcknowledgeError() ScreenShareSession {
	if m.state == ShareError {
		m.release()
	}
	return m.Current()
}

// Expire resolves a Requesting session whose external grant never
// arrived. Only fires if ticket still names the pending request;
// otherwise it is a stale timer and a no-op.
func (m *ShareManager) Expire(ticket Ticket) (ScreenShareSession, bool) {
	if m.state != ShareRequesting || ticket == "" || ticket != m.ticket {
		return m.Current(), false
	}
	m.state = ShareError
	m.reason = "share request timed out"
	m.handle = ""
	m.ticket = ""
	return m.Current(), true
}

func (m *ShareManager) release() {
	m.state = ShareIdle
	m.ownerID = ""
	m.handle = ""
	m.ticket = ""
	m.reason = ""
}

// Current returns a snapshot consistent with the slot invariants.
func (m *ShareManager) Current() ScreenShareSession {
	return ScreenShareSession{
		OwnerID: m.ownerID,
		State:   m.state,
		Handle:  m.handle,
		Reason:  m.reason,
	}
}
