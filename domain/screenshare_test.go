package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"watchroom/errors"
)

func Test_ShareManager_Full_Lifecycle(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	// Given an idle slot
	req.Equal(ShareIdle, m.Current().State)

	// When alice requests a share
	ticket, session, err := m.RequestStart("alice")
	req.NoError(err)
	req.NotEmpty(ticket)
	req.Equal(ShareRequesting, session.State)
	req.Equal("alice", session.OwnerID)
	req.Empty(session.Handle)

	// And the external grant arrives
	session, err = m.ConfirmActive(ticket, "capture-1")
	req.NoError(err)
	req.Equal(ShareActive, session.State)
	req.Equal(CaptureHandle("capture-1"), session.Handle)

	// Then only the owner may stop it
	_, _, err = m.Stop("bob")
	req.ErrorIs(err, errors.ErrNotOwner)

	session, stopped, err := m.Stop("alice")
	req.NoError(err)
	req.True(stopped)
	req.Equal(ShareIdle, session.State)
	req.Empty(session.OwnerID)
	req.Empty(session.Handle)
}

func Test_ShareManager_Slot_Is_Reserved_While_Requesting(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	_, _, err := m.RequestStart("alice")
	req.NoError(err)

	// When bob requests while alice's prompt is pending
	_, session, err := m.RequestStart("bob")

	// Then the slot stays reserved for alice
	req.ErrorIs(err, errors.ErrAlreadyActive)
	req.Equal("alice", session.OwnerID)
	req.Equal(ShareRequesting, session.State)
}

func Test_ShareManager_Confirm_Requires_The_Pending_Ticket(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)

	// A foreign or empty ticket resolves nothing
	_, err = m.ConfirmActive("not-the-ticket", "capture-1")
	req.ErrorIs(err, errors.ErrInvalidTicket)
	_, err = m.ConfirmActive("", "capture-1")
	req.ErrorIs(err, errors.ErrInvalidTicket)

	// A grant without a handle is invalid
	_, err = m.ConfirmActive(ticket, "")
	req.ErrorIs(err, errors.ErrNoCaptureHandle)

	// The real ticket is single use
	_, err = m.ConfirmActive(ticket, "capture-1")
	req.NoError(err)
	_, err = m.ConfirmActive(ticket, "capture-1")
	req.ErrorIs(err, errors.ErrInvalidTicket)
}

func Test_ShareManager_Denied_Request_Frees_The_Slot(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)

	// When the permission prompt is denied
	session, err := m.ReportFailure(ticket, "permission denied")
	req.NoError(err)
	req.Equal(ShareError, session.State)
	req.Equal("permission denied", session.Reason)

	// Then a retry does not need an explicit reset
	_, session, err = m.RequestStart("bob")
	req.NoError(err)
	req.Equal(ShareRequesting, session.State)
	req.Equal("bob", session.OwnerID)
	req.Empty(session.Reason)
}

func Test_ShareManager_External_Termination_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)
	_, err = m.ConfirmActive(ticket, "capture-1")
	req.NoError(err)

	// First signal tears the share down
	session, stopped := m.ExternalTermination()
	req.True(stopped)
	req.Equal(ShareIdle, session.State)

	// A duplicate signal is a no-op
	session, stopped = m.ExternalTermination()
	req.False(stopped)
	req.Equal(ShareIdle, session.State)
}

func Test_ShareManager_Expire_Only_Fires_On_The_Pending_Ticket(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)

	// A stale timer from an earlier request does nothing
	_, expired := m.Expire("old-ticket")
	req.False(expired)
	req.Equal(ShareRequesting, m.Current().State)

	// The live ticket expires into Error with a timeout reason
	session, expired := m.Expire(ticket)
	req.True(expired)
	req.Equal(ShareError, session.State)
	req.Equal("share request timed out", session.Reason)

	// Expiring after resolution is a no-op
	_, expired = m.Expire(ticket)
	req.False(expired)
}

func Test_ShareManager_AcknowledgeError_Returns_To_Idle(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)
	_, err = m.ReportFailure(ticket, "denied")
	req.NoError(err)

	session := m.AcknowledgeError()
	req.Equal(ShareIdle, session.State)
	req.Empty(session.Reason)

	// Acknowledging an idle slot changes nothing
	session = m.AcknowledgeError()
	req.Equal(ShareIdle, session.State)
}

func Test_ShareManager_ForceStop_Only_Affects_The_Owner(t *testing.T) {
	req := require.New(t)
	m := NewShareManager()

	ticket, _, err := m.RequestStart("alice")
	req.NoError(err)
	_, err = m.ConfirmActive(ticket, "capture-1")
	req.NoError(err)

	// A non-owner departure leaves the share alone
	_, stopped := m.ForceStop("bob")
	req.False(stopped)
	req.Equal(ShareActive, m.Current().State)

	// The owner's departure clears the slot
	session, stopped := m.ForceStop("alice")
	req.True(stopped)
	req.Equal(ShareIdle, session.State)
}
