package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"watchroom/infrastructure/ws"
)

type SessionSuite struct {
	BaseSuite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

// Full happy path: two participants join a protected room, chat, run a
// screen share through its lifecycle, and the owner's disconnect
// releases the share.
func (s *SessionSuite) Test_Room_Session_Lifecycle() {
	s.Step("Create a protected room")
	resp, body := s.PostJSON("/rooms", map[string]string{
		"room":      "standup",
		"join_code": "super-secret",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	s.Step("Wrong join code is rejected")
	resp, _ = s.PostJSON("/tokens", map[string]string{
		"room":           "standup",
		"join_code":      "wrong-code",
		"participant_id": "mallory",
		"display_name":   "Mallory",
	})
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

	s.Step("Alice and Bob join with valid tokens")
	aliceToken := s.IssueToken("standup", "super-secret", "alice", "Alice")
	bobToken := s.IssueToken("standup", "super-secret", "bob", "Bob")

	alice := s.Dial(aliceToken)
	defer alice.Close()
	joined := s.WaitFrame(alice, "participant.joined")
	var aliceJoined ws.ParticipantPayload
	s.Decode(joined, &aliceJoined)
	s.Require().Equal("alice", aliceJoined.ID)

	bob := s.Dial(bobToken)
	defer bob.Close()

	// Alice sees Bob arrive
	joined = s.WaitFrame(alice, "participant.joined")
	var bobJoined ws.ParticipantPayload
	s.Decode(joined, &bobJoined)
	s.Require().Equal("bob", bobJoined.ID)

	s.Step("Alice posts a message both participants receive")
	s.Send(alice, ws.IntentMessagePost, ws.MessagePostPayload{Body: "Ready for the demo?"})

	var fromAlice, fromBob ws.MessagePayload
	s.Decode(s.WaitFrame(alice, "message.appended"), &fromAlice)
	s.Decode(s.WaitFrame(bob, "message.appended"), &fromBob)
	s.Require().Equal("Ready for the demo?", fromAlice.Body)
	s.Require().Equal(fromAlice.Sequence, fromBob.Sequence)
	// The welcome message holds sequence 1
	s.Require().Equal(uint64(2), fromAlice.Sequence)

	s.Step("History replays the log in order")
	s.Send(bob, ws.IntentWho, struct{}{})
	var who []ws.ParticipantPayload
	s.Decode(s.WaitFrame(bob, ws.TypeWho), &who)
	s.Require().Len(who, 2)

	s.Send(bob, ws.IntentHistoryGet, struct{}{})
	var history []ws.MessagePayload
	s.Decode(s.WaitFrame(bob, ws.TypeHistory), &history)
	s.Require().Len(history, 2)
	s.Require().Less(history[0].Sequence, history[1].Sequence)

	s.Step("Alice requests a screen share")
	s.Send(alice, ws.IntentShareStart, struct{}{})

	var ticket ws.ShareTicketPayload
	s.Decode(s.WaitFrame(alice, ws.TypeShareTicket), &ticket)
	s.Require().NotEmpty(ticket.Ticket)

	var share ws.SharePayload
	s.Decode(s.WaitFrame(bob, "share.state"), &share)
	s.Require().Equal("requesting", share.State)
	s.Require().Equal("alice", share.OwnerID)

	s.Step("A second start while busy is refused")
	s.Send(bob, ws.IntentShareStart, struct{}{})
	var failure ws.ErrorPayload
	s.Decode(s.WaitFrame(bob, ws.TypeError), &failure)
	s.Require().NotEmpty(failure.Message)

	s.Step("The capture layer confirms and the share goes active")
	s.Send(alice, ws.IntentShareGranted, ws.ShareGrantedPayload{
		Ticket: ticket.Ticket,
		Handle: "capture-42",
	})
	s.Decode(s.WaitFrame(bob, "share.state"), &share)
	s.Require().Equal("active", share.State)
	s.Require().Equal("capture-42", share.Handle)

	// The state change is followed by the system notice
	var notice ws.MessagePayload
	s.Decode(s.WaitFrame(bob, "message.appended"), &notice)
	s.Require().Contains(notice.Body, "started sharing")

	s.Step("Alice disconnects and her share is released")
	s.Require().NoError(alice.Close())

	var left ws.ParticipantPayload
	s.Decode(s.WaitFrame(bob, "participant.left"), &left)
	s.Require().Equal("alice", left.ID)

	s.Decode(s.WaitFrame(bob, "share.state"), &share)
	s.Require().Equal("idle", share.State)
}

func (s *SessionSuite) Test_Moderated_Message_Is_Censored_For_Everyone() {
	s.Step("Create an open room")
	resp, body := s.PostJSON("/rooms", map[string]string{"room": "lounge"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	token := s.IssueToken("lounge", "", "carol", "Carol")
	carol := s.Dial(token)
	defer carol.Close()
	s.WaitFrame(carol, "participant.joined")

	s.Step("A message containing a censored word comes back masked")
	s.Send(carol, ws.IntentMessagePost, ws.MessagePostPayload{Body: "what a moron move"})

	var msg ws.MessagePayload
	s.Decode(s.WaitFrame(carol, "message.appended"), &msg)
	s.Require().NotContains(msg.Body, "moron")
	s.Require().Contains(msg.Body, "*****")
}
