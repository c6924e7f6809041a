package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"watchroom/domain"
	"watchroom/domain/event"
)

func Test_EventFrame_Types_Match_Event_Names(t *testing.T) {
	req := require.New(t)

	participant := domain.Participant{
		ID:          "alice",
		DisplayName: "Alice",
		Presence:    domain.PresenceActive,
		JoinedAt:    time.Now().UTC(),
	}

	cases := []struct {
		evt  event.DomainEvent
		want string
	}{
		{event.ParticipantJoined{Room: "r1", Participant: participant}, "participant.joined"},
		{event.ParticipantLeft{Room: "r1", Participant: participant}, "participant.left"},
		{event.PresenceChanged{Room: "r1", Participant: participant}, "presence.changed"},
		{event.MessageAppended{Room: "r1", Message: domain.Message{ID: uuid.New()}}, "message.appended"},
		{event.ScreenShareStateChanged{Room: "r1", Session: domain.ScreenShareSession{State: domain.ShareIdle}}, "share.state"},
	}

	for _, c := range cases {
		frame, err := EventFrame(c.evt)
		req.NoError(err)
		req.Equal(c.want, frame.Type)
		req.NotEmpty(frame.Payload)
	}
}

func Test_EventFrame_Message_Payload(t *testing.T) {
	req := require.New(t)

	id := uuid.New()
	at := time.Now().UTC().Truncate(time.Second)
	frame, err := EventFrame(event.MessageAppended{
		Room: "r1",
		Message: domain.Message{
			ID:        id,
			SenderID:  "alice",
			Body:      "hello",
			Sequence:  3,
			Timestamp: at,
			Lang:      "en",
		},
	})
	req.NoError(err)

	var payload MessagePayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(id.String(), payload.ID)
	req.Equal("alice", payload.SenderID)
	req.Equal("hello", payload.Body)
	req.Equal(uint64(3), payload.Sequence)
	req.Equal(at, payload.At)
	req.Equal("en", payload.Lang)
}

func Test_EventFrame_Share_Payload_Omits_Empty_Fields(t *testing.T) {
	req := require.New(t)

	frame, err := EventFrame(event.ScreenShareStateChanged{
		Room:    "r1",
		Session: domain.ScreenShareSession{State: domain.ShareIdle},
	})
	req.NoError(err)

	// An idle slot has no owner, handle or reason on the wire
	req.JSONEq(`{"state":"idle"}`, string(frame.Payload))
}
