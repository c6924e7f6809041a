package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"

	"watchroom/domain"
	"watchroom/domain/event"
	"watchroom/moderation"
)

// RoomWorker is the single writer of one room. Every command against
// the room flows through its channel, which is what makes sequence
// assignment gapless and the share slot race free: two concurrent
// requests are applied one after the other, and exactly one wins.
//
// Reads travel the same channel, so a snapshot always reflects the
// last completed mutation.
type RoomWorker struct {
	room          *domain.Room
	commands      chan CommandEnvelope
	done          chan struct{}
	events        chan<- event.DomainEvent
	telemetryChan chan<- event.Event
	moderator     *moderation.Moderator
	shareTTL      time.Duration
	log           *slog.Logger
}

func NewRoomWorker(
	log *slog.Logger,
	room *domain.Room,
	commands chan CommandEnvelope,
	done chan struct{},
	events chan<- event.DomainEvent,
	telemetryChan chan<- event.Event,
	moderator *moderation.Moderator,
	shareTTL time.Duration,
) *RoomWorker {
	return &RoomWorker{
		room:          room,
		commands:      commands,
		done:          done,
		events:        events,
		telemetryChan: telemetryChan,
		moderator:     moderator,
		shareTTL:      shareTTL,
		log:           log,
	}
}

func (w *RoomWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping room worker", "room", w.room.ID())
			return ctx.Err()
		case <-w.done:
			// Room disposed, terminate without restart
			return nil
		case env := <-w.commands:
			result, evts, err := w.apply(env.Cmd)
			// Reply channel is buffered, never blocks
			env.Reply <- CommandReply{Result: result, Err: err}
			for _, evt := range evts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case w.events <- evt:
				}
			}
		}
	}
}

// apply executes one command against the room. It returns the
// synchronous result for the caller and the events to publish, already
// in mutation order.
func (w *RoomWorker) apply(cmd domain.Command) (any, []event.DomainEvent, error) {
	roomID := w.room.ID()

	switch c := cmd.(type) {
	case domain.JoinRoomCommand:
		p, err := w.room.AddParticipant(c.ParticipantID, c.DisplayName)
		if err != nil {
			return nil, nil, err
		}
		return p, []event.DomainEvent{event.ParticipantJoined{Room: roomID, Participant: p}}, nil

	case domain.LeaveRoomCommand:
		res := w.room.RemoveParticipant(c.ParticipantID)
		if !res.Left {
			return res, nil, nil
		}
		evts := []event.DomainEvent{event.ParticipantLeft{Room: roomID, Participant: res.Participant}}
		if res.ShareStopped {
			evts = append(evts, event.ScreenShareStateChanged{Room: roomID, Session: res.Share})
		}
		if res.Notice != nil {
			evts = append(evts, event.MessageAppended{Room: roomID, Message: *res.Notice})
		}
		return res, evts, nil

	case domain.SetPresenceCommand:
		p, err := w.room.SetPresence(c.ParticipantID, c.Presence)
		if err != nil {
			return nil, nil, err
		}
		return p, []event.DomainEvent{event.PresenceChanged{Room: roomID, Participant: p}}, nil

	case domain.PostMessageCommand:
		content, hits := w.moderator.Censor(c.Body)
		msg, err := w.room.AppendMessage(c.SenderID, content, detectLang(content))
		if err != nil {
			return nil, nil, err
		}
		w.reportCensored(c.SenderID, hits)
		return msg, []event.DomainEvent{event.MessageAppended{Room: roomID, Message: msg}}, nil

	case domain.PostSystemMessageCommand:
		msg, err := w.room.AppendSystemMessage(c.Body)
		if err != nil {
			return nil, nil, err
		}
		return msg, []event.DomainEvent{event.MessageAppended{Room: roomID, Message: msg}}, nil

	case domain.StartShareCommand:
		res, err := w.room.RequestShare(c.OwnerID)
		if err != nil {
			return nil, nil, err
		}
		w.scheduleExpiry(res.Ticket)
		return res, []event.DomainEvent{event.ScreenShareStateChanged{Room: roomID, Session: res.Session}}, nil

	case domain.GrantShareCommand:
		res, err := w.room.ConfirmShare(c.Ticket, c.Handle)
		if err != nil {
			return nil, nil, err
		}
		return res, w.shareEvents(res), nil

	case domain.DenyShareCommand:
		res, err := w.room.FailShare(c.Ticket, c.Reason)
		if err != nil {
			return nil, nil, err
		}
		return res, w.shareEvents(res), nil

	case domain.StopShareCommand:
		res, err := w.room.StopShare(c.OwnerID)
		if err != nil {
			return nil, nil, err
		}
		return res, w.shareEvents(res), nil

	case domain.ShareEndedCommand:
		res := w.room.ShareEnded()
		return res, w.shareEvents(res), nil

	case domain.ExpireShareCommand:
		res := w.room.ExpireShare(c.Ticket)
		if res.Changed {
			w.log.Info(fmt.Sprintf("Share request expired in room %s", roomID))
		}
		return res, w.shareEvents(res), nil

	case domain.AckShareErrorCommand:
		res := w.room.AcknowledgeShareError()
		return res, w.shareEvents(res), nil

	case domain.GetHistoryCommand:
		var messages []domain.Message
		for m := range w.room.History() {
			messages = append(messages, m)
		}
		return messages, nil, nil

	case domain.GetParticipantsCommand:
		return w.room.Participants(), nil, nil

	case domain.GetShareCommand:
		return w.room.Share(), nil, nil

	default:
		w.log.Error(fmt.Sprintf("Unknown command %T for room %s", cmd, roomID))
		return nil, nil, nil
	}
}

// shareEvents maps a share transition to its events, state first, then
// the system notice it logged.
func (w *RoomWorker) shareEvents(res domain.ShareResult) []event.DomainEvent {
	if !res.Changed {
		return nil
	}
	roomID := w.room.ID()
	evts := []event.DomainEvent{event.ScreenShareStateChanged{Room: roomID, Session: res.Session}}
	if res.Notice != nil {
		evts = append(evts, event.MessageAppended{Room: roomID, Message: *res.Notice})
	}
	return evts
}

// scheduleExpiry arms the grant timeout for a pending share request.
// The expiry command goes through the regular channel, so it is a no-op
// when the ticket has been resolved in the meantime.
func (w *RoomWorker) scheduleExpiry(ticket domain.Ticket) {
	if w.shareTTL <= 0 {
		return
	}
	roomID := w.room.ID()
	time.AfterFunc(w.shareTTL, func() {
		env := NewEnvelope(context.Background(), domain.ExpireShareCommand{RoomID: roomID, Ticket: ticket})
		select {
		case w.commands <- env:
		case <-w.done:
		}
	})
}

// reportCensored pushes one telemetry event per censored word, best effort.
func (w *RoomWorker) reportCensored(senderID string, hits []string) {
	for _, word := range hits {
		evt := event.Event{
			Type:      event.CensorshipHitType,
			CreatedAt: time.Now().UTC(),
			Payload:   event.Censored{Room: string(w.room.ID()), Author: senderID, Word: word},
		}
		select {
		case w.telemetryChan <- evt:
		default:
			w.log.Debug("Observability telemetry event lost")
		}
	}
}

// detectLang tags a message with its ISO 639-1 language code when the
// detection is confident enough, empty otherwise.
func detectLang(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
