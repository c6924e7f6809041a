package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"watchroom/auth"
	"watchroom/domain"
	"watchroom/services"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = 30 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 65536

	// Size of the buffered channel holding outbound frames.
	sendBufferSize = 256
)

// Client is one authenticated websocket session. The read pump turns
// incoming frames into service calls; the write pump drains the send
// buffer, which the room's event fanout also feeds through ClientSink.
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	claims  *auth.RoomClaims
	service services.IRoomService
	log     *slog.Logger
}

func NewClient(conn *websocket.Conn, claims *auth.RoomClaims, service services.IRoomService, log *slog.Logger) *Client {
	return &Client{
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		claims:  claims,
		service: service,
		log: log.With(
			slog.String("room", string(claims.RoomID())),
			slog.String("participant", claims.ParticipantID),
		),
	}
}

// Send exposes the outbound buffer so the fanout sink can feed it.
func (c *Client) Send() chan<- []byte { return c.send }

// ReadPump reads frames from the websocket until the connection drops,
// then leaves the room. It must run in its own goroutine; there is at
// most one reader per connection.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		if _, err := c.service.Leave(ctx, c.claims.RoomID(), c.claims.ParticipantID); err != nil {
			c.log.Warn("leave on disconnect failed", slog.Any("error", err))
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("unexpected close", slog.Any("error", err))
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.replyError("malformed frame")
			continue
		}
		c.dispatch(ctx, frame)
	}
}

// WritePump drains the send buffer to the websocket and keeps the
// connection alive with pings. It must run in its own goroutine; there
// is at most one writer per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) dispatch(ctx context.Context, frame Frame) {
	room := c.claims.RoomID()

	switch frame.Type {
	case IntentMessagePost:
		var payload MessagePostPayload
		if !c.decode(frame.Payload, &payload) {
			return
		}
		if _, err := c.service.SendMessage(ctx, room, c.claims.ParticipantID, payload.Body); err != nil {
			c.replyError(err.Error())
		}

	case IntentShareStart:
		result, err := c.service.StartScreenShare(ctx, room, c.claims.ParticipantID)
		if err != nil {
			c.replyError(err.Error())
			return
		}
		c.reply(TypeShareTicket, ShareTicketPayload{Ticket: string(result.Ticket)})

	case IntentShareGranted:
		var payload ShareGrantedPayload
		if !c.decode(frame.Payload, &payload) {
			return
		}
		_, err := c.service.GrantScreenShare(ctx, room, domain.Ticket(payload.Ticket), domain.CaptureHandle(payload.Handle))
		if err != nil {
			c.replyError(err.Error())
		}

	case IntentShareDenied:
		var payload ShareDeniedPayload
		if !c.decode(frame.Payload, &payload) {
			return
		}
		if _, err := c.service.DenyScreenShare(ctx, room, domain.Ticket(payload.Ticket), payload.Reason); err != nil {
			c.replyError(err.Error())
		}

	case IntentShareStop:
		if _, err := c.service.StopScreenShare(ctx, room, c.claims.ParticipantID); err != nil {
			c.replyError(err.Error())
		}

	case IntentShareEnded:
		if _, err := c.service.ScreenShareEnded(ctx, room); err != nil {
			c.replyError(err.Error())
		}

	case IntentShareAck:
		if _, err := c.service.AcknowledgeShareError(ctx, room); err != nil {
			c.replyError(err.Error())
		}

	case IntentPresenceSet:
		var payload PresenceSetPayload
		if !c.decode(frame.Payload, &payload) {
			return
		}
		if _, err := c.service.SetPresence(ctx, room, c.claims.ParticipantID, domain.Presence(payload.Presence)); err != nil {
			c.replyError(err.Error())
		}

	case IntentHistoryGet:
		messages, err := c.service.History(ctx, room)
		if err != nil {
			c.replyError(err.Error())
			return
		}
		c.reply(TypeHistory, lo.Map(messages, func(m domain.Message, _ int) MessagePayload {
			return toMessagePayload(m)
		}))

	case IntentWho:
		participants, err := c.service.Participants(ctx, room)
		if err != nil {
			c.replyError(err.Error())
			return
		}
		c.reply(TypeWho, lo.Map(participants, func(p domain.Participant, _ int) ParticipantPayload {
			return toParticipantPayload(p)
		}))

	case IntentSearch:
		var payload SearchPayload
		if !c.decode(frame.Payload, &payload) {
			return
		}
		hits, total, err := c.service.Search(ctx, room, payload.Query, payload.Offset)
		if err != nil {
			c.replyError(err.Error())
			return
		}
		c.reply(TypeSearch, SearchResultPayload{Total: total, Hits: hits})

	default:
		c.replyError("unknown frame type " + frame.Type)
	}
}

func (c *Client) decode(raw json.RawMessage, payload any) bool {
	if err := json.Unmarshal(raw, payload); err != nil {
		c.replyError("malformed payload")
		return false
	}
	return true
}

func (c *Client) reply(frameType string, payload any) {
	frame, err := NewFrame(frameType, payload)
	if err != nil {
		c.log.Warn("encoding reply failed", slog.Any("error", err))
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping reply", slog.String("type", frameType))
	}
}

func (c *Client) replyError(message string) {
	c.reply(TypeError, ErrorPayload{Message: message})
}
