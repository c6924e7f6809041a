package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"watchroom/domain/event"
)

// ClientSink bridges the fanout to one websocket connection. Consume
// marshals the event and hands it to the client's send buffer without
// blocking; a client too slow to drain its buffer loses frames rather
// than stalling the pipeline.
type ClientSink struct {
	send chan<- []byte
	log  *slog.Logger
}

func NewClientSink(send chan<- []byte, log *slog.Logger) ClientSink {
	return ClientSink{send: send, log: log}
}

func (s ClientSink) Consume(_ context.Context, e event.DomainEvent) error {
	frame, err := EventFrame(e)
	if err != nil {
		return err
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	select {
	case s.send <- data:
		return nil
	default:
		return fmt.Errorf("client send buffer full, dropping %s", e.Name())
	}
}
