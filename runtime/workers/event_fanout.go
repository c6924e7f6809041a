package workers

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"watchroom/contract"
	"watchroom/domain/event"
)

// EventFanout broadcasts domain events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sinks, durability, or retries. EventFanout is not a
// message broker.
//
// Permanent sinks (archive, search, timeline) receive every event;
// participant sinks are resolved per event through the registry, so
// only the room's connected clients see its traffic.
type EventFanout struct {
	log           *slog.Logger
	sinks         []contract.EventSink
	registry      contract.IRegistry
	domainEvents  chan event.DomainEvent
	telemetryChan chan event.Event
	sinkTimeout   time.Duration
}

func NewEventFanout(
	log *slog.Logger,
	sinks []contract.EventSink,
	registry contract.IRegistry,
	domainEvents chan event.DomainEvent,
	telemetryChan chan event.Event,
	sinkTimeout time.Duration,
) *EventFanout {
	return &EventFanout{
		log:           log,
		sinks:         sinks,
		registry:      registry,
		domainEvents:  domainEvents,
		telemetryChan: telemetryChan,
		sinkTimeout:   sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return ctx.Err()
		case evt := <-w.domainEvents:
			w.Fanout(ctx, evt)
			select {
			case w.telemetryChan <- toDomainTelemetry(evt):
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}

// Fanout One sink for each event
// A slow sink only burns its own timeout, never the room worker.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	// Concat so the room sinks never land in w.sinks' backing array.
	all := slices.Concat(w.sinks, w.registry.GetSinksForRoom(evt.RoomID()))
	for _, sink := range all {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink rejected event", "event", evt.Name(), "room", evt.RoomID(), "error", err)
		}
		cancel()
	}
}

func toDomainTelemetry(evt event.DomainEvent) event.Event {
	return event.Event{
		Type:      event.DomainType,
		CreatedAt: time.Now().UTC(),
		Payload:   evt,
	}
}
