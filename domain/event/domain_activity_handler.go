package event

import (
	"log/slog"
	"sync"

	"watchroom/errors"
)

// DomainActivityHandler counts room activity flowing through the
// telemetry channel, keyed by event name. Useful for spotting hot
// rooms and share churn without touching the rooms themselves.
type DomainActivityHandler struct {
	log     *slog.Logger
	mu      sync.Mutex
	byName  map[string]uint64
	counter *Counter
}

func NewDomainActivityHandler(log *slog.Logger, counter *Counter) *DomainActivityHandler {
	return &DomainActivityHandler{
		log:     log,
		byName:  make(map[string]uint64),
		counter: counter,
	}
}

func (h *DomainActivityHandler) Handle(event Event) {
	switch event.Type {
	case DomainType:
		payload, ok := event.Payload.(DomainEvent)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		h.counter.Increment(DomainType)
		h.byName[payload.Name()]++
	}
}

func (h *DomainActivityHandler) CountFor(name string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.byName[name]
}
