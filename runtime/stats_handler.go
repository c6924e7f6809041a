package runtime

import (
	"watchroom/domain"
	"watchroom/domain/event"
	"watchroom/observability"
)

// StatsHandler bridges telemetry events to the monitoring counters.
type StatsHandler struct {
	monitoring *observability.MonitoringManager
}

func NewStatsHandler(monitoring *observability.MonitoringManager) *StatsHandler {
	return &StatsHandler{monitoring: monitoring}
}

func (h *StatsHandler) Handle(evt event.Event) {
	switch evt.Type {
	case event.CensorshipHitType:
		h.monitoring.IncrCensoredHits()
	case event.DomainType:
		domainEvt, ok := evt.Payload.(event.DomainEvent)
		if !ok {
			return
		}
		switch e := domainEvt.(type) {
		case event.MessageAppended:
			h.monitoring.IncrMessagesAppended()
		case event.ScreenShareStateChanged:
			switch e.Session.State {
			case domain.ShareRequesting:
				h.monitoring.IncrSharesStarted()
			case domain.ShareError:
				h.monitoring.IncrSharesDenied()
			}
		}
	}
}
