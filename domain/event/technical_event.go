package event

import "time"

// Type discriminates telemetry envelopes.
type Type string

const (
	DomainType              Type = "DOMAIN"
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	CensorshipHitType       Type = "CENSORSHIP_HIT"
)

// Event is the telemetry envelope. Domain events are wrapped with
// DomainType; technical payloads carry their own types. Telemetry is
// best effort and may be dropped under pressure.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

type Censored struct {
	Room   string
	Author string
	Word   string
}
