package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"watchroom/contract"
	"watchroom/domain"
	"watchroom/domain/event"
	"watchroom/errors"
	"watchroom/moderation"
	"watchroom/observability"
	"watchroom/runtime/workers"
)

//go:embed censored/*
var censoredFolder embed.FS

// roomHandle pairs a live room with its command channel. Closing done
// retires the worker without restart; the commands channel is never
// closed so late senders cannot panic.
type roomHandle struct {
	room     *domain.Room
	commands chan workers.CommandEnvelope
	done     chan struct{}
}

// Orchestrator owns the room table and routes every command to the
// worker of its room. One worker per room is the whole concurrency
// model: the orchestrator itself never touches room state.
type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	rooms           map[domain.RoomID]*roomHandle
	permanentSinks  []contract.EventSink
	supervisor      contract.ISupervisor
	registry        *Registry
	monitoring      *observability.MonitoringManager
	moderator       *moderation.Moderator
	domainEvents    chan event.DomainEvent
	telemetryChan   chan event.Event
	bufferSize      int
	sinkTimeout     time.Duration
	charReplacement rune
	shareTTL        time.Duration
	metricInterval  time.Duration
	started         bool
}

func NewOrchestrator(log *slog.Logger, supervisor *workers.Supervisor,
	registry *Registry, monitoring *observability.MonitoringManager,
	telemetryChan chan event.Event, bufferSize int, sinkTimeout time.Duration,
	charReplacement rune, shareTTL, metricInterval time.Duration) *Orchestrator {
	return &Orchestrator{
		log:             log,
		rooms:           make(map[domain.RoomID]*roomHandle),
		permanentSinks:  nil,
		supervisor:      supervisor,
		registry:        registry,
		monitoring:      monitoring,
		domainEvents:    make(chan event.DomainEvent, bufferSize),
		telemetryChan:   telemetryChan,
		bufferSize:      bufferSize,
		sinkTimeout:     sinkTimeout,
		charReplacement: charReplacement,
		shareTTL:        shareTTL,
		metricInterval:  metricInterval,
	}
}

// Add registers permanent sinks receiving every room's events.
// Must be called before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// CreateRoom allocates a room, puts its worker under supervision and
// seeds the log with the welcome message.
func (o *Orchestrator) CreateRoom(roomID domain.RoomID) error {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return errors.ErrNotStarted
	}
	if _, ok := o.rooms[roomID]; ok {
		o.mu.Unlock()
		return errors.ErrRoomExists
	}

	handle := &roomHandle{
		room:     domain.NewRoom(roomID),
		commands: make(chan workers.CommandEnvelope, o.bufferSize),
		done:     make(chan struct{}),
	}
	o.rooms[roomID] = handle
	worker := workers.NewRoomWorker(o.log, handle.room, handle.commands, handle.done,
		o.domainEvents, o.telemetryChan, o.moderator, o.shareTTL)
	o.mu.Unlock()

	o.supervisor.Launch(worker)

	if _, err := o.Execute(context.Background(), domain.PostSystemMessageCommand{
		RoomID: roomID,
		Body:   domain.WelcomeBody,
	}); err != nil {
		o.log.Warn("Failed to seed welcome message", "room", roomID, "error", err)
	}
	o.log.Info(fmt.Sprintf("Room %s created", roomID))
	return nil
}

// DisposeRoom retires a room and its worker. Idempotent.
func (o *Orchestrator) DisposeRoom(roomID domain.RoomID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	handle, ok := o.rooms[roomID]
	if !ok {
		return
	}
	delete(o.rooms, roomID)
	close(handle.done)
	o.log.Info(fmt.Sprintf("Room %s disposed", roomID))
}

// Execute routes a command to its room worker and blocks until the
// worker has applied it. The returned value is operation specific
// (message, share result, snapshot).
func (o *Orchestrator) Execute(ctx context.Context, cmd domain.Command) (any, error) {
	o.mu.Lock()
	started := o.started
	handle, ok := o.rooms[cmd.Room()]
	o.mu.Unlock()

	if !started {
		return nil, errors.ErrNotStarted
	}
	if !ok {
		return nil, errors.ErrRoomNotFound
	}

	env := workers.NewEnvelope(ctx, cmd)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-handle.done:
		return nil, errors.ErrRoomNotFound
	case handle.commands <- env:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case reply := <-env.Reply:
		return reply.Result, reply.Err
	case <-handle.done:
		// The worker may have replied right before retiring
		select {
		case reply := <-env.Reply:
			return reply.Result, reply.Err
		default:
			return nil, errors.ErrRoomNotFound
		}
	}
}

func (o *Orchestrator) RegisterParticipant(pID string, roomID domain.RoomID, sink contract.EventSink) {
	o.registry.Subscribe(pID, roomID, sink)
}

// UnregisterParticipant disconnects a user.
func (o *Orchestrator) UnregisterParticipant(pID string, roomID domain.RoomID) {
	o.registry.Unsubscribe(pID, roomID)
}

// Start initiates the orchestrator by preparing all components (workers, moderation, pipeline)
// and then starting the supervisor. It uses a preparation pattern to minimize mutex locking time.
func (o *Orchestrator) Start(ctx context.Context) error {
	// 1. Preparation phase (No Lock)
	// Heavy tasks like I/O (loading files) and CPU (Aho-Corasick build) are done here.
	moderator, err := o.prepareModeration("censored", o.charReplacement)
	if err != nil {
		return err
	}

	fanout, telemetry, capacity, monitor := o.preparePipeline()

	// 2. Critical Section (Short Lock)
	// We only lock to update the internal state and the supervisor.
	o.mu.Lock()
	o.moderator = moderator
	o.supervisor.Add(fanout, telemetry, capacity, monitor)
	o.started = true
	o.mu.Unlock()

	// 3. Execution phase (No Lock)
	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)
	return nil
}

// prepareModeration loads censored words and builds the Aho-Corasick automaton.
func (o *Orchestrator) prepareModeration(path string, charReplacement rune) (*moderation.Moderator, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	o.log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	o.log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, charReplacement, o.log)
	if err != nil {
		return nil, err
	}
	return &moderator, nil
}

// preparePipeline initializes the fanout and the observability workers.
func (o *Orchestrator) preparePipeline() (contract.Worker, contract.Worker, contract.Worker, contract.Worker) {
	fanout := workers.NewEventFanout(
		o.log,
		o.permanentSinks,
		o.registry,
		o.domainEvents,
		o.telemetryChan,
		o.sinkTimeout,
	)

	counter := event.NewCounter()
	handlers := []event.Handler{
		event.NewWorkerRestartedAfterPanicHandler(o.log, counter),
		event.NewChannelCapacityHandler(o.log, lowCapacityThreshold),
		event.NewCensoredHandler(o.log),
		event.NewDomainActivityHandler(o.log, counter),
		NewStatsHandler(o.monitoring),
	}
	telemetry := workers.NewTelemetryWorker(o.log, o.telemetryChan, handlers)

	capacity := workers.NewChannelCapacityWorker(o.log, []workers.NamedChannel{
		{Name: "domainEvents", Channel: o.domainEvents},
		{Name: "telemetryEvents", Channel: o.telemetryChan},
	}, o.telemetryChan, o.metricInterval)

	monitor := workers.NewMonitorWorker(o.log, o.monitoring, o.counts, o.metricInterval)

	return fanout, telemetry, capacity, monitor
}

const lowCapacityThreshold = 8

// counts reports the live room and connection totals for the monitor worker.
func (o *Orchestrator) counts() (int, int) {
	o.mu.Lock()
	rooms := len(o.rooms)
	o.mu.Unlock()
	return rooms, o.registry.CountSessions()
}

// Stop initiates a graceful shutdown of the orchestrator.
// It retires every room, then cancels the supervision context so the
// permanent workers drain and exit.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")

	o.mu.Lock()
	for roomID, handle := range o.rooms {
		delete(o.rooms, roomID)
		close(handle.done)
	}
	o.started = false
	o.mu.Unlock()

	o.supervisor.Stop()
}
