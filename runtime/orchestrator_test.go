package runtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"watchroom/domain"
	"watchroom/domain/event"
	"watchroom/errors"
	"watchroom/observability"
	"watchroom/runtime/workers"
)

func newTestOrchestrator(t *testing.T, shareTTL time.Duration) *Orchestrator {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelWarn)
	telemetryChan := make(chan event.Event, 64)
	sup := workers.NewSupervisor(log, telemetryChan, 50*time.Millisecond)
	o := NewOrchestrator(log, sup, NewRegistry(), observability.NewMonitoringManager(log),
		telemetryChan, 64, time.Second, '*', shareTTL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, o.Start(ctx))
	t.Cleanup(func() {
		o.Stop()
		cancel()
	})
	return o
}

func join(t *testing.T, o *Orchestrator, room domain.RoomID, id, name string) {
	t.Helper()
	_, err := o.Execute(context.Background(), domain.JoinRoomCommand{
		RoomID: room, ParticipantID: id, DisplayName: name,
	})
	require.NoError(t, err)
}

func Test_Orchestrator_Rejects_Commands_Before_Start(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelWarn)
	sup := workers.NewSupervisor(log, nil, 50*time.Millisecond)
	o := NewOrchestrator(log, sup, NewRegistry(), observability.NewMonitoringManager(log),
		nil, 8, time.Second, '*', time.Minute, time.Second)

	req.ErrorIs(o.CreateRoom("r1"), errors.ErrNotStarted)
	_, err := o.Execute(context.Background(), domain.GetHistoryCommand{RoomID: "r1"})
	req.ErrorIs(err, errors.ErrNotStarted)
}

func Test_Orchestrator_Seeds_The_Welcome_Message(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, time.Minute)

	req.NoError(o.CreateRoom("r1"))
	req.ErrorIs(o.CreateRoom("r1"), errors.ErrRoomExists)

	result, err := o.Execute(context.Background(), domain.GetHistoryCommand{RoomID: "r1"})
	req.NoError(err)

	history := result.([]domain.Message)
	req.Len(history, 1)
	req.True(history[0].IsSystem())
	req.Equal(domain.WelcomeBody, history[0].Body)
	req.Equal(uint64(1), history[0].Sequence)
}

func Test_Orchestrator_Concurrent_Posts_Get_Unique_Gapless_Sequences(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, time.Minute)
	req.NoError(o.CreateRoom("r1"))
	join(t, o, "r1", "alice", "Alice")

	const posts = 50

	var mu sync.Mutex
	var wg sync.WaitGroup
	seen := make(map[uint64]struct{}, posts)

	// When many goroutines post through the same room worker
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := o.Execute(context.Background(), domain.PostMessageCommand{
				RoomID: "r1", SenderID: "alice", Body: "concurrent post",
			})
			require.NoError(t, err)
			msg := result.(domain.Message)
			mu.Lock()
			seen[msg.Sequence] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Then every message got its own sequence, gapless after the welcome seed
	req.Len(seen, posts)
	for seq := uint64(2); seq <= posts+1; seq++ {
		req.Contains(seen, seq)
	}
}

func Test_Orchestrator_Concurrent_Share_Starts_Have_One_Winner(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, time.Minute)
	req.NoError(o.CreateRoom("r1"))
	join(t, o, "r1", "alice", "Alice")
	join(t, o, "r1", "bob", "Bob")

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, owner := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			_, err := o.Execute(context.Background(), domain.StartShareCommand{
				RoomID: "r1", OwnerID: owner,
			})
			results <- err
		}(owner)
	}
	wg.Wait()
	close(results)

	// Then exactly one request won the slot
	wins, busy := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			req.ErrorIs(err, errors.ErrAlreadyActive)
			busy++
		}
	}
	req.Equal(1, wins)
	req.Equal(1, busy)

	result, err := o.Execute(context.Background(), domain.GetShareCommand{RoomID: "r1"})
	req.NoError(err)
	req.Equal(domain.ShareRequesting, result.(domain.ScreenShareSession).State)
}

func Test_Orchestrator_Unconfirmed_Share_Expires(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, 50*time.Millisecond)
	req.NoError(o.CreateRoom("r1"))
	join(t, o, "r1", "alice", "Alice")

	_, err := o.Execute(context.Background(), domain.StartShareCommand{
		RoomID: "r1", OwnerID: "alice",
	})
	req.NoError(err)

	// When the grant never arrives within the TTL
	req.Eventually(func() bool {
		result, err := o.Execute(context.Background(), domain.GetShareCommand{RoomID: "r1"})
		if err != nil {
			return false
		}
		return result.(domain.ScreenShareSession).State == domain.ShareError
	}, time.Second, 10*time.Millisecond)

	result, err := o.Execute(context.Background(), domain.GetShareCommand{RoomID: "r1"})
	req.NoError(err)
	req.Equal("share request timed out", result.(domain.ScreenShareSession).Reason)
}

func Test_Orchestrator_Posts_Are_Censored(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, time.Minute)
	req.NoError(o.CreateRoom("r1"))
	join(t, o, "r1", "alice", "Alice")

	result, err := o.Execute(context.Background(), domain.PostMessageCommand{
		RoomID: "r1", SenderID: "alice", Body: "such an idiot plan",
	})
	req.NoError(err)

	msg := result.(domain.Message)
	req.NotContains(msg.Body, "idiot")
	req.Contains(msg.Body, "*****")
}

func Test_Orchestrator_Disposed_Room_Refuses_Commands(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t, time.Minute)
	req.NoError(o.CreateRoom("r1"))

	o.DisposeRoom("r1")
	// Disposing twice is harmless
	o.DisposeRoom("r1")

	_, err := o.Execute(context.Background(), domain.GetHistoryCommand{RoomID: "r1"})
	req.ErrorIs(err, errors.ErrRoomNotFound)
}
