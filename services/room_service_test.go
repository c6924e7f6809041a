package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"watchroom/auth"
	"watchroom/domain"
	"watchroom/errors"
	"watchroom/mocks"
)

func newService(t *testing.T) (*RoomService, *mocks.MockIOrchestrator, *mocks.MockIMessageRepository, *mocks.MockISearchIndex) {
	t.Helper()
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockIOrchestrator(ctrl)
	archive := mocks.NewMockIMessageRepository(ctrl)
	search := mocks.NewMockISearchIndex(ctrl)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewRoomService(orchestrator, tokens, archive, search), orchestrator, archive, search
}

func Test_RoomService_CreateRoom_Keeps_Only_The_Hash(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(nil)
	req.NoError(service.CreateRoom("r1", "open-sesame"))

	// Then the stored credential is an argon2id hash, not the code
	hash := service.joinCodes["r1"]
	req.NotEmpty(hash)
	req.NotContains(hash, "open-sesame")
	req.Contains(hash, "$argon2id$")
}

func Test_RoomService_CreateRoom_Does_Not_Record_A_Failed_Room(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(errors.ErrRoomExists)
	req.ErrorIs(service.CreateRoom("r1", ""), errors.ErrRoomExists)
	req.NotContains(service.joinCodes, domain.RoomID("r1"))
}

func Test_RoomService_Join_Rejects_A_Wrong_Code_Before_The_Worker(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(nil)
	req.NoError(service.CreateRoom("r1", "open-sesame"))

	// When joining with the wrong code, the orchestrator is never touched
	_, _, err := service.Join(context.Background(), "r1", "nope", "alice", "Alice", nil)
	req.ErrorIs(err, errors.ErrInvalidJoinCode)

	// An unknown room is rejected the same way
	_, _, err = service.Join(context.Background(), "ghost", "", "alice", "Alice", nil)
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func Test_RoomService_Join_Subscribes_The_Sink_Before_The_Join(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service, orchestrator, _, _ := newService(t)
	sink := mocks.NewMockEventSink(ctrl)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(nil)
	req.NoError(service.CreateRoom("r1", ""))

	// Then the sink is registered before the join command runs, so no
	// event published after the join can be missed
	gomock.InOrder(
		orchestrator.EXPECT().RegisterParticipant("alice", domain.RoomID("r1"), sink),
		orchestrator.EXPECT().
			Execute(gomock.Any(), domain.JoinRoomCommand{RoomID: "r1", ParticipantID: "alice", DisplayName: "Alice"}).
			Return(domain.Participant{ID: "alice", DisplayName: "Alice"}, nil),
	)

	participant, token, err := service.Join(context.Background(), "r1", "", "alice", "Alice", sink)
	req.NoError(err)
	req.Equal("alice", participant.ID)

	claims, err := auth.NewTokenManager("test-secret", time.Hour).Validate(token)
	req.NoError(err)
	req.Equal("alice", claims.ParticipantID)
	req.Equal("r1", claims.Room)
}

func Test_RoomService_Join_Unsubscribes_When_The_Join_Fails(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service, orchestrator, _, _ := newService(t)
	sink := mocks.NewMockEventSink(ctrl)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(nil)
	req.NoError(service.CreateRoom("r1", ""))

	gomock.InOrder(
		orchestrator.EXPECT().RegisterParticipant("alice", domain.RoomID("r1"), sink),
		orchestrator.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(nil, errors.ErrDuplicateParticipant),
		orchestrator.EXPECT().UnregisterParticipant("alice", domain.RoomID("r1")),
	)

	_, _, err := service.Join(context.Background(), "r1", "", "alice", "Alice", sink)
	req.ErrorIs(err, errors.ErrDuplicateParticipant)
}

func Test_RoomService_IssueToken_Gates_On_The_Join_Code(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)

	orchestrator.EXPECT().CreateRoom(domain.RoomID("r1")).Return(nil)
	req.NoError(service.CreateRoom("r1", "open-sesame"))

	_, err := service.IssueToken("r1", "nope", "alice", "Alice")
	req.ErrorIs(err, errors.ErrInvalidJoinCode)

	// When the code matches, the token carries the room claims but no
	// join happened yet
	token, err := service.IssueToken("r1", "open-sesame", "alice", "Alice")
	req.NoError(err)

	claims, err := auth.NewTokenManager("test-secret", time.Hour).Validate(token)
	req.NoError(err)
	req.Equal("alice", claims.ParticipantID)
	req.Equal("Alice", claims.DisplayName)
	req.Equal("r1", claims.Room)
}

func Test_RoomService_JoinAuthenticated_Trusts_The_Claims(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service, orchestrator, _, _ := newService(t)
	sink := mocks.NewMockEventSink(ctrl)

	claims := &auth.RoomClaims{ParticipantID: "alice", DisplayName: "Alice", Room: "r1"}

	gomock.InOrder(
		orchestrator.EXPECT().RegisterParticipant("alice", domain.RoomID("r1"), sink),
		orchestrator.EXPECT().
			Execute(gomock.Any(), domain.JoinRoomCommand{RoomID: "r1", ParticipantID: "alice", DisplayName: "Alice"}).
			Return(domain.Participant{ID: "alice", DisplayName: "Alice"}, nil),
	)

	participant, err := service.JoinAuthenticated(context.Background(), claims, sink)
	req.NoError(err)
	req.Equal("alice", participant.ID)
}

func Test_RoomService_JoinAuthenticated_Unsubscribes_On_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service, orchestrator, _, _ := newService(t)
	sink := mocks.NewMockEventSink(ctrl)

	claims := &auth.RoomClaims{ParticipantID: "alice", DisplayName: "Alice", Room: "r1"}

	gomock.InOrder(
		orchestrator.EXPECT().RegisterParticipant("alice", domain.RoomID("r1"), sink),
		orchestrator.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, errors.ErrRoomNotFound),
		orchestrator.EXPECT().UnregisterParticipant("alice", domain.RoomID("r1")),
	)

	_, err := service.JoinAuthenticated(context.Background(), claims, sink)
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func Test_RoomService_Leave_Always_Unsubscribes(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)

	// Even when the worker rejects the leave, the sink registration goes
	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.LeaveRoomCommand{RoomID: "r1", ParticipantID: "alice"}).
		Return(nil, errors.ErrRoomNotFound)
	orchestrator.EXPECT().UnregisterParticipant("alice", domain.RoomID("r1"))

	_, err := service.Leave(context.Background(), "r1", "alice")
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func Test_RoomService_Share_Calls_Map_To_Their_Commands(t *testing.T) {
	req := require.New(t)
	service, orchestrator, _, _ := newService(t)
	ctx := context.Background()

	session := domain.ScreenShareSession{State: domain.ShareRequesting, OwnerID: "alice"}

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.StartShareCommand{RoomID: "r1", OwnerID: "alice"}).
		Return(domain.ShareResult{Session: session}, nil)
	result, err := service.StartScreenShare(ctx, "r1", "alice")
	req.NoError(err)
	req.Equal(domain.ShareRequesting, result.Session.State)

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.GrantShareCommand{RoomID: "r1", Ticket: "t-1", Handle: "capture-42"}).
		Return(domain.ShareResult{}, nil)
	_, err = service.GrantScreenShare(ctx, "r1", "t-1", "capture-42")
	req.NoError(err)

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.DenyShareCommand{RoomID: "r1", Ticket: "t-1", Reason: "declined"}).
		Return(domain.ShareResult{}, nil)
	_, err = service.DenyScreenShare(ctx, "r1", "t-1", "declined")
	req.NoError(err)

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.StopShareCommand{RoomID: "r1", OwnerID: "alice"}).
		Return(domain.ShareResult{}, nil)
	_, err = service.StopScreenShare(ctx, "r1", "alice")
	req.NoError(err)

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.ShareEndedCommand{RoomID: "r1"}).
		Return(domain.ShareResult{}, nil)
	_, err = service.ScreenShareEnded(ctx, "r1")
	req.NoError(err)

	orchestrator.EXPECT().
		Execute(gomock.Any(), domain.AckShareErrorCommand{RoomID: "r1"}).
		Return(domain.ShareResult{}, nil)
	_, err = service.AcknowledgeShareError(ctx, "r1")
	req.NoError(err)
}

func Test_RoomService_Reads_Delegate_To_The_Stores(t *testing.T) {
	req := require.New(t)
	service, _, archive, search := newService(t)

	cursor := "msg:r1:0000000000000000005:x"
	archive.EXPECT().GetMessages(domain.RoomID("r1"), &cursor).Return(nil, nil, nil)
	_, _, err := service.ArchivedMessages("r1", &cursor)
	req.NoError(err)

	search.EXPECT().Search(gomock.Any(), "release", domain.RoomID("r1"), 10).Return(nil, uint64(0), nil)
	_, total, err := service.Search(context.Background(), "r1", "release", 10)
	req.NoError(err)
	req.Zero(total)
}
