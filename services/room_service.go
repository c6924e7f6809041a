//go:generate go run go.uber.org/mock/mockgen -source=room_service.go -destination=../mocks/mock_room_service.go -package=mocks
package services

import (
	"context"
	"sync"

	"watchroom/auth"
	"watchroom/contract"
	"watchroom/domain"
	"watchroom/errors"
	"watchroom/repositories"
)

type IRoomService interface {
	CreateRoom(roomID domain.RoomID, joinCode string) error
	DisposeRoom(roomID domain.RoomID)
	Join(ctx context.Context, roomID domain.RoomID, joinCode, participantID, displayName string, sink contract.EventSink) (domain.Participant, string, error)
	IssueToken(roomID domain.RoomID, joinCode, participantID, displayName string) (string, error)
	JoinAuthenticated(ctx context.Context, claims *auth.RoomClaims, sink contract.EventSink) (domain.Participant, error)
	Leave(ctx context.Context, roomID domain.RoomID, participantID string) (domain.LeaveResult, error)
	SendMessage(ctx context.Context, roomID domain.RoomID, senderID, body string) (domain.Message, error)
	SetPresence(ctx context.Context, roomID domain.RoomID, participantID string, presence domain.Presence) (domain.Participant, error)
	StartScreenShare(ctx context.Context, roomID domain.RoomID, ownerID string) (domain.ShareResult, error)
	GrantScreenShare(ctx context.Context, roomID domain.RoomID, ticket domain.Ticket, handle domain.CaptureHandle) (domain.ShareResult, error)
	DenyScreenShare(ctx context.Context, roomID domain.RoomID, ticket domain.Ticket, reason string) (domain.ShareResult, error)
	StopScreenShare(ctx context.Context, roomID domain.RoomID, ownerID string) (domain.ShareResult, error)
	ScreenShareEnded(ctx context.Context, roomID domain.RoomID) (domain.ShareResult, error)
	AcknowledgeShareError(ctx context.Context, roomID domain.RoomID) (domain.ShareResult, error)
	History(ctx context.Context, roomID domain.RoomID) ([]domain.Message, error)
	ArchivedMessages(roomID domain.RoomID, cursor *string) ([]repositories.ArchivedMessage, *string, error)
	Participants(ctx context.Context, roomID domain.RoomID) ([]domain.Participant, error)
	CurrentShare(ctx context.Context, roomID domain.RoomID) (domain.ScreenShareSession, error)
	Search(ctx context.Context, roomID domain.RoomID, query string, offset int) ([]repositories.ArchivedMessage, uint64, error)
}

// RoomService is the application facade over the orchestrator: it owns
// join-code checks, token issuance and the read models, while every
// room mutation still flows through the room's worker.
type RoomService struct {
	mu           sync.RWMutex
	orchestrator contract.IOrchestrator
	tokens       *auth.TokenManager
	archive      repositories.IMessageRepository
	search       repositories.ISearchIndex
	joinCodes    map[domain.RoomID]string // room -> argon2id hash, empty for open rooms
}

func NewRoomService(
	orchestrator contract.IOrchestrator,
	tokens *auth.TokenManager,
	archive repositories.IMessageRepository,
	search repositories.ISearchIndex,
) *RoomService {
	return &RoomService{
		orchestrator: orchestrator,
		tokens:       tokens,
		archive:      archive,
		search:       search,
		joinCodes:    make(map[domain.RoomID]string),
	}
}

// CreateRoom allocates the room. A non-empty joinCode restricts joins
// to callers presenting it; only its hash is kept.
func (s *RoomService) CreateRoom(roomID domain.RoomID, joinCode string) error {
	var hash string
	if joinCode != "" {
		var err error
		hash, err = auth.HashJoinCode(joinCode)
		if err != nil {
			return err
		}
	}
	if err := s.orchestrator.CreateRoom(roomID); err != nil {
		return err
	}
	s.mu.Lock()
	s.joinCodes[roomID] = hash
	s.mu.Unlock()
	return nil
}

func (s *RoomService) DisposeRoom(roomID domain.RoomID) {
	s.orchestrator.DisposeRoom(roomID)
	s.mu.Lock()
	delete(s.joinCodes, roomID)
	s.mu.Unlock()
}

// Join verifies the join code, subscribes the participant's sink so no
// event published after the join is missed, then applies the join.
// The returned token authorizes the websocket session.
func (s *RoomService) Join(ctx context.Context, roomID domain.RoomID, joinCode, participantID, displayName string, sink contract.EventSink) (domain.Participant, string, error) {
	if err := s.checkJoinCode(roomID, joinCode); err != nil {
		return domain.Participant{}, "", err
	}

	if sink != nil {
		s.orchestrator.RegisterParticipant(participantID, roomID, sink)
	}

	result, err := s.orchestrator.Execute(ctx, domain.JoinRoomCommand{
		RoomID:        roomID,
		ParticipantID: participantID,
		DisplayName:   displayName,
	})
	if err != nil {
		if sink != nil {
			s.orchestrator.UnregisterParticipant(participantID, roomID)
		}
		return domain.Participant{}, "", err
	}

	token, err := s.tokens.Generate(participantID, displayName, roomID)
	if err != nil {
		return domain.Participant{}, "", err
	}
	return result.(domain.Participant), token, nil
}

// IssueToken verifies the join code and hands out a room token without
// joining: the join happens when the websocket session opens.
func (s *RoomService) IssueToken(roomID domain.RoomID, joinCode, participantID, displayName string) (string, error) {
	if err := s.checkJoinCode(roomID, joinCode); err != nil {
		return "", err
	}
	return s.tokens.Generate(participantID, displayName, roomID)
}

// JoinAuthenticated joins a participant whose token already passed the
// join-code gate. The sink is subscribed before the join is applied so
// no event published afterwards is missed.
func (s *RoomService) JoinAuthenticated(ctx context.Context, claims *auth.RoomClaims, sink contract.EventSink) (domain.Participant, error) {
	roomID := claims.RoomID()
	if sink != nil {
		s.orchestrator.RegisterParticipant(claims.ParticipantID, roomID, sink)
	}
	result, err := s.orchestrator.Execute(ctx, domain.JoinRoomCommand{
		RoomID:        roomID,
		ParticipantID: claims.ParticipantID,
		DisplayName:   claims.DisplayName,
	})
	if err != nil {
		if sink != nil {
			s.orchestrator.UnregisterParticipant(claims.ParticipantID, roomID)
		}
		return domain.Participant{}, err
	}
	return result.(domain.Participant), nil
}

func (s *RoomService) checkJoinCode(roomID domain.RoomID, joinCode string) error {
	s.mu.RLock()
	hash, known := s.joinCodes[roomID]
	s.mu.RUnlock()
	if !known {
		return errors.ErrRoomNotFound
	}
	if hash == "" {
		return nil
	}
	match, err := auth.CompareJoinCode(joinCode, hash)
	if err != nil {
		return err
	}
	if !match {
		return errors.ErrInvalidJoinCode
	}
	return nil
}

// Leave removes the participant; their owned share, if any, is stopped
// in the same operation.
func (s *RoomService) Leave(ctx context.Context, roomID domain.RoomID, participantID string) (domain.LeaveResult, error) {
	result, err := s.orchestrator.Execute(ctx, domain.LeaveRoomCommand{
		RoomID:        roomID,
		ParticipantID: participantID,
	})
	s.orchestrator.UnregisterParticipant(participantID, roomID)
	if err != nil {
		return domain.LeaveResult{}, err
	}
	return result.(domain.LeaveResult), nil
}

func (s *RoomService) SendMessage(ctx context.Context, roomID domain.RoomID, senderID, body string) (domain.Message, error) {
	result, err := s.orchestrator.Execute(ctx, domain.PostMessageCommand{
		RoomID:   roomID,
		SenderID: senderID,
		Body:     body,
	})
	if err != nil {
		return domain.Message{}, err
	}
	return result.(domain.Message), nil
}

func (s *RoomService) SetPresence(ctx context.Context, roomID domain.RoomID, participantID string, presence domain.Presence) (domain.Participant, error) {
	result, err := s.orchestrator.Execute(ctx, domain.SetPresenceCommand{
		RoomID:        roomID,
		ParticipantID: participantID,
		Presence:      presence,
	})
	if err != nil {
		return domain.Participant{}, err
	}
	return result.(domain.Participant), nil
}

func (s *RoomService) StartScreenShare(ctx context.Context, roomID domain.RoomID, ownerID string) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.StartShareCommand{RoomID: roomID, OwnerID: ownerID})
}

func (s *RoomService) GrantScreenShare(ctx context.Context, roomID domain.RoomID, ticket domain.Ticket, handle domain.CaptureHandle) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.GrantShareCommand{RoomID: roomID, Ticket: ticket, Handle: handle})
}

func (s *RoomService) DenyScreenShare(ctx context.Context, roomID domain.RoomID, ticket domain.Ticket, reason string) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.DenyShareCommand{RoomID: roomID, Ticket: ticket, Reason: reason})
}

func (s *RoomService) StopScreenShare(ctx context.Context, roomID domain.RoomID, ownerID string) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.StopShareCommand{RoomID: roomID, OwnerID: ownerID})
}

func (s *RoomService) ScreenShareEnded(ctx context.Context, roomID domain.RoomID) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.ShareEndedCommand{RoomID: roomID})
}

func (s *RoomService) AcknowledgeShareError(ctx context.Context, roomID domain.RoomID) (domain.ShareResult, error) {
	return s.shareCommand(ctx, domain.AckShareErrorCommand{RoomID: roomID})
}

func (s *RoomService) shareCommand(ctx context.Context, cmd domain.Command) (domain.ShareResult, error) {
	result, err := s.orchestrator.Execute(ctx, cmd)
	if err != nil {
		return domain.ShareResult{}, err
	}
	return result.(domain.ShareResult), nil
}

// History returns the live room log, oldest first.
func (s *RoomService) History(ctx context.Context, roomID domain.RoomID) ([]domain.Message, error) {
	result, err := s.orchestrator.Execute(ctx, domain.GetHistoryCommand{RoomID: roomID})
	if err != nil {
		return nil, err
	}
	messages, _ := result.([]domain.Message)
	return messages, nil
}

// ArchivedMessages pages through the badger archive, newest first.
func (s *RoomService) ArchivedMessages(roomID domain.RoomID, cursor *string) ([]repositories.ArchivedMessage, *string, error) {
	return s.archive.GetMessages(roomID, cursor)
}

func (s *RoomService) Participants(ctx context.Context, roomID domain.RoomID) ([]domain.Participant, error) {
	result, err := s.orchestrator.Execute(ctx, domain.GetParticipantsCommand{RoomID: roomID})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Participant), nil
}

func (s *RoomService) CurrentShare(ctx context.Context, roomID domain.RoomID) (domain.ScreenShareSession, error) {
	result, err := s.orchestrator.Execute(ctx, domain.GetShareCommand{RoomID: roomID})
	if err != nil {
		return domain.ScreenShareSession{}, err
	}
	return result.(domain.ScreenShareSession), nil
}

// Search runs a full-text query over the room's archived messages.
func (s *RoomService) Search(ctx context.Context, roomID domain.RoomID, query string, offset int) ([]repositories.ArchivedMessage, uint64, error) {
	return s.search.Search(ctx, query, roomID, offset)
}
