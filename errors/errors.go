package errors

import "fmt"

var (
	ErrDuplicateParticipant = fmt.Errorf("participant already joined")
	ErrUnknownParticipant   = fmt.Errorf("unknown participant")
	ErrEmptyBody            = fmt.Errorf("empty message body")
	ErrUnknownSender        = fmt.Errorf("unknown sender")
	ErrAlreadyActive        = fmt.Errorf("a screen share is already requesting or active")
	ErrInvalidTicket        = fmt.Errorf("invalid or resolved share ticket")
	ErrNotOwner             = fmt.Errorf("not the owner of the active share")
	ErrNoCaptureHandle      = fmt.Errorf("missing capture handle")
	ErrInvalidPresence      = fmt.Errorf("invalid presence value")

	ErrRoomExists      = fmt.Errorf("room already exists")
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrInvalidJoinCode = fmt.Errorf("invalid join code")

	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyWords       = fmt.Errorf("no words have been found")
	ErrInvalidPayload   = fmt.Errorf("invalid event payload")
	ErrNotStarted       = fmt.Errorf("orchestrator is not started")
	ErrInvalidToken     = fmt.Errorf("invalid token")
	ErrInvalidHash      = fmt.Errorf("invalid hash format")
	ErrPasswordMismatch = fmt.Errorf("password does not match")
)
