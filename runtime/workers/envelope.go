package workers

import (
	"context"

	"watchroom/domain"
)

// CommandEnvelope wraps a command with the caller's context and a reply
// slot. The room worker answers every envelope exactly once, so the
// Reply channel must be buffered with capacity 1.
type CommandEnvelope struct {
	Ctx   context.Context
	Cmd   domain.Command
	Reply chan CommandReply
}

// CommandReply carries the synchronous outcome of a command back to the
// caller. Result holds the operation-specific value (message, ticket,
// snapshot) and is nil on error.
type CommandReply struct {
	Result any
	Err    error
}

func NewEnvelope(ctx context.Context, cmd domain.Command) CommandEnvelope {
	return CommandEnvelope{Ctx: ctx, Cmd: cmd, Reply: make(chan CommandReply, 1)}
}
