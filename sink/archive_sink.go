package sink

import (
	"context"
	"log/slog"

	"watchroom/domain/event"
	"watchroom/repositories"
)

// ArchiveSink copies every appended message into the badger archive.
// Non-message events are ignored.
type ArchiveSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewArchiveSink(repository repositories.IMessageRepository, log *slog.Logger) ArchiveSink {
	return ArchiveSink{repository: repository, log: log}
}

func (d ArchiveSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageAppended:
		return d.repository.StoreMessage(repositories.FromMessage(evt.Room, evt.Message))
	default:
		return nil
	}
}
