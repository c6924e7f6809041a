package sink

import (
	"context"
	"log/slog"

	"watchroom/domain/event"
	"watchroom/repositories"
)

// SearchSink feeds appended messages to the full-text index. Each
// message is flushed right away; at chat rates the batch never grows
// past one entry, and search stays consistent with the archive.
type SearchSink struct {
	index repositories.ISearchIndex
	log   *slog.Logger
}

func NewSearchSink(index repositories.ISearchIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageAppended:
		if err := s.index.Index(repositories.FromMessage(evt.Room, evt.Message)); err != nil {
			return err
		}
		return s.index.Flush()
	default:
		return nil
	}
}
