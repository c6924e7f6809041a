//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_search_index.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/index"
	"github.com/google/uuid"

	"watchroom/domain"
)

type ISearchIndex interface {
	Index(message ArchivedMessage) error
	Flush() error
	Search(ctx context.Context, query string, room domain.RoomID, offset int) ([]ArchivedMessage, uint64, error)
}

// SearchIndex provides full-text search over archived messages.
// Documents accumulate in a batch and become visible after Flush; the
// batch is also committed automatically every batchSize documents.
type SearchIndex struct {
	mu        sync.Mutex
	writer    *bluge.Writer
	batch     *index.Batch
	pending   int
	batchSize int
	limit     int
	log       *slog.Logger
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger, batchSize, limit int) *SearchIndex {
	return &SearchIndex{
		writer:    writer,
		batch:     bluge.NewBatch(),
		batchSize: batchSize,
		limit:     limit,
		log:       log,
	}
}

// Index queues a message document. The room is a keyword field so
// search never leaks across rooms.
func (s *SearchIndex) Index(message ArchivedMessage) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewKeywordField("room", string(message.Room)).StoreValue()).
		AddField(bluge.NewKeywordField("sender", message.Sender).StoreValue()).
		AddField(bluge.NewTextField("body", message.Body).StoreValue()).
		AddField(bluge.NewKeywordField("lang", message.Lang).StoreValue()).
		AddField(bluge.NewKeywordField("sequence", strconv.FormatUint(message.Sequence, 10)).StoreValue()).
		AddField(bluge.NewDateTimeField("at", message.At).StoreValue())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch.Update(doc.ID(), doc)
	s.pending++
	if s.pending >= s.batchSize {
		return s.flushLocked()
	}
	return nil
}

// Flush commits the pending batch, making queued documents searchable.
// Idempotent when nothing is pending.
func (s *SearchIndex) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *SearchIndex) flushLocked() error {
	if s.pending == 0 {
		return nil
	}
	if err := s.writer.Batch(s.batch); err != nil {
		return err
	}
	s.log.Debug(fmt.Sprintf("Flushed %d documents to search index", s.pending))
	s.batch.Reset()
	s.pending = 0
	return nil
}

// Search runs a full-text match over message bodies, scoped to one
// room, newest-scored first, paginated by offset.
func (s *SearchIndex) Search(ctx context.Context, query string, room domain.RoomID, offset int) ([]ArchivedMessage, uint64, error) {
	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(string(room)).SetField("room")).
		AddMust(bluge.NewMatchQuery(query).SetField("body"))

	request := bluge.NewTopNSearch(s.limit, q).
		SetFrom(offset).
		WithStandardAggregations()

	reader, err := s.writer.Reader()
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = reader.Close() }()

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	var results []ArchivedMessage
	match, err := iterator.Next()
	for err == nil && match != nil {
		var msg ArchivedMessage
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				if id, parseErr := uuid.Parse(string(value)); parseErr == nil {
					msg.ID = id
				}
			case "room":
				msg.Room = domain.RoomID(value)
			case "sender":
				msg.Sender = string(value)
			case "body":
				msg.Body = string(value)
			case "lang":
				msg.Lang = string(value)
			case "sequence":
				if seq, parseErr := strconv.ParseUint(string(value), 10, 64); parseErr == nil {
					msg.Sequence = seq
				}
			case "at":
				if at, parseErr := bluge.DecodeDateTime(value); parseErr == nil {
					msg.At = at
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		results = append(results, msg)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, 0, err
	}

	return results, iterator.Aggregations().Count(), nil
}
