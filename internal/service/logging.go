package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/repository"
)

// MaxLogQueryLimit caps the number of entries a single query returns.
const MaxLogQueryLimit = 500

// LoggingService stores and reads request-log entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService on top of a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog stores a single entry, assigning an id and timestamp when missing.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if err := s.repo.Create(ctx, toDocument(entry)); err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	return nil
}

// CreateLogs stores entries in bulk.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]*repository.LogEntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = toDocument(entry)
	}
	if err := s.repo.CreateMany(ctx, docs); err != nil {
		return fmt.Errorf("create logs: %w", err)
	}
	return nil
}

// QueryLogs returns matching entries, newest first. The limit is capped at MaxLogQueryLimit.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, toRepositoryOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}

	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = fromDocument(doc)
	}
	return entries, nil
}

// CountLogs counts matching entries.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	n, err := s.repo.Count(ctx, toRepositoryOptions(opts))
	if err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

func toRepositoryOptions(opts model.LogQueryOptions) repository.LogQueryOptions {
	limit := opts.Limit
	if limit <= 0 || limit > MaxLogQueryLimit {
		limit = MaxLogQueryLimit
	}
	return repository.LogQueryOptions{
		RequestID: opts.RequestID,
		Kind:      opts.Kind,
		Level:     opts.Level,
		Method:    opts.Method,
		Path:      opts.Path,
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
		Limit:     limit,
		Skip:      max(opts.Skip, 0),
	}
}

func toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	return &repository.LogEntryDocument{
		ID:           entry.ID,
		Timestamp:    entry.Timestamp,
		Kind:         entry.Kind,
		Level:        entry.Level,
		Message:      entry.Message,
		RequestID:    entry.RequestID,
		Method:       entry.Method,
		Path:         entry.Path,
		StatusCode:   entry.StatusCode,
		DurationMS:   entry.DurationMS,
		IP:           entry.IP,
		UserAgent:    entry.UserAgent,
		Error:        entry.Error,
		InvoiceCount: entry.InvoiceCount,
		Mode:         entry.Mode,
		Status:       entry.Status,
		Fields:       entry.Fields,
	}
}

func fromDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:           doc.ID,
		Timestamp:    doc.Timestamp,
		Kind:         doc.Kind,
		Level:        doc.Level,
		Message:      doc.Message,
		RequestID:    doc.RequestID,
		Method:       doc.Method,
		Path:         doc.Path,
		StatusCode:   doc.StatusCode,
		DurationMS:   doc.DurationMS,
		IP:           doc.IP,
		UserAgent:    doc.UserAgent,
		Error:        doc.Error,
		InvoiceCount: doc.InvoiceCount,
		Mode:         doc.Mode,
		Status:       doc.Status,
		Fields:       doc.Fields,
	}
}
