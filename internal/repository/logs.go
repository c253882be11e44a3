package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is the MongoDB shape of a request-log entry.
type LogEntryDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp    time.Time          `bson:"timestamp"`
	Kind         string             `bson:"kind"`
	Level        string             `bson:"level"`
	Message      string             `bson:"message"`
	RequestID    string             `bson:"request_id,omitempty"`
	Method       string             `bson:"method,omitempty"`
	Path         string             `bson:"path,omitempty"`
	StatusCode   int                `bson:"status_code,omitempty"`
	DurationMS   int64              `bson:"duration_ms,omitempty"`
	IP           string             `bson:"ip,omitempty"`
	UserAgent    string             `bson:"user_agent,omitempty"`
	Error        string             `bson:"error,omitempty"`
	InvoiceCount int                `bson:"invoice_count,omitempty"`
	Mode         string             `bson:"mode,omitempty"`
	Status       string             `bson:"status,omitempty"`
	Fields       map[string]any     `bson:"fields,omitempty"`
}

func (d *LogEntryDocument) prepare() {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now().UTC()
	}
}

// LogQueryOptions filters request-log queries.
type LogQueryOptions struct {
	RequestID string
	Kind      string
	Level     string
	Method    string
	Path      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

func (o LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	if o.RequestID != "" {
		filter["request_id"] = o.RequestID
	}
	if o.Kind != "" {
		filter["kind"] = o.Kind
	}
	if o.Level != "" {
		filter["level"] = o.Level
	}
	if o.Method != "" {
		filter["method"] = o.Method
	}
	if o.Path != "" {
		filter["path"] = o.Path
	}
	if o.StartTime != nil || o.EndTime != nil {
		window := bson.M{}
		if o.StartTime != nil {
			window["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			window["$lte"] = *o.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// LogsRepository stores request-log entries in MongoDB.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts a single entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.prepare()
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}

// CreateMany inserts entries in one unordered bulk write.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]any, len(entries))
	for i, entry := range entries {
		entry.prepare()
		docs[i] = entry
	}

	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert request logs: %w", err)
	}
	return nil
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, fmt.Errorf("find request logs: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []*LogEntryDocument{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode request logs: %w", err)
	}
	return entries, nil
}

// Count returns the number of matching entries, ignoring Limit and Skip.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, opts.filter())
	if err != nil {
		return 0, fmt.Errorf("count request logs: %w", err)
	}
	return n, nil
}
