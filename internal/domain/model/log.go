package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log entry kinds.
const (
	LogKindRequest   = "http_request"
	LogKindReconcile = "reconciliation"
)

// LogEntry is a stored request-log record. It carries request metadata and reconciliation
// outcomes only, never invoice data.
type LogEntry struct {
	ID         primitive.ObjectID `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Kind       string             `json:"kind"`
	Level      string             `json:"level"`
	Message    string             `json:"message"`
	RequestID  string             `json:"request_id,omitempty"`
	Method     string             `json:"method,omitempty"`
	Path       string             `json:"path,omitempty"`
	StatusCode int                `json:"status_code,omitempty"`
	DurationMS int64              `json:"duration_ms,omitempty"`
	IP         string             `json:"ip,omitempty"`
	UserAgent  string             `json:"user_agent,omitempty"`
	Error      string             `json:"error,omitempty"`

	// Reconciliation outcome, set on LogKindReconcile entries.
	InvoiceCount int    `json:"invoice_count,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Status       string `json:"status,omitempty"`

	Fields map[string]any `json:"fields,omitempty"`
}

// WithField adds a field to the entry, initialising Fields when needed.
func (e *LogEntry) WithField(key string, value any) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// LogQueryOptions filters stored log entries.
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
