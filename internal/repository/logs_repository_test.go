//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		opts LogQueryOptions
		want bson.M
	}{
		{
			name: "empty options match everything",
			opts: LogQueryOptions{},
			want: bson.M{},
		},
		{
			name: "exact field filters",
			opts: LogQueryOptions{RequestID: "req-1", Kind: "reconciliation", Level: "info", Method: "POST", Path: "/api/reconcile"},
			want: bson.M{
				"request_id": "req-1",
				"kind":       "reconciliation",
				"level":      "info",
				"method":     "POST",
				"path":       "/api/reconcile",
			},
		},
		{
			name: "time window",
			opts: LogQueryOptions{StartTime: &start, EndTime: &end},
			want: bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}},
		},
		{
			name: "open ended window",
			opts: LogQueryOptions{StartTime: &start},
			want: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name: "limit and skip are not filters",
			opts: LogQueryOptions{Limit: 10, Skip: 5},
			want: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.filter())
		})
	}
}

func TestLogEntryDocument_Prepare(t *testing.T) {
	doc := &LogEntryDocument{Message: "x"}
	doc.prepare()

	assert.False(t, doc.ID.IsZero())
	assert.False(t, doc.Timestamp.IsZero())

	id, ts := doc.ID, doc.Timestamp
	doc.prepare()
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, ts, doc.Timestamp)
}
