package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/logger"
	"github.com/guttosm/reconciliation-service/internal/metrics"
	"github.com/guttosm/reconciliation-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines processing logs.
	NumWorkers int
	// BatchSize is the maximum number of entries written in one call.
	BatchSize int
	// FlushInterval bounds how long an incomplete batch waits.
	FlushInterval time.Duration
	// WriteTimeout is the timeout for writing a batch to the store.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    4,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats is a snapshot of the async logger counters.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// AsyncLogger writes request-log entries through a bounded worker pool.
// Entries are dropped when the buffer is full so request handling never blocks on the store.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entryCh        chan *model.LogEntry
	wg             sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger creates a new async logger and starts its workers.
// It returns nil when loggingService is nil; a nil *AsyncLogger discards entries.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	defaults := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}

	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	for {
		select {
		case entry, ok := <-al.entryCh:
			if !ok {
				al.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.cfg.BatchSize {
				al.flush(batch)
				batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
			}
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.errors.Add(int64(len(batch)))
		metrics.RecordRequestLogEntries("failed", len(batch))
		log := logger.WithComponent("async_logger")
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write request log entries")
		return
	}
	al.written.Add(int64(len(batch)))
	metrics.RecordRequestLogEntries("written", len(batch))
}

// Log enqueues an entry. It reports false when the entry was dropped because the buffer
// is full, the logger is stopped or al is nil.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	al.mu.RLock()
	defer al.mu.RUnlock()

	if al.closed {
		al.drop()
		return false
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		metrics.RecordRequestLogEntries("enqueued", 1)
		return true
	default:
		al.drop()
		return false
	}
}

func (al *AsyncLogger) drop() {
	al.dropped.Add(1)
	metrics.RecordRequestLogEntries("dropped", 1)
}

// Stop flushes pending entries and waits for the workers to exit. It is idempotent.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}

	al.mu.Lock()
	if al.closed {
		al.mu.Unlock()
		return
	}
	al.closed = true
	close(al.entryCh)
	al.mu.Unlock()

	al.wg.Wait()
}

// Stats returns current async logger statistics.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Errors:   al.errors.Load(),
	}
}
