package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	queueSize     = 1000
	flushInterval = 5 * time.Second
)

// PGHandler is an slog.Handler that persists ERROR+ records to system_logs.
// Records are queued and written in batches by one goroutine; when the queue
// is full new records are dropped and counted.
type PGHandler struct {
	sink  *pgSink
	attrs []slog.Attr
}

type pgSink struct {
	db       *gorm.DB
	interval time.Duration
	entries  chan models.SystemLog
	dropped  atomic.Int64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	return newPGHandler(db, flushInterval)
}

func newPGHandler(db *gorm.DB, interval time.Duration) *PGHandler {
	s := &pgSink{
		db:       db,
		interval: interval,
		entries:  make(chan models.SystemLog, queueSize),
	}
	s.wg.Add(1)
	go s.run()
	return &PGHandler{sink: s}
}

// Stop writes what is queued and waits for the writer to exit. Records
// handled after Stop are discarded.
func (h *PGHandler) Stop() {
	s := h.sink
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()
	s.wg.Wait()

	if n := s.dropped.Load(); n > 0 {
		stderrLogger().Warn("system log records dropped", "count", n)
	}
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := map[string]any{}
	for _, a := range h.attrs {
		mapAttr(&entry, extra, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		mapAttr(&entry, extra, a)
		return true
	})
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.enqueue(entry)
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: system_logs has flat columns.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}

// mapAttr routes well-known keys to their columns and everything else to
// the extra JSON object.
func mapAttr(entry *models.SystemLog, extra map[string]any, a slog.Attr) {
	switch a.Key {
	case "request_id":
		entry.RequestID = a.Value.String()
	case "user_id":
		s := a.Value.String()
		entry.UserID = &s
	case "action":
		entry.Action = a.Value.String()
	case "error":
		entry.Error = a.Value.String()
	case "latency_ms":
		switch a.Value.Kind() {
		case slog.KindFloat64:
			entry.LatencyMs = int(math.Round(a.Value.Float64()))
		case slog.KindInt64:
			entry.LatencyMs = int(a.Value.Int64())
		}
	default:
		extra[a.Key] = a.Value.Any()
	}
}

func (s *pgSink) enqueue(entry models.SystemLog) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.entries <- entry:
	default:
		s.dropped.Add(1)
	}
}

func (s *pgSink) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	batch := make([]models.SystemLog, 0, batchSize)
	for {
		select {
		case entry, ok := <-s.entries:
			if !ok {
				s.write(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				s.write(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			s.write(batch)
			batch = batch[:0]
		}
	}
}

func (s *pgSink) write(batch []models.SystemLog) {
	if len(batch) == 0 {
		return
	}
	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// Not slog.Default: an ERROR here would be queued straight back.
		stderrLogger().Warn("failed to write system logs", "error", err, "count", len(batch))
	}
}

func stderrLogger() *slog.Logger {
	return slog.New(NewJSONHandler(os.Stderr))
}
