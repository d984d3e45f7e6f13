// Package notify keeps the append-only log of significant emotional events.
//
// Only sad and angry turns qualify. Every append is written through to the
// durable store before returning and triggers a severity-scaled blink on
// the LED gateway. A store failure is logged and swallowed: the in-memory
// log still reflects the append. That durability gap is a deliberate
// trade-off — a caregiver-facing notification must never fail a child's turn.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nubotics/go-nubot/pkg/emotion"
)

// Severity ranks how urgently a caregiver should be alerted.
type Severity string

const (
	Low    Severity = "low"
	Medium Severity = "medium"
	High   Severity = "high"
)

// Record is one immutable notification entry.
type Record struct {
	Timestamp time.Time     `json:"timestamp"`
	Emotion   emotion.Label `json:"emotion"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
}

// Store persists the notification sequence.
type Store interface {
	// Load returns all previously persisted records in insertion order.
	Load() ([]Record, error)

	// Save persists the full record sequence. Implementations may
	// persist incrementally as long as Load returns the same sequence.
	Save(records []Record) error
}

// Blinker is the escalation capability the log needs from the LED gateway.
type Blinker interface {
	Blink(times int, delay time.Duration)
}

// SeverityFor maps an emotion to its notification severity.
// The second return is false for emotions that never notify.
func SeverityFor(label emotion.Label) (Severity, bool) {
	switch label {
	case emotion.Angry:
		return High, true
	case emotion.Sad:
		return Medium, true
	}
	return "", false
}

// blinkPattern returns the escalation pattern for a severity.
func blinkPattern(sev Severity) (times int, delay time.Duration) {
	switch sev {
	case High:
		return 5, 300 * time.Millisecond
	case Medium:
		return 3, 500 * time.Millisecond
	default:
		return 1, time.Second
	}
}

// Log is the concurrency-guarded notification log.
// Appends are serialized by a single mutex so the persisted sequence and
// the in-memory sequence always agree on ordering.
type Log struct {
	store   Store
	blinker Blinker
	logger  *slog.Logger

	mu      sync.Mutex
	records []Record

	// onAppend, when set, is invoked after each successful append.
	// Used by the web layer to stream records to connected caregivers.
	onAppend func(Record)
}

// NewLog creates a log backed by the given store, loading any records
// already persisted. A load failure starts the log empty.
func NewLog(store Store, blinker Blinker, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Log{
		store:   store,
		blinker: blinker,
		logger:  logger.With("component", "notify"),
	}
	if store != nil {
		records, err := store.Load()
		if err != nil {
			l.logger.Warn("loading notifications failed, starting empty", "error", err)
		} else {
			l.records = records
		}
	}
	return l
}

// OnAppend registers a callback invoked for every appended record.
func (l *Log) OnAppend(fn func(Record)) {
	l.mu.Lock()
	l.onAppend = fn
	l.mu.Unlock()
}

// Append records a notification, persists it write-through, and asks the
// gateway to blink with the severity's escalation pattern.
func (l *Log) Append(label emotion.Label, message string, sev Severity) {
	rec := Record{
		Timestamp: time.Now().UTC(),
		Emotion:   label,
		Message:   message,
		Severity:  sev,
	}

	l.mu.Lock()
	l.records = append(l.records, rec)
	if l.store != nil {
		if err := l.store.Save(l.records); err != nil {
			// Known gap: the in-memory log is ahead of the store now.
			l.logger.Warn("persisting notification failed", "error", err)
		}
	}
	fn := l.onAppend
	l.mu.Unlock()

	if l.blinker != nil {
		times, delay := blinkPattern(sev)
		l.blinker.Blink(times, delay)
	}
	if fn != nil {
		fn(rec)
	}

	l.logger.Info("notification appended",
		"emotion", label,
		"severity", sev,
	)
}

// Recent returns up to limit of the most recent records, oldest first.
func (l *Log) Recent(limit int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]Record, limit)
	copy(out, l.records[len(l.records)-limit:])
	return out
}

// Len returns the total number of records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
