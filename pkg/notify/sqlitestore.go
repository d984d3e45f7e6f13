package notify

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nubotics/go-nubot/pkg/emotion"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// SQLiteStore persists records in an append-only SQLite table.
// Unlike FileStore it never rewrites history: Save inserts only the
// records beyond what is already persisted.
type SQLiteStore struct {
	db    *sql.DB
	saved int
}

// OpenSQLite opens (or creates) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		emotion TEXT NOT NULL,
		message TEXT NOT NULL,
		severity TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns all persisted records in insertion order.
func (s *SQLiteStore) Load() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, emotion, message, severity FROM notifications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var ts, emo, msg, sev string
		if err := rows.Scan(&ts, &emo, &msg, &sev); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		parsed, err := time.Parse(timeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		records = append(records, Record{
			Timestamp: parsed,
			Emotion:   emotion.Label(emo),
			Message:   msg,
			Severity:  Severity(sev),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	s.saved = len(records)
	return records, nil
}

// Save inserts records not yet persisted. Earlier records are immutable,
// so only the tail beyond the saved watermark is written.
func (s *SQLiteStore) Save(records []Record) error {
	if len(records) <= s.saved {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, rec := range records[s.saved:] {
		_, err := tx.Exec(
			`INSERT INTO notifications (timestamp, emotion, message, severity) VALUES (?, ?, ?, ?)`,
			rec.Timestamp.Format(timeFormat), string(rec.Emotion), rec.Message, string(rec.Severity),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.saved = len(records)
	return nil
}

// Verify SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)
