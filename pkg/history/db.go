// Package history persists completed breathing sessions to a local SQLite
// database. It is a log, not a settings store: nothing here feeds back
// into configuration.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/pacer"
)

// Record is one finished session as stored in the log.
type Record struct {
	ID        int64
	StartedAt time.Time
	StoppedAt time.Time
	Config    breath.Config
	Cycles    int
	// StopCause is "user" for an explicit stop, "error" otherwise.
	StopCause string
	Error     string
}

// Totals aggregates the whole log for the stats line.
type Totals struct {
	Sessions     int
	Cycles       int
	TotalSeconds float64
}

// DB handles session log persistence.
type DB struct {
	db *sql.DB
}

// DefaultPath returns the session log location, typically
// ~/.config/breathe/history.db.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, "breathe", "history.db"), nil
}

// Open opens or creates the session log at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	h := &DB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return h, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		stopped_at DATETIME NOT NULL,
		breaths_per_minute INTEGER NOT NULL,
		inhale_percent INTEGER NOT NULL,
		exhale_percent INTEGER NOT NULL,
		hold_percent INTEGER NOT NULL,
		style TEXT NOT NULL,
		cycles INTEGER NOT NULL DEFAULT 0,
		stop_cause TEXT NOT NULL DEFAULT 'user',
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`
	_, err := d.db.Exec(schema)
	return err
}

// RecordSession inserts a finished session summary into the log.
func (d *DB) RecordSession(s pacer.Summary) (int64, error) {
	cause, errText := "user", ""
	if s.Err != nil {
		cause, errText = "error", s.Err.Error()
	}

	res, err := d.db.Exec(`
		INSERT INTO sessions (
			started_at, stopped_at,
			breaths_per_minute, inhale_percent, exhale_percent, hold_percent, style,
			cycles, stop_cause, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.StartedAt, s.StoppedAt,
		s.Config.BreathsPerMinute, s.Config.InhalePercent, s.Config.ExhalePercent,
		s.Config.HoldPercent, string(s.Config.Style),
		s.Cycles, cause, errText)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the most recent sessions, newest first.
func (d *DB) Recent(limit int) ([]Record, error) {
	rows, err := d.db.Query(`
		SELECT id, started_at, stopped_at,
		       breaths_per_minute, inhale_percent, exhale_percent, hold_percent, style,
		       cycles, stop_cause, error
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var style string
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.StoppedAt,
			&r.Config.BreathsPerMinute, &r.Config.InhalePercent, &r.Config.ExhalePercent,
			&r.Config.HoldPercent, &style,
			&r.Cycles, &r.StopCause, &r.Error); err != nil {
			return nil, err
		}
		r.Config.Style = breath.Style(style)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats returns log-wide totals.
func (d *DB) Stats() (Totals, error) {
	var t Totals
	var seconds sql.NullFloat64
	err := d.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(cycles), 0),
		       COALESCE(SUM((julianday(stopped_at) - julianday(started_at)) * 86400.0), 0)
		FROM sessions
	`).Scan(&t.Sessions, &t.Cycles, &seconds)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	t.TotalSeconds = seconds.Float64
	return t, nil
}
