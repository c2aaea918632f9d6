package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/pacer"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func summary(started time.Time, cycles int, runErr error) pacer.Summary {
	return pacer.Summary{
		Config:    breath.DefaultConfig(),
		StartedAt: started,
		StoppedAt: started.Add(90 * time.Second),
		Cycles:    cycles,
		Err:       runErr,
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if _, err := db.RecordSession(summary(base, 9, nil)); err != nil {
		t.Fatalf("RecordSession error: %v", err)
	}
	if _, err := db.RecordSession(summary(base.Add(time.Hour), 4, nil)); err != nil {
		t.Fatalf("RecordSession error: %v", err)
	}

	records, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].Cycles != 4 || records[1].Cycles != 9 {
		t.Errorf("unexpected order: %d then %d cycles", records[0].Cycles, records[1].Cycles)
	}

	r := records[1]
	if r.Config.BreathsPerMinute != 6 || r.Config.Style != breath.StyleCircle {
		t.Errorf("config round-trip failed: %+v", r.Config)
	}
	if r.StopCause != "user" || r.Error != "" {
		t.Errorf("clean stop recorded as %q/%q", r.StopCause, r.Error)
	}
}

func TestRecordErrorSession(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if _, err := db.RecordSession(summary(base, 1, errors.New("display vanished"))); err != nil {
		t.Fatalf("RecordSession error: %v", err)
	}

	records, err := db.Recent(1)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if records[0].StopCause != "error" || records[0].Error != "display vanished" {
		t.Errorf("error session recorded as %q/%q", records[0].StopCause, records[0].Error)
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)

	empty, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if empty.Sessions != 0 || empty.Cycles != 0 || empty.TotalSeconds != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	db.RecordSession(summary(base, 9, nil))
	db.RecordSession(summary(base.Add(time.Hour), 4, nil))

	totals, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if totals.Sessions != 2 || totals.Cycles != 13 {
		t.Errorf("totals = %+v, want 2 sessions, 13 cycles", totals)
	}
	// Each test session spans 90 seconds.
	if totals.TotalSeconds < 175 || totals.TotalSeconds > 185 {
		t.Errorf("total seconds = %v, want about 180", totals.TotalSeconds)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	db.Close()
}
