package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("cancelled callback ran %d times", got)
	}
}

func TestDebouncerRunsAgainAfterFiring(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("callback ran %d times, want 2", got)
	}
}

func TestWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte("presets: []\n"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := Watch(path, 20*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	// Give the watcher goroutine a moment to start, then modify the file.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("presets: [] # edited\n"), 0644); err != nil {
		t.Fatalf("edit file: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reported the write")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte("presets: []\n"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	var calls atomic.Int32
	w, err := Watch(path, 20*time.Millisecond, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("sibling write triggered %d callbacks", got)
	}
}
