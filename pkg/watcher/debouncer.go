// Package watcher reloads the preset file while the app is running, with
// debouncing so editor save bursts collapse into a single reload.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the default debounce window. Editors often write a
// file several times per save (truncate, write, rename); a quarter second
// is enough to fold those into one event.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback invocation: only
// the most recent Trigger's callback runs, after the window elapses.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer. A zero window uses DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window == 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules callback after the window, cancelling any previously
// scheduled callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// Stop() can miss a timer that already fired; the sequence check
		// keeps a stale callback from running alongside a newer one.
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			callback()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
