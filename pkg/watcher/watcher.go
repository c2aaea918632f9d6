package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one file and invokes a callback, debounced, whenever the
// file is written, created, or renamed into place. The parent directory is
// watched rather than the file itself so atomic-save editors (write to a
// temp file, rename over the target) keep triggering.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce *Debouncer
	done     chan struct{}
}

// Watch starts watching path and calls onChange after each debounced
// change. Close stops the watcher.
func Watch(path string, window time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: NewDebouncer(window),
		done:     make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func()) {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce.Trigger(onChange)
		case _, ok := <-w.fsw.Errors:
			// Watch errors are not fatal for the app; the presets simply
			// stop hot-reloading until restart.
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// Close stops watching and drops any pending debounced callback.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Cancel()
	return w.fsw.Close()
}
