// Package watch reacts to C source edits by re-running the formatter.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event describes one source file whose content changed on disk.
type Event struct {
	Path string
}

// Watcher monitors a directory tree and reports writes to C sources.
//
// Formatting a watched file triggers one more event for the write-back;
// the pipeline is idempotent, so the second run leaves the file alone and
// the loop settles.
type Watcher struct {
	root   string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher rooted at the given directory.
func NewWatcher(root string, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:       root,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring the tree. It calls the provided callback whenever
// a C source changes, debounced per file so editor save bursts collapse into
// one event. Callbacks run on the watching goroutine; none fire after Watch
// returns. It blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(Event)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.logger.Info("Watching for changes", "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	const debounceDuration = 100 * time.Millisecond
	timers := make(map[string]*time.Timer)
	fires := make(chan string)
	done := make(chan struct{})
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case path := <-fires:
			delete(timers, path)
			callback(Event{Path: path})
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev := w.handleEvent(watcher, event); ev != nil {
				if timer, exists := timers[ev.Path]; exists {
					timer.Stop()
				}
				path := ev.Path
				timers[path] = time.AfterFunc(debounceDuration, func() {
					select {
					case fires <- path:
					case <-done:
					}
				})
			}
		}
	}
}

// handleEvent processes a single fsnotify event. If it's a new directory, it
// adds it to the watcher. If it's a C source change, it returns an Event.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) *Event {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return nil
		}
	}

	if !isSource(event.Name) {
		return nil
	}
	return &Event{Path: event.Name}
}

// addRecursive adds the given path and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// isSource reports whether the path names a C source or header file.
func isSource(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".c" || ext == ".h"
}
