package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// startWatch runs the watcher in the background and waits until it is ready.
func startWatch(t *testing.T, w *Watcher) chan Event {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	events := make(chan Event, 10)
	go func() {
		_ = w.Watch(ctx, func(e Event) {
			events <- e
		})
	}()

	select {
	case <-w.Ready:
	case <-time.After(1 * time.Second):
		t.Fatal("watcher did not become ready in time")
	}
	return events
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	t.Run("source file change", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := filepath.Join(root, "main.c")
		require.NoError(t, os.WriteFile(path, []byte("int main(void)\n{\n}\n"), 0o600))

		w := NewWatcher(root, testLogger())
		events := startWatch(t, w)

		require.NoError(t, os.WriteFile(path, []byte("int main(void)\n{\n\treturn (0);\n}\n"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
	})

	t.Run("created header file", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		w := NewWatcher(root, testLogger())
		events := startWatch(t, w)

		path := filepath.Join(root, "util.h")
		require.NoError(t, os.WriteFile(path, []byte("#ifndef UTIL_H\n"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
	})

	t.Run("irrelevant files are filtered", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		w := NewWatcher(root, testLogger())
		events := startWatch(t, w)

		require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
		source := filepath.Join(root, "main.c")
		require.NoError(t, os.WriteFile(source, []byte("int x;\n"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, source, event.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
	})

	t.Run("new directory is picked up", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		w := NewWatcher(root, testLogger())
		events := startWatch(t, w)

		sub := filepath.Join(root, "src")
		require.NoError(t, os.Mkdir(sub, 0o755))
		// Give the loop a beat to process the create event and start
		// watching the new directory before writing into it.
		time.Sleep(200 * time.Millisecond)

		path := filepath.Join(sub, "lib.c")
		require.NoError(t, os.WriteFile(path, []byte("int y;\n"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
	})

	t.Run("debounce collapses a save burst", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := filepath.Join(root, "burst.c")
		require.NoError(t, os.WriteFile(path, []byte("int a;\n"), 0o600))

		w := NewWatcher(root, testLogger())
		events := startWatch(t, w)

		require.NoError(t, os.WriteFile(path, []byte("int b;\n"), 0o600))
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte("int c;\n"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, path, event.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()
		w := NewWatcher(t.TempDir(), testLogger())
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			err := w.Watch(ctx, func(_ Event) {})
			assert.ErrorIs(t, err, context.Canceled)
			close(done)
		}()

		select {
		case <-w.Ready:
		case <-time.After(1 * time.Second):
			t.Fatal("watcher did not become ready in time")
		}

		cancel()

		select {
		case <-done:
		case <-time.After(1 * time.Second):
			t.Fatal("watcher did not stop on context cancellation")
		}
	})

	t.Run("factory error", func(t *testing.T) {
		t.Parallel()
		w := NewWatcher(t.TempDir(), testLogger())
		w.newWatcher = func() (*fsnotify.Watcher, error) {
			return nil, errors.New("factory error")
		}
		err := w.Watch(context.Background(), func(_ Event) {})
		assert.ErrorContains(t, err, "factory error")
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()
		w := NewWatcher(filepath.Join(t.TempDir(), "gone"), testLogger())
		err := w.Watch(context.Background(), func(_ Event) {})
		assert.Error(t, err)
	})

	t.Run("addRecursive skips hidden directories", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))

		w := NewWatcher(root, testLogger())
		fw, err := fsnotify.NewWatcher()
		require.NoError(t, err)
		defer fw.Close()

		assert.NoError(t, w.addRecursive(fw, root))
	})

	t.Run("handleEvent ignores chmod", func(t *testing.T) {
		t.Parallel()
		w := NewWatcher(t.TempDir(), testLogger())
		assert.Nil(t, w.handleEvent(nil, fsnotify.Event{Name: "main.c", Op: fsnotify.Chmod}))
	})

	t.Run("handleEvent maps source writes", func(t *testing.T) {
		t.Parallel()
		w := NewWatcher(t.TempDir(), testLogger())

		ev := w.handleEvent(nil, fsnotify.Event{Name: "src/main.c", Op: fsnotify.Write})
		require.NotNil(t, ev)
		assert.Equal(t, "src/main.c", ev.Path)

		assert.Nil(t, w.handleEvent(nil, fsnotify.Event{Name: "Makefile", Op: fsnotify.Write}))
	})

	t.Run("handleEvent watches created directories", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		w := NewWatcher(root, testLogger())
		fw, err := fsnotify.NewWatcher()
		require.NoError(t, err)
		defer fw.Close()

		sub := filepath.Join(root, "newdir")
		require.NoError(t, os.Mkdir(sub, 0o755))

		assert.Nil(t, w.handleEvent(fw, fsnotify.Event{Name: sub, Op: fsnotify.Create}))
	})
}

func TestIsSource(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path string
		want bool
	}{
		{"main.c", true},
		{"dir/nested/util.h", true},
		{"main.cpp", false},
		{"Makefile", false},
		{"notes.txt", false},
		{"archive.tar.h", true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, isSource(tc.path))
		})
	}
}
