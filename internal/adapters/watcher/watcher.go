package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
// Events whose file content is unchanged since the last batch are dropped.
type Watcher struct {
	walker ports.FileWalker
	hasher ports.Hasher
	logger ports.Logger
	window time.Duration

	mu      sync.Mutex
	digests map[string]string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow sets the debounce window.
func WithWindow(d time.Duration) Option {
	return func(w *Watcher) {
		w.window = d
	}
}

// NewWatcher creates a new Watcher.
func NewWatcher(walker ports.FileWalker, hasher ports.Hasher, logger ports.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		walker:  walker,
		hasher:  hasher,
		logger:  logger,
		window:  DefaultDebounceWindow,
		digests: make(map[string]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch observes roots recursively until ctx is done.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan []string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Warn("not watching missing directory " + root)
			continue
		}
		for dir := range w.walker.WalkDirs(root) {
			if err := fsw.Add(dir); err != nil {
				_ = fsw.Close()
				return nil, zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
			}
		}
		for file := range w.walker.WalkFiles(root) {
			w.changed(file)
		}
	}

	out := make(chan []string)
	var (
		mu     sync.RWMutex
		closed bool
	)
	deb := NewDebouncer(w.window, func(paths []string) {
		mu.RLock()
		defer mu.RUnlock()
		if closed {
			return
		}
		select {
		case out <- paths:
		case <-ctx.Done():
		}
	})

	go func() {
		defer fsw.Close() //nolint:errcheck // Best effort close on shutdown
		w.loop(ctx, fsw, deb)

		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, deb *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(fsw, deb, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "file watcher error"))
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, deb *Debouncer, event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			for dir := range w.walker.WalkDirs(event.Name) {
				_ = fsw.Add(dir)
			}
			return
		}
		if w.changed(event.Name) {
			deb.Add(event.Name)
		}
	case event.Has(fsnotify.Write):
		if w.changed(event.Name) {
			deb.Add(event.Name)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.forget(event.Name)
		deb.Add(event.Name)
	}
}

// changed records the digest of path and reports whether it differs from the previous one.
func (w *Watcher) changed(path string) bool {
	digest, err := w.hasher.ComputeFileHash(path)
	if err != nil {
		// Unreadable files, such as ones being replaced, count as changed.
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.digests[path]; ok && prev == digest {
		return false
	}
	w.digests[path] = digest
	return true
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.digests, path)
}
