package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned by Watch when the watcher is already active.
var ErrAlreadyRunning = errors.New("watcher already running")

// Config configures a Watcher.
type Config struct {
	// DebounceInterval is the quiet period before onChange runs.
	DebounceInterval time.Duration
}

// Watcher triggers a callback when any tracked file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer

	mu      sync.RWMutex
	files   map[string]struct{}
	dirs    map[string]struct{}
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a Watcher. It tracks no files until SetFiles is called.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "watch"),
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetFiles replaces the tracked file set. Directories no longer needed are
// unsubscribed. A directory that cannot be watched (for example because it
// does not exist yet) is skipped and reported in the returned error; the
// rest of the set is still applied.
func (w *Watcher) SetFiles(files []string) error {
	wantFiles := make(map[string]struct{}, len(files))
	wantDirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		wantFiles[abs] = struct{}{}
		wantDirs[filepath.Dir(abs)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for dir := range wantDirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			errs = append(errs, fmt.Errorf("failed to watch directory %q: %w", dir, err))
			delete(wantDirs, dir)
			continue
		}
		w.logger.Debug("watching directory", "path", dir)
	}
	for dir := range w.dirs {
		if _, ok := wantDirs[dir]; ok {
			continue
		}
		_ = w.watcher.Remove(dir)
		w.logger.Debug("stopped watching directory", "path", dir)
	}

	w.files = wantFiles
	w.dirs = wantDirs
	return errors.Join(errs...)
}

// Files returns the tracked files, sorted.
func (w *Watcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return sortedKeys(w.files)
}

// Dirs returns the watched directories, sorted.
func (w *Watcher) Dirs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return sortedKeys(w.dirs)
}

// Watch blocks until ctx is cancelled or Close is called, calling onChange
// (debounced) with the last changed path whenever a tracked file changes.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	w.logger.Info("file watcher started",
		"files", len(w.Files()),
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())
			name := event.Name
			w.debounce.Trigger(func() { onChange(name) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Close stops Watch if it is running and releases the fsnotify watcher.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()
	if running {
		<-w.doneCh
	}

	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent keeps content-changing events on tracked files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
