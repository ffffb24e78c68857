package app

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounce     = 200 * time.Millisecond
	defaultPollInterval = 10 * time.Second
)

// Reloader is implemented by BoardService.
type Reloader interface {
	Reload() (ReloadResult, error)
}

// DataWatcher reloads the data file when it changes on disk. File events
// come from fsnotify on the file's directory (so editors that replace the
// file by rename are seen); a poll ticker covers filesystems without
// notifications. Reload itself skips unchanged content.
type DataWatcher struct {
	path         func() string
	reloader     Reloader
	logger       *log.Logger
	debounce     time.Duration
	pollInterval time.Duration

	mu            sync.Mutex
	debounceTimer *time.Timer
	watcher       *fsnotify.Watcher
	useFsnotify   bool
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	reloadMu      sync.Mutex // serializes reloads from the debounce timer and the poll loop
}

// WatcherOption configures the watcher.
type WatcherOption func(*DataWatcher)

// WithWatchPollInterval sets the fallback poll interval (default 10s). Zero or less disables polling.
func WithWatchPollInterval(d time.Duration) WatcherOption {
	return func(w *DataWatcher) { w.pollInterval = d }
}

// WithDebounce sets how long to wait after the last file event before reloading (default 200ms).
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *DataWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewDataWatcher creates a watcher. path is consulted on every event so a
// data file switched at runtime is picked up by the poll loop.
func NewDataWatcher(path func() string, reloader Reloader, logger *log.Logger, opts ...WatcherOption) *DataWatcher {
	w := &DataWatcher{
		path:         path,
		reloader:     reloader,
		logger:       logger,
		debounce:     defaultDebounce,
		pollInterval: defaultPollInterval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Start starts the file watcher and fallback poll. Returns when ctx is cancelled or Stop is called.
// If fsnotify fails to initialize, falls back to poll-only mode.
func (w *DataWatcher) Start(ctx context.Context) {
	defer close(w.doneCh)

	watchDir := filepath.Dir(w.path())
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Printf("Watcher: fsnotify init failed (%v), using poll-only", err)
	} else if err := watcher.Add(watchDir); err != nil {
		w.logger.Printf("Watcher: fsnotify add %s failed (%v), using poll-only", watchDir, err)
		_ = watcher.Close()
	} else {
		w.watcher = watcher
		w.useFsnotify = true
	}

	if w.useFsnotify {
		defer w.watcher.Close()
		go w.watchLoop(ctx)
	}

	w.pollLoop(ctx)

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
}

// Stop signals the watcher to stop and waits for Start to return.
func (w *DataWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
}

// CheckOnce runs one reload cycle (for testing or manual trigger).
func (w *DataWatcher) CheckOnce() {
	w.reload()
}

// Trigger schedules a debounced reload.
func (w *DataWatcher) Trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.reload)
}

func (w *DataWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path()) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("Watcher: fsnotify error: %v", err)
		}
	}
}

func (w *DataWatcher) pollLoop(ctx context.Context) {
	if w.pollInterval <= 0 {
		select {
		case <-ctx.Done():
		case <-w.stopCh:
		}
		return
	}
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.reload()
		}
	}
}

func (w *DataWatcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()
	res, err := w.reloader.Reload()
	if err != nil {
		// Reload already logged the failure.
		return
	}
	if res.Changed {
		w.logger.Printf("Watcher: data file changed, %d account(s) loaded", res.Accounts)
	}
}
