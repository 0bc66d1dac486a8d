package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"worktime/internal/logging"
)

// StoreWatcher signals writes to the database file and its journal files.
// Signals are coalesced to at most one per interval; a write inside the
// interval is delivered when it ends.
type StoreWatcher struct {
	watcher  *fsnotify.Watcher
	base     string
	interval time.Duration
	changes  chan struct{}
	logger   *slog.Logger

	mu       sync.Mutex
	lastSent time.Time
	pending  *time.Timer
}

// NewStoreWatcher watches the directory holding dbPath
func NewStoreWatcher(dbPath string, logger *slog.Logger) (*StoreWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(dbPath)); err != nil {
		w.Close()
		return nil, err
	}
	return &StoreWatcher{
		watcher:  w,
		base:     filepath.Base(dbPath),
		interval: time.Second,
		changes:  make(chan struct{}, 1),
		logger:   logging.OrDiscard(logger),
	}, nil
}

// Changes delivers one value per coalesced write
func (sw *StoreWatcher) Changes() <-chan struct{} {
	return sw.changes
}

// Run consumes file events until ctx is done or the watcher is closed
func (sw *StoreWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if sw.relevant(event) {
				sw.notify()
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("store_watch_error", "error", err)
		}
	}
}

// Close stops watching
func (sw *StoreWatcher) Close() error {
	sw.mu.Lock()
	if sw.pending != nil {
		sw.pending.Stop()
	}
	sw.mu.Unlock()
	return sw.watcher.Close()
}

func (sw *StoreWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), sw.base)
}

func (sw *StoreWatcher) notify() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.pending != nil {
		return
	}
	wait := sw.interval - time.Since(sw.lastSent)
	if wait <= 0 {
		sw.send()
		return
	}
	sw.pending = time.AfterFunc(wait, func() {
		sw.mu.Lock()
		defer sw.mu.Unlock()
		sw.pending = nil
		sw.send()
	})
}

// send must be called with mu held
func (sw *StoreWatcher) send() {
	sw.lastSent = time.Now()
	select {
	case sw.changes <- struct{}{}:
	default:
	}
}
