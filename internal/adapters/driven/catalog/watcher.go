package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the catalog when one of the data files changes and
// publishes the new snapshot. A failed reload keeps the previous snapshot.
type Watcher struct {
	loader   driven.CatalogLoader
	store    driven.CatalogStore
	dir      string
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	// reloaded is signalled after every reload attempt. Used by tests.
	reloaded chan error
}

// NewWatcher creates a watcher over dir. Call Run to start it.
func NewWatcher(dir string, loader driven.CatalogLoader, store driven.CatalogStore) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{
		loader:   loader,
		store:    store,
		dir:      dir,
		debounce: DefaultDebounce,
		watcher:  fw,
		reloaded: make(chan error, 1),
	}, nil
}

// SetDebounce overrides the debounce delay.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Reloaded returns a channel that receives the result of each reload.
// Sends are dropped when nobody is listening.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Run processes file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Catalog watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !isDataFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	logger.Debug("Catalog file changed: %s (%s)", filepath.Base(event.Name), event.Op)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.reload(ctx)
	})
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	catalog, err := w.loader.Load(ctx)
	if err != nil {
		logger.Error("Catalog reload failed, keeping previous data: %v", err)
	} else {
		w.store.Publish(catalog)
		logger.Info("Catalog reloaded from %s", w.dir)
	}

	select {
	case w.reloaded <- err:
	default:
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func isDataFile(path string) bool {
	name := filepath.Base(path)
	for _, f := range DataFiles {
		if name == f {
			return true
		}
	}
	return false
}
