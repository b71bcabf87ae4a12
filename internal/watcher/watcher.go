package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"file-finder/internal/filetypes"
	"file-finder/internal/index"
	"file-finder/internal/logging"
	"file-finder/internal/metrics"
)

// Watcher subscribes to filesystem notifications under the indexed root and
// requests index invalidation when an indexable file changes. Events are
// debounced per path so editor write bursts cost one invalidation, not one
// per write.
type Watcher struct {
	root      string
	supported filetypes.Set
	store     *index.Store
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	stopChan  chan struct{}

	mu   sync.Mutex
	dirs map[string]bool
}

// New creates a watcher over root that invalidates store after changed
// paths have been quiet for debounce.
func New(root string, supported filetypes.Set, store *index.Store, debounce time.Duration) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:      absRoot,
		supported: supported,
		store:     store,
		fsw:       fsw,
		stopChan:  make(chan struct{}),
		dirs:      make(map[string]bool),
	}
	w.debouncer = NewDebouncer(debounce, w.invalidate)
	return w, nil
}

// Start registers the root directory tree and launches the event loop.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		w.fsw.Close()
		return err
	}

	w.mu.Lock()
	n := len(w.dirs)
	w.mu.Unlock()
	logging.Info("Watching %d directories under %s", n, w.root)

	go w.eventLoop()
	return nil
}

// Stop shuts down the event loop and cancels pending debounce timers.
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.fsw.Close()
	w.debouncer.Stop()
}

// addRecursive watches dir and every non-hidden subdirectory beneath it.
// fsnotify watches are not recursive, so each directory needs its own.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			logging.Warn("Cannot watch %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			logging.Warn("Cannot watch %s: %v", path, err)
			metrics.WatcherErrors.Inc()
			return nil
		}
		w.mu.Lock()
		w.dirs[path] = true
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Watcher error: %v", err)
			metrics.WatcherErrors.Inc()
		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	op := opLabel(event.Op)
	if op == "" {
		return
	}
	metrics.WatcherEventsTotal.WithLabelValues(op).Inc()

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	// New directories must be registered before their contents can be
	// observed; a created or moved-in tree may already hold files, so it
	// also invalidates the index.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				logging.Warn("Cannot watch new directory %s: %v", event.Name, err)
				metrics.WatcherErrors.Inc()
			}
			w.debouncer.Trigger(event.Name)
			return
		}
	}

	// A removed or renamed-away directory takes its whole subtree with it.
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.mu.Lock()
		wasDir := w.dirs[event.Name]
		if wasDir {
			delete(w.dirs, event.Name)
		}
		w.mu.Unlock()
		if wasDir {
			w.debouncer.Trigger(event.Name)
			return
		}
	}

	if !w.supported.Contains(filetypes.FromName(name)) {
		return
	}

	logging.Debug("Change detected: %s (%s)", event.Name, op)
	w.debouncer.Trigger(event.Name)
}

// invalidate is the debounce callback: the quiet period for path has
// elapsed, so the current snapshot is marked stale.
func (w *Watcher) invalidate(path string) {
	logging.Debug("Invalidating index for %s", path)
	metrics.WatcherInvalidationsTotal.Inc()
	w.store.RequestInvalidation()
}

// opLabel maps an fsnotify op to its metric label. Chmod-only events carry
// no content change and are dropped.
func opLabel(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
