// Package watcher bridges filesystem change notifications to the registry.
//
// It watches the skill root recursively with fsnotify, debounces rapid
// successive events per file, and translates the surviving event into a
// targeted registry mutation: create/write becomes ReloadOne, remove/rename
// becomes Remove. Reload failures are logged best-effort; the watcher never
// stops over a bad file.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"skilld/pkg/logging"
)

// Target is what the watcher drives: the registry's targeted write
// operations.
type Target interface {
	ReloadOne(path string) error
	Remove(path string)
}

// operation classifies a debounced filesystem event.
type operation int

const (
	opReload operation = iota
	opRemove
)

// Watcher watches a skill root for description file changes.
type Watcher struct {
	mu sync.Mutex

	root             string
	target           Target
	watcher          *fsnotify.Watcher
	debounceInterval time.Duration

	// pending tracks the debounce timer and merged operation per path
	pending map[string]*pendingEvent

	stopCh  chan struct{}
	running bool
}

type pendingEvent struct {
	timer     *time.Timer
	operation operation
}

// New creates a watcher for the given skill root. A zero debounceInterval
// selects 500ms.
func New(root string, target Target, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}
	return &Watcher{
		root:             root,
		target:           target,
		debounceInterval: debounceInterval,
		pending:          make(map[string]*pendingEvent),
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching the skill root and all its subdirectories.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = fsw
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	if err := w.addWatchesRecursive(fsw, w.root); err != nil {
		w.Stop()
		return err
	}

	go w.processEvents(ctx, fsw)

	logging.Info("Watcher", "Started watching %s for skill changes", w.root)
	return nil
}

// Stop ends watching and cancels all pending debounced events.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)

	for path, entry := range w.pending {
		entry.timer.Stop()
		delete(w.pending, path)
	}
	if w.watcher != nil {
		_ = w.watcher.Close()
		w.watcher = nil
	}
}

// addWatchesRecursive registers the root and every subdirectory with the
// fsnotify watcher. The root is created if it does not exist yet.
func (w *Watcher) addWatchesRecursive(fsw *fsnotify.Watcher, root string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			logging.Warn("Watcher", "Failed to watch directory %s: %v", path, err)
			return nil
		}
		logging.Debug("Watcher", "Watching directory: %s", path)
		return nil
	})
}

// processEvents handles filesystem events until the context is done or
// Stop is called.
func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return

		case <-w.stopCh:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleFsEvent(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

// handleFsEvent classifies a single fsnotify event and debounces it.
func (w *Watcher) handleFsEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	// A new directory must join the watch set so files created inside it
	// are seen.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				logging.Warn("Watcher", "Failed to watch new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !isMarkdownFile(event.Name) {
		return
	}

	var op operation
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		op = opReload
	case event.Op&fsnotify.Write == fsnotify.Write:
		op = opReload
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		op = opRemove
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		// Rename is treated as removal; the new name triggers a create.
		op = opRemove
	default:
		return
	}

	w.debounce(event.Name, op)
}

// debounce coalesces rapid successive events for the same path, keeping
// only the latest operation.
func (w *Watcher) debounce(path string, op operation) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	if entry, ok := w.pending[path]; ok {
		entry.timer.Stop()
		delete(w.pending, path)
	}

	timer := time.AfterFunc(w.debounceInterval, func() {
		w.mu.Lock()
		entry, ok := w.pending[path]
		if ok {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		if !ok {
			return
		}
		w.dispatch(path, entry.operation)
	})

	w.pending[path] = &pendingEvent{timer: timer, operation: op}
}

// dispatch applies one debounced event to the target. Errors are logged
// best-effort only.
func (w *Watcher) dispatch(path string, op operation) {
	switch op {
	case opReload:
		if err := w.target.ReloadOne(path); err != nil {
			logging.Warn("Watcher", "Reload of %s failed: %v", path, err)
		}
	case opRemove:
		w.target.Remove(path)
	}
}

func isMarkdownFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".md"
}
