package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches the prompts root and reports changed record files after a
// debounce window, so an editor save burst produces one callback.
type Watcher struct {
	root         string
	watcher      *fsnotify.Watcher
	onChange     func([]string)
	debounceTime time.Duration
	log          *zap.Logger

	mu            sync.Mutex
	pendingEvents map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over the prompts root.
func NewWatcher(root string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		root:          root,
		watcher:       watcher,
		debounceTime:  500 * time.Millisecond,
		log:           log,
		pendingEvents: make(map[string]bool),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// OnChange sets the callback invoked with changed record paths (relative to
// the prompts root).
func (w *Watcher) OnChange(callback func([]string)) {
	w.onChange = callback
}

// Start registers the root and its category subdirectories with fsnotify
// and begins dispatching events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.log.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk prompts root: %w", err)
	}

	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()
	return nil
}

// Stop shuts down the watcher and waits for its goroutines.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	relPath, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}

	// New category directories need to be watched as they appear.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.log.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return
		}
	}

	if strings.ToLower(filepath.Ext(event.Name)) != ".json" {
		return
	}
	// Temp files from the store's atomic writes are not records.
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		w.pendingEvents[relPath] = true
		w.mu.Unlock()
	}
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounceTime)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	if len(w.pendingEvents) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pendingEvents))
	for path := range w.pendingEvents {
		paths = append(paths, path)
	}
	w.pendingEvents = make(map[string]bool)
	w.mu.Unlock()

	if w.onChange != nil {
		w.log.Debug("prompt files changed", zap.Int("count", len(paths)))
		w.onChange(paths)
	}
}
