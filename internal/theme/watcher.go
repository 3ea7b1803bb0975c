package theme

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-resolves a user theme whenever its file is written.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	theme   *Theme
	onCSS   func(css string)
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for theme. onCSS receives the new CSS and
// runs on the watcher goroutine.
func NewWatcher(theme *Theme, onCSS func(css string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if theme == nil || theme.Bundled {
		return nil, fmt.Errorf("bundled themes cannot be watched")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		theme:   theme,
		onCSS:   onCSS,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. A watcher that fails to start is closed and
// cannot be restarted.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// Editors replace files on save, so watch the directory instead
	if err := w.watcher.Add(filepath.Dir(w.theme.Path)); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.theme.Path), err)
	}
	w.running = true

	go w.loop()
	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

func (w *Watcher) loop() {
	name := filepath.Base(w.theme.Path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	changed, err := w.theme.Reload()
	css := w.theme.CSS
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("failed to reload theme", "path", w.theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}
	w.logger.Info("theme file changed", "name", w.theme.Name)
	if w.onCSS != nil {
		w.onCSS(css)
	}
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
