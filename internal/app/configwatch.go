package app

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jmylchreest/dailytext/internal/config"
)

// ConfigWatcher polls the config file and hands validated configs to a
// reload callback. Invalid edits are reported and the last good config
// stays current.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path         string
	lastModTime  time.Time
	current      *config.Config
	pollInterval time.Duration

	onReload func(cfg *config.Config)
	onError  func(err error)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		logger:       logger,
		path:         path,
		pollInterval: time.Second,
	}
}

// SetPollInterval sets how often the file is checked.
func (w *ConfigWatcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetReloadCallback sets the callback for a successfully reloaded config.
// It runs on the watcher goroutine.
func (w *ConfigWatcher) SetReloadCallback(cb func(cfg *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// SetErrorCallback sets the callback for a config that fails to load.
func (w *ConfigWatcher) SetErrorCallback(cb func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = cb
}

// Start begins polling. initial is the config currently in effect.
func (w *ConfigWatcher) Start(ctx context.Context, initial *config.Config) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.current = initial
	if info, err := os.Stat(w.path); err == nil {
		w.lastModTime = info.ModTime()
	}
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.pollInterval
	w.mu.Unlock()

	go w.loop(ctx, interval)
	w.logger.Debug("config watcher started", "path", w.path, "interval", interval)
}

// Stop stops polling and waits for the poll goroutine to exit.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
	w.logger.Debug("config watcher stopped")
}

// Current returns the last valid config.
func (w *ConfigWatcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *ConfigWatcher) loop(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *ConfigWatcher) check() {
	w.mu.RLock()
	onReload, onError := w.onReload, w.onError
	last := w.lastModTime
	w.mu.RUnlock()

	info, err := os.Stat(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to stat config file", "path", w.path, "error", err)
		}
		return
	}
	if !info.ModTime().After(last) {
		return
	}

	w.mu.Lock()
	w.lastModTime = info.ModTime()
	w.mu.Unlock()

	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config file changed but failed to load, keeping previous", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
}
