package theme

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the CSS provider installed on the display and swaps its
// contents when the theme changes.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	theme     *Theme
	watcher   *Watcher
}

// NewLoader creates a loader. Must be called on the GTK thread.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	dir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: dir,
	}
}

// Apply installs the provider on display, or the default display if nil.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// LoadTheme resolves and loads a theme by name. A theme that cannot be
// found or read falls back to the default and is logged, not returned.
func (l *Loader) LoadTheme(name string) {
	t, err := Resolve(name, l.themesDir)
	if err != nil {
		l.logger.Warn("theme fallback", "requested", name, "using", t.Name, "error", err)
	}

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.Bundled)
}

// StartHotReload watches the current theme file if it is a user theme.
// Changes are loaded on the GTK main loop.
func (l *Loader) StartHotReload() {
	l.StopHotReload()

	l.mu.Lock()
	t := l.theme
	l.mu.Unlock()
	if t == nil || t.Bundled {
		return
	}

	w, err := NewWatcher(t, func(css string) {
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
		})
	}, l.logger)
	if err != nil {
		l.logger.Warn("failed to create theme watcher", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
		return
	}

	l.mu.Lock()
	l.watcher = w
	l.mu.Unlock()
}

// StopHotReload stops any active theme watcher.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		if err := w.Stop(); err != nil {
			l.logger.Debug("theme watcher close", "error", err)
		}
	}
}
