// Package app wires the widget to its GTK window, the D-Bus control
// service, the chime, the theme loader and config hot-reload, and runs
// the GTK main loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/dailytext/internal/audio"
	"github.com/jmylchreest/dailytext/internal/config"
	"github.com/jmylchreest/dailytext/internal/dbus"
	"github.com/jmylchreest/dailytext/internal/display"
	"github.com/jmylchreest/dailytext/internal/textlist"
	"github.com/jmylchreest/dailytext/internal/theme"
	"github.com/jmylchreest/dailytext/internal/widget"
)

// AppID is the GApplication id. It differs from dbus.BusName, which the
// control service claims separately.
const AppID = "io.github.jmylchreest.dailytext"

// Options configures Run.
type Options struct {
	Config     *config.Config
	// ConfigPath is watched for changes; empty disables hot-reload.
	ConfigPath string
	// TextFile overrides cfg.Text.File when set.
	TextFile   string
	Logger     *slog.Logger
}

// Run shows the widget and blocks until its window is closed or the
// process receives SIGINT or SIGTERM.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	textFile := cfg.Text.File
	if opts.TextFile != "" {
		textFile = opts.TextFile
	}

	app := adw.NewApplication(AppID, 0)

	var (
		win           *display.Window
		w             *widget.Widget
		server        *dbus.Server
		chime         *audio.Chime
		themeLoader   *theme.Loader
		configWatcher *ConfigWatcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			glib.IdleAdd(func() {
				app.Quit()
			})
		case <-ctx.Done():
		}
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			// A second activation just raises the existing window
			if win != nil {
				win.Show(w.Geometry().X, w.Geometry().Y)
			}
			return
		}
		running.Store(true)

		themeLoader = theme.NewLoader(logger)
		themeLoader.LoadTheme(cfg.Theme.Name)
		themeLoader.Apply(nil)
		themeLoader.StartHotReload()

		chime = audio.NewChime(cfg, logger)

		win = display.NewWindow(&app.Application, cfg, logger)
		w = widget.New(widget.Options{
			Lines:    textlist.Load(textFile, logger),
			Interval: cfg.Text.Interval.Duration(),
			Geometry: widget.Geometry{
				X:      cfg.Window.X,
				Y:      cfg.Window.Y,
				Width:  cfg.Window.Width,
				Height: cfg.Window.Height,
			},
			Surface:   win,
			Scheduler: display.NewGlibScheduler(),
			Logger:    logger,
			OnChange: func(index int, text string) {
				if server == nil {
					return
				}
				if err := server.EmitTextChanged(index, text); err != nil {
					logger.Warn("failed to broadcast text change", "error", err)
				}
			},
			OnRotate: chime.OnRotate,
		})
		win.Bind(w)
		win.OnClosed(w.Close)
		win.Show(cfg.Window.X, cfg.Window.Y)
		w.Start()

		if cfg.DBus.Enabled {
			s := dbus.NewServer(w, func(fn func()) { glib.IdleAdd(fn) }, logger)
			if err := s.Start(); err != nil {
				logger.Warn("D-Bus control service unavailable", "error", err)
			} else {
				server = s
			}
		}

		if opts.ConfigPath != "" {
			current := cfg
			configWatcher = NewConfigWatcher(opts.ConfigPath, logger)
			configWatcher.SetReloadCallback(func(next *config.Config) {
				glib.IdleAdd(func() {
					changes := diffConfig(current, next)
					current = next
					if len(changes.restart) > 0 {
						logger.Info("settings changed that apply after restart", "keys", changes.restart)
					}
					if changes.any() {
						applyChanges(changes, next, win, w, chime, themeLoader)
					}
				})
			})
			configWatcher.Start(ctx, cfg)
		}

		logger.Info("dailytext ready", "lines", w.Len(), "interval", w.Interval(), "geometry", w.Geometry().String())
	})

	app.ConnectShutdown(func() {
		logger.Debug("application shutting down")
		if w != nil {
			w.Close()
		}
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if server != nil {
			if err := server.Stop(); err != nil {
				logger.Debug("D-Bus stop", "error", err)
			}
		}
		if chime != nil {
			chime.Close()
		}
		running.Store(false)
	})

	// Flags were already parsed by the CLI; keep GTK from seeing them
	if status := app.Run(os.Args[:1]); status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	return nil
}

// applyChanges pushes a reloaded config into the running components.
// Must be called on the GTK main loop.
func applyChanges(c configChanges, cfg *config.Config, win *display.Window, w *widget.Widget, chime *audio.Chime, themeLoader *theme.Loader) {
	if c.window {
		win.UpdateConfig(cfg)
	}
	if c.interval {
		w.SetInterval(cfg.Text.Interval.Duration())
	}
	if c.audio {
		chime.UpdateConfig(cfg)
	}
	if c.theme {
		themeLoader.LoadTheme(cfg.Theme.Name)
		themeLoader.StartHotReload()
	}
}
