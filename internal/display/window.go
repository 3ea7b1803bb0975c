package display

import (
	"log/slog"
	"math"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/dailytext/internal/config"
)

// Controller is the widget behaviour the window forwards input to.
type Controller interface {
	ShowPrevious()
	ShowNext()
	StartDrag(px, py int)
	EndDrag()
	DragMove(px, py int)
	NextRotation() time.Time
}

// Window is the borderless, semi-transparent widget window.
// It implements widget.Surface.
type Window struct {
	window *gtk.Window
	config *config.Config
	logger *slog.Logger

	// Widgets
	box     *gtk.Box
	label   *gtk.Label
	prevBtn *gtk.Button
	nextBtn *gtk.Button

	controller Controller
	onClosed   func()

	// State
	layered bool
	closed  bool
	scheme  string
}

// NewWindow creates the widget window. Input is ignored until Bind is called.
func NewWindow(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	w := &Window{
		config: cfg,
		logger: logger,
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetTitle("Daily Text")
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	w.window.SetOpacity(cfg.Window.Opacity)

	w.initLayerShell()
	w.buildUI()
	w.connectSignals()
	w.applyColorScheme()

	return w
}

// initLayerShell turns the window into a layer surface anchored to the
// top-left corner so margins act as screen coordinates.
func (w *Window) initLayerShell() {
	if !layershell.IsSupported() {
		w.logger.Warn("layer-shell not supported by compositor, window position is up to the window manager")
		return
	}

	layershell.InitForWindow(w.window)
	layershell.SetNamespace(w.window, "dailytext")
	layershell.SetLayer(w.window, toLayerShellLayer(config.Layer(w.config.Window.Layer)))
	layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeRight, false)
	w.layered = true
}

// buildUI constructs the label above a row with the two buttons.
func (w *Window) buildUI() {
	w.box = gtk.NewBox(gtk.OrientationVertical, 6)
	w.box.AddCSSClass("daily-text-widget")
	w.box.SetMarginTop(8)
	w.box.SetMarginBottom(8)
	w.box.SetMarginStart(8)
	w.box.SetMarginEnd(8)

	w.label = gtk.NewLabel("")
	w.label.AddCSSClass("daily-text-label")
	w.label.SetWrap(true)
	w.label.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	w.label.SetVExpand(true)
	w.label.SetHasTooltip(true)
	w.box.Append(w.label)

	buttons := gtk.NewBox(gtk.OrientationHorizontal, 6)
	buttons.AddCSSClass("daily-text-buttons")

	w.prevBtn = gtk.NewButtonWithLabel("Previous")
	w.prevBtn.AddCSSClass("daily-text-previous")
	w.prevBtn.SetHAlign(gtk.AlignStart)
	w.prevBtn.SetHExpand(true)
	buttons.Append(w.prevBtn)

	w.nextBtn = gtk.NewButtonWithLabel("Next")
	w.nextBtn.AddCSSClass("daily-text-next")
	w.nextBtn.SetHAlign(gtk.AlignEnd)
	w.nextBtn.SetHExpand(true)
	buttons.Append(w.nextBtn)

	w.box.Append(buttons)
	w.window.SetChild(w.box)
}

// connectSignals sets up event handlers.
func (w *Window) connectSignals() {
	w.prevBtn.ConnectClicked(func() {
		if w.controller != nil {
			w.controller.ShowPrevious()
		}
	})
	w.nextBtn.ConnectClicked(func() {
		if w.controller != nil {
			w.controller.ShowNext()
		}
	})

	w.label.ConnectQueryTooltip(func(x, y int, keyboardMode bool, tooltip *gtk.Tooltip) bool {
		if w.controller == nil {
			return false
		}
		next := w.controller.NextRotation()
		if next.IsZero() {
			return false
		}
		tooltip.SetText("Next change " + humanize.Time(next))
		return true
	})

	// Press-drag-release on the primary button moves the window.
	// Gesture coordinates are relative to the window, like the widget expects.
	var startX, startY float64
	drag := gtk.NewGestureDrag()
	drag.SetButton(1)
	drag.ConnectDragBegin(func(x, y float64) {
		startX, startY = x, y
		if w.controller != nil {
			w.controller.StartDrag(round(x), round(y))
		}
	})
	drag.ConnectDragUpdate(func(offsetX, offsetY float64) {
		if w.controller != nil {
			w.controller.DragMove(round(startX+offsetX), round(startY+offsetY))
		}
	})
	drag.ConnectDragEnd(func(offsetX, offsetY float64) {
		if w.controller != nil {
			w.controller.EndDrag()
		}
	})
	w.window.AddController(drag)

	w.window.ConnectCloseRequest(func() bool {
		w.closed = true
		if w.onClosed != nil {
			w.onClosed()
		}
		return false // allow the close
	})
}

// Bind connects window input to a controller.
func (w *Window) Bind(c Controller) {
	w.controller = c
}

// OnClosed sets the callback for when the window is closed.
func (w *Window) OnClosed(cb func()) {
	w.onClosed = cb
}

// SetText displays text verbatim, including any trailing line terminator.
func (w *Window) SetText(text string) {
	w.label.SetText(text)
}

// MoveTo places the window origin at (x, y) in screen coordinates.
func (w *Window) MoveTo(x, y int) {
	if !w.layered {
		return
	}
	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, x)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, y)
}

// Show presents the window at (x, y).
func (w *Window) Show(x, y int) {
	w.MoveTo(x, y)
	w.window.Present()
}

// Close closes the window.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.Close()
}

// UpdateConfig applies a reloaded configuration.
// Position is owned by the widget and is not reset here.
func (w *Window) UpdateConfig(cfg *config.Config) {
	w.config = cfg
	w.window.SetOpacity(cfg.Window.Opacity)
	w.window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	if w.layered {
		layershell.SetLayer(w.window, toLayerShellLayer(config.Layer(cfg.Window.Layer)))
	}
	w.applyColorScheme()
	w.logger.Debug("window config updated", "opacity", cfg.Window.Opacity, "layer", cfg.Window.Layer)
}

// applyColorScheme swaps the light/dark CSS class on the container.
func (w *Window) applyColorScheme() {
	scheme := colorSchemeClass(config.ColorScheme(w.config.Theme.ColorScheme))
	if scheme == w.scheme {
		return
	}
	if w.scheme != "" {
		w.box.RemoveCSSClass(w.scheme)
	}
	w.box.AddCSSClass(scheme)
	w.scheme = scheme
}

// colorSchemeClass returns "light" or "dark" based on config or system preference.
func colorSchemeClass(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if adw.StyleManagerGetDefault().Dark() {
			return "dark"
		}
		return "light"
	}
}

// toLayerShellLayer maps the configured layer name.
func toLayerShellLayer(layer config.Layer) layershell.LayerShellLayer {
	switch layer {
	case config.LayerBackground:
		return layershell.LayerShellLayerBackground
	case config.LayerTop:
		return layershell.LayerShellLayerTop
	case config.LayerOverlay:
		return layershell.LayerShellLayerOverlay
	default:
		return layershell.LayerShellLayerBottom
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
