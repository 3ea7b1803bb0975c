// Package widget implements the daily text widget independently of any
// toolkit. A Widget owns the text lines, the current index, the drag
// gesture state, the window geometry and the rotation timer; toolkits
// provide a Surface to draw on and a Scheduler for the timer.
//
// All mutating methods must be called on the UI loop. Read accessors are
// safe from any goroutine.
package widget

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/dailytext/internal/textlist"
)

// DefaultInterval is the delay between automatic advances.
const DefaultInterval = 24 * time.Hour

// Surface is the render target of a widget.
type Surface interface {
	// SetText displays text verbatim.
	SetText(text string)
	// MoveTo places the window origin at (x, y).
	MoveTo(x, y int)
}

// ChangeFunc is called after the displayed line changes.
type ChangeFunc func(index int, text string)

// Options configures a Widget.
type Options struct {
	Lines     *textlist.TextList
	Interval  time.Duration
	Geometry  Geometry
	Surface   Surface
	Scheduler Scheduler
	Logger    *slog.Logger

	// OnChange fires for every index change, manual or automatic.
	OnChange ChangeFunc
	// OnRotate fires only for timer-driven advances.
	OnRotate ChangeFunc

	// Now is used to report the next rotation time; defaults to time.Now.
	Now func() time.Time
}

// Widget is a single daily text window.
type Widget struct {
	mu sync.RWMutex

	lines    *textlist.TextList
	index    int
	interval time.Duration
	geometry Geometry
	drag     DragTracker

	surface   Surface
	scheduler Scheduler
	logger    *slog.Logger
	onChange  ChangeFunc
	onRotate  ChangeFunc
	now       func() time.Time

	// Rotation timer
	cancel     func()
	generation uint64
	nextAt     time.Time
	closed     bool
}

// New creates a widget showing the first line.
func New(opts Options) *Widget {
	if opts.Lines == nil {
		opts.Lines = textlist.Fallback()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler(nil)
	}

	w := &Widget{
		lines:     opts.Lines,
		interval:  opts.Interval,
		geometry:  opts.Geometry,
		surface:   opts.Surface,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		onChange:  opts.OnChange,
		onRotate:  opts.OnRotate,
		now:       opts.Now,
	}

	w.render(w.lines.At(0))
	return w
}

// Start arms the rotation timer. Calling Start again re-arms it;
// there is never more than one outstanding timer.
func (w *Widget) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.armLocked()
	w.logger.Debug("rotation timer armed", "interval", w.interval, "next", w.nextAt)
}

// Close cancels the rotation timer. A closed widget no longer rotates,
// though manual navigation keeps working until the window is gone.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.disarmLocked()
	w.logger.Debug("rotation timer cancelled")
}

// ShowPrevious moves to the previous line, wrapping to the last.
func (w *Widget) ShowPrevious() {
	w.step(-1, false)
}

// ShowNext moves to the next line, wrapping to the first.
func (w *Widget) ShowNext() {
	w.step(1, false)
}

// RotateTick is the timer callback: it advances like ShowNext and
// schedules the next tick.
func (w *Widget) RotateTick() {
	w.step(1, true)

	w.mu.Lock()
	if !w.closed {
		w.armLocked()
	}
	w.mu.Unlock()
}

// StartDrag records the pointer position relative to the window origin
// when the primary button is pressed.
func (w *Widget) StartDrag(px, py int) {
	w.mu.Lock()
	w.drag.Press(px, py)
	w.mu.Unlock()
}

// EndDrag clears the recorded pointer position.
func (w *Widget) EndDrag() {
	w.mu.Lock()
	w.drag.Release()
	w.mu.Unlock()
}

// DragMove moves the window by the pointer displacement since StartDrag.
// Without a drag in progress it does nothing.
func (w *Widget) DragMove(px, py int) {
	w.mu.Lock()
	dx, dy, ok := w.drag.Motion(px, py)
	if !ok {
		w.mu.Unlock()
		return
	}
	w.geometry = w.geometry.Translate(dx, dy)
	g := w.geometry
	w.mu.Unlock()

	if w.surface != nil {
		w.surface.MoveTo(g.X, g.Y)
	}
}

// SetInterval replaces the rotation interval and, if the timer is armed,
// re-arms it so the next tick happens one full interval from now.
func (w *Widget) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if d == w.interval {
		return
	}
	w.interval = d
	if w.cancel != nil && !w.closed {
		w.armLocked()
	}
	w.logger.Debug("rotation interval changed", "interval", d)
}

// Index returns the current index.
func (w *Widget) Index() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.index
}

// Len returns the number of lines.
func (w *Widget) Len() int {
	return w.lines.Len()
}

// Current returns the displayed line.
func (w *Widget) Current() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lines.At(w.index)
}

// Lines returns the text list.
func (w *Widget) Lines() *textlist.TextList {
	return w.lines
}

// Geometry returns the window geometry.
func (w *Widget) Geometry() Geometry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.geometry
}

// DragState returns the drag gesture state.
func (w *Widget) DragState() DragState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.drag.State()
}

// Interval returns the rotation interval.
func (w *Widget) Interval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.interval
}

// NextRotation returns when the timer fires next, or the zero time
// when it is not armed.
func (w *Widget) NextRotation() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.nextAt
}

// step moves the index by delta modulo the list length and re-renders.
func (w *Widget) step(delta int, rotated bool) {
	w.mu.Lock()
	n := w.lines.Len()
	w.index = ((w.index+delta)%n + n) % n
	index := w.index
	text := w.lines.At(index)
	w.mu.Unlock()

	w.render(text)

	if w.onChange != nil {
		w.onChange(index, text)
	}
	if rotated && w.onRotate != nil {
		w.onRotate(index, text)
	}
}

func (w *Widget) render(text string) {
	if w.surface != nil {
		w.surface.SetText(text)
	}
}

// armLocked replaces any outstanding timer with a fresh one.
// Callbacks from a replaced or cancelled timer are ignored.
func (w *Widget) armLocked() {
	w.disarmLocked()
	w.generation++
	gen := w.generation
	w.nextAt = w.now().Add(w.interval)
	w.cancel = w.scheduler.AfterFunc(w.interval, func() {
		w.mu.RLock()
		stale := w.closed || gen != w.generation
		w.mu.RUnlock()
		if stale {
			return
		}
		w.RotateTick()
	})
}

func (w *Widget) disarmLocked() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.nextAt = time.Time{}
}
