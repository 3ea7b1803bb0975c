package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// GlibScheduler runs widget timers as glib sources on the GTK main loop,
// so callbacks touch window state on the UI thread.
type GlibScheduler struct{}

// NewGlibScheduler creates a GlibScheduler.
func NewGlibScheduler() *GlibScheduler {
	return &GlibScheduler{}
}

// AfterFunc implements widget.Scheduler.
func (s *GlibScheduler) AfterFunc(d time.Duration, fn func()) func() {
	fired := false
	callback := func() bool {
		fired = true
		fn()
		return false // one-shot; the widget re-arms itself
	}

	var handle glib.SourceHandle
	if d%time.Second == 0 {
		// Whole seconds let glib coalesce wakeups
		handle = glib.TimeoutSecondsAdd(uint(d/time.Second), callback)
	} else {
		handle = glib.TimeoutAdd(uint(d/time.Millisecond), callback)
	}

	return func() {
		// Removing a source that already returned false is an error in glib
		if fired {
			return
		}
		fired = true
		glib.SourceRemove(uint(handle))
	}
}
