package widget

import (
	"sync"
	"time"
)

// Scheduler runs a callback once after a delay.
// Implementations must invoke fn on the UI loop that owns the widget.
type Scheduler interface {
	// AfterFunc schedules fn to run after d and returns a function that
	// cancels it. Calling cancel after fn ran is a no-op.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc and hands the callback
// to dispatch, which is expected to marshal it onto the UI loop.
type TimerScheduler struct {
	dispatch func(fn func())
}

// NewTimerScheduler creates a TimerScheduler.
// A nil dispatch runs callbacks directly on the timer goroutine.
func NewTimerScheduler(dispatch func(fn func())) *TimerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TimerScheduler{dispatch: dispatch}
}

// AfterFunc implements Scheduler.
func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	var (
		mu        sync.Mutex
		cancelled bool
	)

	t := time.AfterFunc(d, func() {
		s.dispatch(func() {
			mu.Lock()
			stop := cancelled
			mu.Unlock()
			if !stop {
				fn()
			}
		})
	})

	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		t.Stop()
	}
}
