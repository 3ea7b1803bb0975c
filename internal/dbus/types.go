package dbus

import (
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	// Interface is the control interface name.
	Interface = "io.github.jmylchreest.DailyText"
	// Path is the control object path.
	Path dbus.ObjectPath = "/io/github/jmylchreest/DailyText"
	// BusName is the well-known name the widget claims.
	BusName = "io.github.jmylchreest.DailyText"

	// SignalTextChanged is emitted whenever the displayed line changes.
	SignalTextChanged = Interface + ".TextChanged"
)

// ErrNotRunning is returned by the client when no widget owns BusName.
var ErrNotRunning = errors.New("dailytext is not running")

// Controller is the widget surface the service drives.
// Reads may be called from any goroutine.
type Controller interface {
	ShowNext()
	ShowPrevious()
	Index() int
	Len() int
	Current() string
	NextRotation() time.Time
}

// Dispatcher runs fn on the goroutine that owns the widget.
type Dispatcher func(fn func())

// Status is the widget state reported by Current and NextRotation.
type Status struct {
	Index        int       `json:"index" yaml:"index"`
	Count        int       `json:"count" yaml:"count"`
	Text         string    `json:"text" yaml:"text"`
	NextRotation time.Time `json:"next_rotation,omitzero" yaml:"next_rotation,omitempty"`
}

// unixOrZero encodes t for the wire, with 0 meaning no rotation scheduled.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// timeOrZero decodes a wire timestamp.
func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
