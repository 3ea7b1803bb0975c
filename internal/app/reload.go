package app

import (
	"github.com/jmylchreest/dailytext/internal/config"
)

// configChanges records which components a reloaded config affects.
// The text file and the starting position are read once at startup, so
// changes to them only take effect on restart.
type configChanges struct {
	window   bool
	interval bool
	audio    bool
	theme    bool
	restart  []string
}

func (c configChanges) any() bool {
	return c.window || c.interval || c.audio || c.theme
}

func diffConfig(old, next *config.Config) configChanges {
	var c configChanges

	ow, nw := old.Window, next.Window
	c.window = ow.Opacity != nw.Opacity ||
		ow.Layer != nw.Layer ||
		ow.Width != nw.Width ||
		ow.Height != nw.Height ||
		old.Theme.ColorScheme != next.Theme.ColorScheme
	c.interval = old.Text.Interval != next.Text.Interval
	c.audio = old.Audio != next.Audio
	c.theme = old.Theme.Name != next.Theme.Name

	if old.Text.File != next.Text.File {
		c.restart = append(c.restart, "text.file")
	}
	if ow.X != nw.X || ow.Y != nw.Y {
		c.restart = append(c.restart, "window.x/y")
	}
	if old.DBus != next.DBus {
		c.restart = append(c.restart, "dbus.enabled")
	}
	return c
}
