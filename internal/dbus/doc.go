// Package dbus exposes the running widget on the session bus as
// io.github.jmylchreest.DailyText and provides a client for it. Other
// processes (the next, prev, current and status commands, or compositor
// keybindings via busctl) drive the widget through it.
package dbus
