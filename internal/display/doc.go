// Package display renders a widget as a GTK4/libadwaita window.
// It handles window construction, positioning via Wayland layer-shell,
// drag gestures, the navigation buttons and the glib-backed timer.
package display
