// Package theme handles CSS theme loading and hot-reload for the widget
// window. Themes are resolved from ~/.config/dailytext/themes/ first and
// fall back to the bundled themes.
package theme
