// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultTextFile = "daily-text.txt"
	DefaultInterval = 24 * time.Hour
	DefaultWidth    = 200
	DefaultHeight   = 150
	DefaultX        = 100
	DefaultY        = 100
	DefaultOpacity  = 0.8
)

// Config represents the dailytext configuration.
// Loaded from ~/.config/dailytext/dailytext.toml
type Config struct {
	Text   TextConfig   `toml:"text"`
	Window WindowConfig `toml:"window"`
	Theme  ThemeConfig  `toml:"theme"`
	Audio  AudioConfig  `toml:"audio"`
	TUI    TUIConfig    `toml:"tui"`
	DBus   DBusConfig   `toml:"dbus"`
}

// TextConfig controls where lines come from and how often they rotate.
type TextConfig struct {
	File     string   `toml:"file"`     // Resolved relative to the working directory
	Interval Duration `toml:"interval"` // e.g. "24h", "30m"
}

// WindowConfig contains the desktop window geometry.
type WindowConfig struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	X       int     `toml:"x"`
	Y       int     `toml:"y"`
	Opacity float64 `toml:"opacity"` // 0.0-1.0
	Layer   string  `toml:"layer"`   // "background", "bottom", "top", "overlay"
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// AudioConfig contains the rotation chime settings.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Sound   string `toml:"sound"`  // wav, ogg or mp3
}

// TUIConfig holds the terminal rendition geometry, in cells.
type TUIConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	X      int `toml:"x"`
	Y      int `toml:"y"`
}

// DBusConfig toggles the session bus control service.
type DBusConfig struct {
	Enabled bool `toml:"enabled"`
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// Layer is the layer-shell layer the window is placed on.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerBottom     Layer = "bottom"
	LayerTop        Layer = "top"
	LayerOverlay    Layer = "overlay"
)

// ValidLayers returns all valid layer values.
func ValidLayers() []Layer {
	return []Layer{LayerBackground, LayerBottom, LayerTop, LayerOverlay}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			File:     DefaultTextFile,
			Interval: Duration(DefaultInterval),
		},
		Window: WindowConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			X:       DefaultX,
			Y:       DefaultY,
			Opacity: DefaultOpacity,
			Layer:   string(LayerBottom),
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		TUI: TUIConfig{
			Width:  30,
			Height: 7,
			X:      4,
			Y:      2,
		},
		DBus: DBusConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dailytext", "dailytext.toml"), nil
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			// No config directory means no config file
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Text.File == "" {
		return errors.New("text file must not be empty")
	}
	if c.Text.Interval.Duration() < time.Second {
		return fmt.Errorf("interval must be at least 1s, got %s", c.Text.Interval.Duration())
	}

	if c.Window.Width < 50 || c.Window.Width > 4000 {
		return fmt.Errorf("width must be between 50 and 4000, got %d", c.Window.Width)
	}
	if c.Window.Height < 50 || c.Window.Height > 4000 {
		return fmt.Errorf("height must be between 50 and 4000, got %d", c.Window.Height)
	}
	if c.Window.Opacity < 0.1 || c.Window.Opacity > 1.0 {
		return fmt.Errorf("opacity must be between 0.1 and 1.0, got %g", c.Window.Opacity)
	}

	validLayer := false
	for _, l := range ValidLayers() {
		if c.Window.Layer == string(l) {
			validLayer = true
			break
		}
	}
	if !validLayer {
		return fmt.Errorf("invalid layer %q, must be one of: %v", c.Window.Layer, ValidLayers())
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if c.TUI.Width < 16 || c.TUI.Height < 5 {
		return fmt.Errorf("tui size must be at least 16x5, got %dx%d", c.TUI.Width, c.TUI.Height)
	}

	return nil
}

// SoundPath returns the chime path with ~ expanded.
func (c *Config) SoundPath() string {
	return ExpandPath(c.Audio.Sound)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
