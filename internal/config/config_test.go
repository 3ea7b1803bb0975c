package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "daily-text.txt", cfg.Text.File)
	assert.Equal(t, 24*time.Hour, cfg.Text.Interval.Duration())
	assert.Equal(t, 200, cfg.Window.Width)
	assert.Equal(t, 150, cfg.Window.Height)
	assert.Equal(t, 100, cfg.Window.X)
	assert.Equal(t, 100, cfg.Window.Y)
	assert.InDelta(t, 0.8, cfg.Window.Opacity, 0.0001)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.DBus.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/dailytext.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dailytext.toml")

	content := `
[text]
file = "quotes.txt"
interval = "30m"

[window]
width = 320
height = 120
x = 40
y = 60
opacity = 0.95
layer = "top"

[theme]
name = "minimal"
color_scheme = "dark"

[audio]
enabled = true
volume = 50
sound = "~/chime.ogg"

[tui]
width = 40
height = 8

[dbus]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "quotes.txt", cfg.Text.File)
	assert.Equal(t, 30*time.Minute, cfg.Text.Interval.Duration())
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 120, cfg.Window.Height)
	assert.Equal(t, 40, cfg.Window.X)
	assert.Equal(t, 60, cfg.Window.Y)
	assert.InDelta(t, 0.95, cfg.Window.Opacity, 0.0001)
	assert.Equal(t, "top", cfg.Window.Layer)
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 50, cfg.Audio.Volume)
	assert.Equal(t, 40, cfg.TUI.Width)
	assert.Equal(t, 8, cfg.TUI.Height)
	assert.False(t, cfg.DBus.Enabled)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dailytext.toml")

	content := `
[text]
interval = "60000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Bare numbers are milliseconds
	assert.Equal(t, time.Minute, cfg.Text.Interval.Duration())

	// Unchanged fields keep defaults
	assert.Equal(t, "daily-text.txt", cfg.Text.File)
	assert.Equal(t, 200, cfg.Window.Width)
	assert.InDelta(t, 0.8, cfg.Window.Opacity, 0.0001)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dailytext.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dailytext.toml")

	require.NoError(t, os.WriteFile(path, []byte("[text]\ninterval = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty file", func(c *Config) { c.Text.File = "" }, "text file"},
		{"short interval", func(c *Config) { c.Text.Interval = Duration(10 * time.Millisecond) }, "interval"},
		{"narrow window", func(c *Config) { c.Window.Width = 10 }, "width"},
		{"short window", func(c *Config) { c.Window.Height = 10 }, "height"},
		{"opaque overflow", func(c *Config) { c.Window.Opacity = 1.5 }, "opacity"},
		{"invisible", func(c *Config) { c.Window.Opacity = 0 }, "opacity"},
		{"bad layer", func(c *Config) { c.Window.Layer = "floating" }, "layer"},
		{"bad scheme", func(c *Config) { c.Theme.ColorScheme = "sepia" }, "color_scheme"},
		{"loud", func(c *Config) { c.Audio.Volume = 101 }, "volume"},
		{"tiny tui", func(c *Config) { c.TUI.Width = 4 }, "tui size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "sounds/chime.wav"), ExpandPath("~/sounds/chime.wav"))
	assert.Equal(t, "/abs/chime.wav", ExpandPath("/abs/chime.wav"))
	assert.Equal(t, "", ExpandPath(""))
}
