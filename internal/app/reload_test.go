package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/dailytext/internal/config"
)

func TestDiffConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
		want   configChanges
	}{
		{
			name:   "no change",
			modify: func(c *config.Config) {},
			want:   configChanges{},
		},
		{
			name:   "opacity",
			modify: func(c *config.Config) { c.Window.Opacity = 0.5 },
			want:   configChanges{window: true},
		},
		{
			name:   "color scheme",
			modify: func(c *config.Config) { c.Theme.ColorScheme = "dark" },
			want:   configChanges{window: true},
		},
		{
			name:   "interval",
			modify: func(c *config.Config) { c.Text.Interval = config.Duration(time.Hour) },
			want:   configChanges{interval: true},
		},
		{
			name:   "audio",
			modify: func(c *config.Config) { c.Audio.Enabled = true },
			want:   configChanges{audio: true},
		},
		{
			name:   "theme",
			modify: func(c *config.Config) { c.Theme.Name = "minimal" },
			want:   configChanges{theme: true},
		},
		{
			name: "startup only",
			modify: func(c *config.Config) {
				c.Text.File = "other.txt"
				c.Window.X = 5
				c.DBus.Enabled = false
			},
			want: configChanges{restart: []string{"text.file", "window.x/y", "dbus.enabled"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := config.DefaultConfig()
			next := config.DefaultConfig()
			tt.modify(next)

			got := diffConfig(old, next)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.window || tt.want.interval || tt.want.audio || tt.want.theme, got.any())
		})
	}
}
