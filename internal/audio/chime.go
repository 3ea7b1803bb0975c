package audio

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/dailytext/internal/config"
)

// Chime plays the configured sound when the widget rotates.
type Chime struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	audio  config.AudioConfig
	sound  string
}

// NewChime creates a chime for cfg. A missing config disables it.
func NewChime(cfg *config.Config, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chime{
		logger: logger,
		player: NewPlayer(logger),
	}
	c.UpdateConfig(cfg)
	return c
}

// Enabled reports whether a rotation would play a sound.
func (c *Chime) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.audio.Enabled && c.sound != ""
}

// Ring plays the chime if enabled. Failures are logged, not returned,
// so a broken sound file never affects rotation.
func (c *Chime) Ring() {
	c.mu.RLock()
	enabled, sound := c.audio.Enabled, c.sound
	c.mu.RUnlock()

	if !enabled || sound == "" {
		return
	}
	if err := c.player.Play(sound); err != nil {
		c.logger.Warn("failed to play chime", "path", sound, "error", err)
	}
}

// OnRotate matches widget.ChangeFunc so the chime can be wired directly.
func (c *Chime) OnRotate(int, string) {
	go c.Ring()
}

// UpdateConfig applies a reloaded config and preloads the sound.
func (c *Chime) UpdateConfig(cfg *config.Config) {
	var audio config.AudioConfig
	var sound string
	if cfg != nil {
		audio = cfg.Audio
		sound = cfg.SoundPath()
	}

	c.mu.Lock()
	changed := sound != c.sound
	c.audio = audio
	c.sound = sound
	c.mu.Unlock()

	c.player.SetVolume(float64(audio.Volume) / 100.0)
	if changed {
		c.player.ClearCache()
	}

	if audio.Enabled && sound != "" {
		if _, err := c.player.Load(sound); err != nil {
			c.logger.Warn("failed to preload chime", "path", sound, "error", err)
		}
	}
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.player.Close()
}
