package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Player decodes sound files and plays them through the speaker.
type Player struct {
	mu          sync.Mutex
	logger      *slog.Logger
	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate
	cache       map[string]*beep.Buffer
}

// NewPlayer creates a player at full volume. The speaker is opened on
// first playback.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to 0.0-1.0.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, volume))
}

// Volume returns the playback volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play plays the file at path without blocking.
func (p *Player) Play(path string) error {
	buf, err := p.Load(path)
	if err != nil {
		return err
	}
	if err := p.ensureSpeaker(buf.Format().SampleRate); err != nil {
		return err
	}

	p.mu.Lock()
	volume, rate := p.volume, p.sampleRate
	p.mu.Unlock()

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != rate {
		s = beep.Resample(4, buf.Format().SampleRate, rate, s)
	}
	if volume < 1.0 {
		s = &effects.Volume{
			Streamer: s,
			Base:     10,
			Volume:   volumeToBels(volume),
			Silent:   volume == 0,
		}
	}
	speaker.Play(s)
	return nil
}

// Load decodes path into the cache if needed and returns the buffer.
func (p *Player) Load(path string) (*beep.Buffer, error) {
	p.mu.Lock()
	buf, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return buf, nil
	}

	buf, err := decode(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[path] = buf
	p.mu.Unlock()
	p.logger.Debug("decoded sound", "path", path, "samples", buf.Len())
	return buf, nil
}

// ClearCache drops all decoded sounds.
func (p *Player) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*beep.Buffer)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.cache = make(map[string]*beep.Buffer)
}

func (p *Player) ensureSpeaker(rate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.sampleRate = rate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", rate)
	return nil
}

// decode reads a whole sound file into memory.
func decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = s.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

// volumeToBels maps linear volume to the exponent effects.Volume applies
// with base 10, i.e. log10 of the amplitude gain.
func volumeToBels(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log10(volume)
}
