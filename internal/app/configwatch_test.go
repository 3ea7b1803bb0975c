package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dailytext/internal/config"
)

func writeConfig(t *testing.T, path, body string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func startWatcher(t *testing.T, path string) (*ConfigWatcher, chan *config.Config, chan error) {
	t.Helper()
	reloads := make(chan *config.Config, 4)
	errs := make(chan error, 4)

	w := NewConfigWatcher(path, nil)
	w.SetPollInterval(10 * time.Millisecond)
	w.SetReloadCallback(func(cfg *config.Config) { reloads <- cfg })
	w.SetErrorCallback(func(err error) { errs <- err })
	w.Start(context.Background(), config.DefaultConfig())
	t.Cleanup(w.Stop)
	return w, reloads, errs
}

func TestConfigWatcher_ReloadsValidChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailytext.toml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "[window]\nopacity = 0.8\n", base)

	w, reloads, _ := startWatcher(t, path)

	writeConfig(t, path, "[window]\nopacity = 0.5\n", base.Add(time.Minute))

	select {
	case cfg := <-reloads:
		assert.InDelta(t, 0.5, cfg.Window.Opacity, 1e-9)
		assert.Same(t, cfg, w.Current())
	case <-time.After(2 * time.Second):
		t.Fatal("no reload")
	}
}

func TestConfigWatcher_KeepsPreviousOnInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailytext.toml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "", base)

	w, reloads, errs := startWatcher(t, path)
	initial := w.Current()

	writeConfig(t, path, "[window]\nopacity = 7\n", base.Add(time.Minute))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "opacity")
	case <-reloads:
		t.Fatal("invalid config was applied")
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}
	assert.Same(t, initial, w.Current())
}

func TestConfigWatcher_UnchangedFileIsQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailytext.toml")
	writeConfig(t, path, "", time.Now().Add(-time.Hour))

	_, reloads, errs := startWatcher(t, path)

	select {
	case <-reloads:
		t.Fatal("unexpected reload")
	case <-errs:
		t.Fatal("unexpected error")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfigWatcher_StopIsIdempotent(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "missing.toml"), nil)
	w.SetPollInterval(5 * time.Millisecond)
	w.Start(context.Background(), nil)
	w.Start(context.Background(), nil)
	w.Stop()
	w.Stop()
}
