package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSS(t *testing.T, dir, name, css string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(css), 0o644))
	return path
}

func TestProcessImports_NoImports(t *testing.T) {
	css := `.daily-text-label { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_Nested(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_grandchild.css", `.grandchild { color: blue; }`)
	writeCSS(t, dir, "_child.css", "@import \"_grandchild.css\";\n.child { color: green; }")

	result := ProcessImports("@import \"_child.css\";\n.main { color: red; }", dir, nil)

	assert.Contains(t, result, "/* imported: _child.css */")
	assert.Contains(t, result, "/* imported: _grandchild.css */")
	assert.Contains(t, result, ".grandchild")
	assert.Contains(t, result, ".child")
	assert.Contains(t, result, ".main")
}

func TestProcessImports_Circular(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_a.css", "@import \"_b.css\";\n.a { color: red; }")
	writeCSS(t, dir, "_b.css", "@import \"_a.css\";\n.b { color: blue; }")

	result := ProcessImports(`@import "_a.css";`, dir, nil)

	assert.Contains(t, result, "/* imported: _a.css */")
	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import prevented: _a.css */")
}

func TestProcessImports_Fallbacks(t *testing.T) {
	result := ProcessImports(`@import "nonexistent.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* import failed: nonexistent.css")

	result = ProcessImports(`@import "_base.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* imported (embedded): _base.css */")
	assert.Contains(t, result, ".daily-text-widget")

	result = ProcessImports(`@import "minimal.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* imported (embedded): minimal.css */")
}

func TestProcessImports_UserThemeImportsBundled(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "mine.css", "@import \"default.css\";\n.x { color: teal; }")

	th, err := Load("mine", path)
	require.NoError(t, err)

	assert.NotContains(t, th.CSS, "@import", "nested bundled imports are inlined")
	assert.Contains(t, th.CSS, "/* imported (embedded): default.css */")
	assert.Contains(t, th.CSS, "/* imported (embedded): _base.css */")
	assert.Contains(t, th.CSS, ".daily-text-widget")
	assert.Contains(t, th.CSS, "teal")
}

func TestProcessImports_EmbeddedCycle(t *testing.T) {
	result := ProcessImports("@import \"_base.css\";\n@import \"default.css\";", t.TempDir(), nil)

	assert.NotContains(t, result, "@import")
	assert.Equal(t, 1, strings.Count(result, "/* imported (embedded): _base.css */"))
	assert.Contains(t, result, "/* circular import prevented: _base.css */")
}

func TestBundled_IgnoresWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_base.css", `.stray { color: red; }`)
	t.Chdir(dir)

	th, ok := Bundled("default")
	require.True(t, ok)
	assert.NotContains(t, th.CSS, ".stray")
	assert.NotContains(t, th.CSS, "@import")
	assert.Contains(t, th.CSS, ".daily-text-widget")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url( "file.css" );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			matches := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, matches, 2)
			assert.Equal(t, tt.expected, matches[1])
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "minimal.css", `.daily-text-label { color: hotpink; }`)
	writeCSS(t, dir, "custom.css", "@import \"_base.css\";\n.daily-text-label { color: teal; }")

	t.Run("empty name is default", func(t *testing.T) {
		th, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultThemeName, th.Name)
		assert.True(t, th.Bundled)
	})

	t.Run("user file overrides bundled", func(t *testing.T) {
		th, err := Resolve("minimal", dir)
		require.NoError(t, err)
		assert.False(t, th.Bundled)
		assert.Contains(t, th.CSS, "hotpink")
	})

	t.Run("user theme imports bundled partial", func(t *testing.T) {
		th, err := Resolve("custom", dir)
		require.NoError(t, err)
		assert.Contains(t, th.CSS, "/* imported (embedded): _base.css */")
		assert.Contains(t, th.CSS, "teal")
	})

	t.Run("unknown falls back to default", func(t *testing.T) {
		th, err := Resolve("nope", dir)
		require.Error(t, err)
		require.NotNil(t, th)
		assert.Equal(t, DefaultThemeName, th.Name)
	})

	t.Run("no themes dir", func(t *testing.T) {
		th, err := Resolve("minimal", "")
		require.NoError(t, err)
		assert.True(t, th.Bundled)
	})
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "test.css", `.daily-text-label { color: red; }`)

	th, err := Load("test", path)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged mtime")

	writeCSS(t, dir, "_new.css", `:root { --new-color: blue; }`)
	writeCSS(t, dir, "test.css", "@import \"_new.css\";\n.daily-text-label { color: var(--new-color); }")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, th.CSS, "--new-color: blue")

	bundled, _ := Bundled("default")
	changed, err = bundled.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "default.css", `.x {}`)
	writeCSS(t, dir, "solar.css", `.y {}`)
	writeCSS(t, dir, "_partial.css", `.z {}`)
	writeCSS(t, dir, "notes.txt", "")

	themes, err := List(dir)
	require.NoError(t, err)

	byName := make(map[string]Info)
	for _, info := range themes {
		byName[info.Name] = info
	}
	require.Len(t, byName, 3)
	assert.True(t, byName["default"].Bundled)
	assert.Equal(t, filepath.Join(dir, "default.css"), byName["default"].Path)
	assert.True(t, byName["minimal"].Bundled)
	assert.False(t, byName["solar"].Bundled)

	themes, err = List(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Len(t, themes, len(BundledThemes))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "live.css", `.daily-text-label { color: red; }`)

	th, err := Load("live", path)
	require.NoError(t, err)

	got := make(chan string, 16)
	w, err := NewWatcher(th, func(css string) { got <- css }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()
	assert.True(t, w.IsRunning())

	later := time.Now().Add(time.Minute)
	writeCSS(t, dir, "live.css", `.daily-text-label { color: green; }`)
	require.NoError(t, os.Chtimes(path, later, later))

	// A write can surface as several events, the first seeing a truncated file
	deadline := time.After(2 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case css := <-got:
			reloaded = strings.Contains(css, "green")
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	require.NoError(t, w.Stop())
}

func TestWatcher_StartFailureClosesWatcher(t *testing.T) {
	th := &Theme{Name: "gone", Path: filepath.Join(t.TempDir(), "missing", "gone.css")}

	w, err := NewWatcher(th, nil, nil)
	require.NoError(t, err)
	require.Error(t, w.Start())
	assert.False(t, w.IsRunning())

	assert.ErrorIs(t, w.watcher.Add(t.TempDir()), fsnotify.ErrClosed)
	assert.NoError(t, w.Stop())
}

func TestNewWatcher_RejectsBundled(t *testing.T) {
	th, _ := Bundled("default")
	_, err := NewWatcher(th, nil, nil)
	assert.Error(t, err)
}
