package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; @import 'file.css'; and @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet for the widget window.
type Theme struct {
	Name    string
	Path    string // empty for bundled themes
	CSS     string // imports already inlined
	ModTime time.Time
	Bundled bool
}

// Load reads a user theme file and inlines its imports.
func Load(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat theme %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(data), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// Bundled returns an embedded theme with imports inlined from the
// bundled set only.
func Bundled(name string) (*Theme, bool) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:    name,
		CSS:     ProcessImports(css, "", nil),
		Bundled: true,
	}, true
}

// Resolve finds a theme by name. A file in themesDir overrides a bundled
// theme of the same name; an unknown name resolves to the default theme.
func Resolve(name, themesDir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	var loadErr error
	if themesDir != "" {
		path := filepath.Join(themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := Load(name, path)
			if err == nil {
				return t, nil
			}
			loadErr = err
		}
	}

	if t, ok := Bundled(name); ok {
		return t, loadErr
	}

	t, _ := Bundled(DefaultThemeName)
	if loadErr == nil {
		loadErr = fmt.Errorf("theme %q not found", name)
	}
	return t, loadErr
}

// ProcessImports inlines @import statements, resolving relative paths
// against baseDir. Imports that cannot be read fall back to bundled
// partials and themes of the same name, whose own imports resolve only
// against the bundled set. An empty baseDir skips the filesystem
// entirely. seen guards against cycles.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		importPath := sub[1]

		var readErr error
		if baseDir != "" {
			fullPath := importPath
			if !filepath.IsAbs(importPath) {
				fullPath = filepath.Join(baseDir, importPath)
			}
			if seen[fullPath] {
				return "/* circular import prevented: " + importPath + " */"
			}
			seen[fullPath] = true

			data, err := os.ReadFile(fullPath)
			if err == nil {
				return "/* imported: " + importPath + " */\n" +
					ProcessImports(string(data), filepath.Dir(fullPath), seen)
			}
			readErr = err
		}
		return importEmbedded(importPath, seen, readErr)
	})
}

// importEmbedded inlines a bundled partial or theme, processing its own
// imports against the bundled set.
func importEmbedded(importPath string, seen map[string]bool, readErr error) string {
	base := filepath.Base(importPath)

	var (
		css string
		ok  bool
	)
	if strings.HasPrefix(base, "_") {
		css, ok = GetEmbeddedPartial(base)
	}
	if !ok {
		css, ok = GetEmbeddedTheme(strings.TrimSuffix(base, ".css"))
	}
	if !ok {
		reason := "not a bundled theme or partial"
		if readErr != nil {
			reason = readErr.Error()
		}
		return "/* import failed: " + importPath + " - " + reason + " */"
	}

	key := "embedded:" + strings.TrimSuffix(base, ".css")
	if seen[key] {
		return "/* circular import prevented: " + importPath + " */"
	}
	seen[key] = true

	return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(css, "", seen)
}

// Reload re-reads a user theme if its file changed since the last load.
// It reports whether the resolved CSS differs.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}
	css := ProcessImports(string(data), filepath.Dir(t.Path), nil)

	changed := css != t.CSS
	t.CSS = css
	t.ModTime = info.ModTime()
	return changed, nil
}

// Info describes an available theme.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// List returns bundled themes followed by user themes from themesDir.
// A user theme shadowing a bundled one is reported once, with its path.
func List(themesDir string) ([]Info, error) {
	var themes []Info
	index := make(map[string]int)

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, Bundled: true})
	}

	if themesDir == "" {
		return themes, nil
	}
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, fmt.Errorf("read themes dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".css" || strings.HasPrefix(name, "_") {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		path := filepath.Join(themesDir, name)
		if i, ok := index[themeName]; ok {
			themes[i].Path = path
			continue
		}
		index[themeName] = len(themes)
		themes = append(themes, Info{Name: themeName, Path: path})
	}
	return themes, nil
}

// ThemesDir returns the user's theme directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dailytext", "themes"), nil
}
