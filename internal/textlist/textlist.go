// Package textlist loads the lines a widget rotates through.
package textlist

import (
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Placeholder is shown when the text source is unavailable.
const Placeholder = "No daily-text.txt found"

// TextList is an ordered, immutable sequence of lines.
// Each line keeps its terminator exactly as it appeared in the source.
// A TextList always holds at least one line.
type TextList struct {
	lines  []string
	source string
}

// Load reads path and splits it into lines.
// A missing, unreadable or empty file yields a single Placeholder line;
// Load never fails.
func Load(path string, logger *slog.Logger) *TextList {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("text file not found, using placeholder", "path", path)
		} else {
			logger.Debug("text file unreadable, using placeholder", "path", path, "error", err)
		}
		return Fallback()
	}

	lines := SplitLines(string(data))
	if len(lines) == 0 {
		logger.Debug("text file empty, using placeholder", "path", path)
		return Fallback()
	}

	logger.Debug("loaded text file", "path", path, "lines", len(lines))
	return &TextList{lines: lines, source: path}
}

// New creates a TextList from lines. An empty slice yields the placeholder.
func New(lines []string) *TextList {
	if len(lines) == 0 {
		return Fallback()
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &TextList{lines: cp}
}

// Fallback returns the single-line placeholder list.
func Fallback() *TextList {
	return &TextList{lines: []string{Placeholder}}
}

// SplitLines splits s after every "\n", keeping the terminator
// (including a preceding "\r") with its line. A final line without
// terminator is kept as-is.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Len returns the number of lines.
func (t *TextList) Len() int {
	return len(t.lines)
}

// At returns the line at i.
func (t *TextList) At(i int) string {
	return t.lines[i]
}

// Lines returns a copy of all lines.
func (t *TextList) Lines() []string {
	cp := make([]string, len(t.lines))
	copy(cp, t.lines)
	return cp
}

// Source returns the path the lines were read from,
// or "" for the placeholder.
func (t *TextList) Source() string {
	return t.source
}

// IsPlaceholder reports whether the list is the fallback placeholder.
func (t *TextList) IsPlaceholder() bool {
	return t.source == "" && len(t.lines) == 1 && t.lines[0] == Placeholder
}
