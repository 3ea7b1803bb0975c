// Package output formats text lines for the lines command.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Line is a single text line with its position in the file.
type Line struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// NewLines numbers texts from zero.
func NewLines(texts []string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Index: i, Text: t}
	}
	return lines
}

// Formatter writes lines to w.
type Formatter interface {
	Format(w io.Writer, lines []Line) error
}

// FormatType names an output format.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatTypes lists the supported formats.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // dmenu only, e.g. "{{.Index}}: {{.Text}}"
	Separator string // dmenu only, between index and text
}

// NewFormatter creates a formatter for format.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return PlainFormatter{}, nil
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatYAML:
		return YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, must be one of: %v", format, FormatTypes())
	}
}

// PlainFormatter writes each line verbatim, so the output of a file
// without a placeholder reproduces the file.
type PlainFormatter struct{}

// Format implements Formatter.
func (PlainFormatter) Format(w io.Writer, lines []Line) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l.Text); err != nil {
			return err
		}
	}
	return nil
}

// YAMLFormatter writes lines as a YAML sequence.
type YAMLFormatter struct{}

// Format implements Formatter.
func (YAMLFormatter) Format(w io.Writer, lines []Line) error {
	return WriteYAML(w, lines)
}

// WriteYAML writes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// DmenuFormatter writes one picker entry per line, without terminators.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a dmenu formatter. A template that does not
// parse is an error.
func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	f := &DmenuFormatter{opts: opts}
	if f.opts.Separator == "" {
		f.opts.Separator = " | "
	}
	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(template.FuncMap{
			"trim": TrimTerminator,
		}).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		f.template = tmpl
	}
	return f, nil
}

// Format implements Formatter.
func (f *DmenuFormatter) Format(w io.Writer, lines []Line) error {
	for _, l := range lines {
		entry, err := f.entry(l)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) entry(l Line) (string, error) {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, l); err != nil {
			return "", fmt.Errorf("failed to execute template: %w", err)
		}
		return buf.String(), nil
	}
	return fmt.Sprintf("%d%s%s", l.Index, f.opts.Separator, TrimTerminator(l.Text)), nil
}

// TrimTerminator drops the trailing line terminator, for displays that
// show a single line.
func TrimTerminator(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
