package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes lines as an indented JSON array.
type JSONFormatter struct{}

// Format implements Formatter.
func (JSONFormatter) Format(w io.Writer, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	return WriteJSON(w, lines)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
