package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/dbus"
	"github.com/jmylchreest/dailytext/internal/output"
)

var statusOpts struct {
	maxLength int
	text      bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text       string `json:"text"`
	Alt        string `json:"alt,omitempty"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the running widget's line in Waybar's custom module JSON format.

This is designed to be used with Waybar's custom module:

  "custom/dailytext": {
    "exec": "dailytext status",
    "interval": 60,
    "return-type": "json",
    "on-click": "dailytext next",
    "on-click-right": "dailytext prev"
  }

The output includes:
  - text: The current line, shortened to --max-length
  - alt/class: "running", or "stopped" when no widget is on the bus
  - tooltip: Full line, position and when it next changes
  - percentage: Position through the file`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVar(&statusOpts.maxLength, "max-length", 40,
		"Shorten the text field to this many characters (0 for no limit)")
	statusCmd.Flags().BoolVar(&statusOpts.text, "text", false,
		"Print a human-readable summary instead of JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := dbus.Dial()
	if err != nil {
		if !errors.Is(err, dbus.ErrNotRunning) {
			logger.Debug("failed to reach widget", "error", err)
		}
		return outputStatus(WaybarStatus{Text: "", Alt: "stopped", Class: "stopped"})
	}
	defer c.Close()

	status, err := c.Status()
	if err != nil {
		logger.Debug("failed to read widget status", "error", err)
		return outputStatus(WaybarStatus{Text: "", Alt: "error", Class: "error"})
	}
	return outputStatus(generateStatus(status, statusOpts.maxLength))
}

// generateStatus creates a WaybarStatus from the widget state.
func generateStatus(s *dbus.Status, maxLength int) WaybarStatus {
	text := output.TrimTerminator(s.Text)

	var tooltip strings.Builder
	tooltip.WriteString(text)
	fmt.Fprintf(&tooltip, "\n\nLine %d of %d", s.Index+1, s.Count)
	if !s.NextRotation.IsZero() {
		fmt.Fprintf(&tooltip, "\nNext change %s", humanize.Time(s.NextRotation))
	}

	percentage := 0
	if s.Count > 0 {
		percentage = (s.Index + 1) * 100 / s.Count
	}

	return WaybarStatus{
		Text:       truncate(text, maxLength),
		Alt:        "running",
		Tooltip:    tooltip.String(),
		Class:      "running",
		Percentage: percentage,
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func outputStatus(status WaybarStatus) error {
	if statusOpts.text {
		if status.Class != "running" {
			_, err := fmt.Fprintln(os.Stdout, "dailytext is", status.Class)
			return err
		}
		_, err := fmt.Fprintln(os.Stdout, status.Tooltip)
		return err
	}
	return output.WriteJSON(os.Stdout, status)
}
