package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/audio"
	"github.com/jmylchreest/dailytext/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the widget in the terminal",
	Long: `Show the daily text in a box in the terminal instead of a desktop window.

The box behaves like the window: it advances on the same interval, its
Previous and Next buttons can be clicked, and it can be dragged with the
mouse.

Key bindings:
  ←/h/p       Previous line
  →/l/n/space Next line
  c           Copy the current line to the clipboard
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal, so logs go to a file or nowhere
	tuiLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if globalOpts.verbose {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "dailytext-tui.log"), "")
		if err == nil {
			defer f.Close()
			tuiLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	chime := audio.NewChime(cfg, tuiLogger)
	defer chime.Close()

	return tui.Run(tui.RunOptions{
		Config:   cfg,
		Lines:    loadLines(),
		Logger:   tuiLogger,
		OnRotate: chime.OnRotate,
	})
}
