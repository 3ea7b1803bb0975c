package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/config"
	"github.com/jmylchreest/dailytext/internal/snapshot"
)

var snapshotOpts struct {
	output string
	index  int
	dark   bool
	scale  float64
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the widget to a PNG image",
	Long: `Render the widget card to a PNG without opening a window.

The image uses the configured window size and opacity. --index picks the
line to draw; it wraps like the Next and Previous buttons, so -1 is the
last line.

  dailytext snapshot -o today.png
  dailytext snapshot -o preview.png --index 3 --dark --scale 2`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotOpts.output, "output", "o", "dailytext.png",
		"Output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotOpts.index, "index", 0,
		"Line index to render")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.dark, "dark", false,
		"Use the dark palette (default follows theme.color_scheme)")
	snapshotCmd.Flags().Float64Var(&snapshotOpts.scale, "scale", 1,
		"Pixel scale factor")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	list := loadLines()
	n := list.Len()
	i := ((snapshotOpts.index % n) + n) % n

	dark := snapshotOpts.dark || cfg.Theme.ColorScheme == string(config.ColorSchemeDark)

	err := snapshot.Save(snapshotOpts.output, snapshot.Options{
		Text:    list.At(i),
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Opacity: cfg.Window.Opacity,
		Dark:    dark,
		Scale:   snapshotOpts.scale,
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Debug("snapshot written", "path", snapshotOpts.output, "index", i, "lines", n)
	fmt.Println(snapshotOpts.output)
	return nil
}
