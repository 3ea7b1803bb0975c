package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the bundled themes and any user themes found in
~/.config/dailytext/themes. A user theme with a bundled name replaces
the bundled one. Select a theme with [theme] name in the config file.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no user themes directory", "error", err)
	}

	themes, err := theme.List(dir)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	return writeThemes(os.Stdout, themes, cfg.Theme.Name)
}

// writeThemes prints one line per theme, marking active with "*".
func writeThemes(w io.Writer, themes []theme.Info, active string) error {
	width := 0
	for _, t := range themes {
		width = max(width, lipgloss.Width(t.Name))
	}
	nameStyle := lipgloss.NewStyle().Width(width)

	for _, t := range themes {
		marker := " "
		if t.Name == active {
			marker = "*"
		}
		source := "bundled"
		if t.Path != "" {
			source = t.Path
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s\n", marker, nameStyle.Render(t.Name), source); err != nil {
			return err
		}
	}
	return nil
}
