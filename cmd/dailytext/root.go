// Package main provides the CLI entrypoint for dailytext.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/app"
	"github.com/jmylchreest/dailytext/internal/config"
	"github.com/jmylchreest/dailytext/internal/textlist"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	cfg        *config.Config
	configPath string
	globalOpts struct {
		verbose    bool
		configPath string
		textFile   string
	}
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dailytext",
	Short: "A small desktop widget showing one line of text a day",
	Long: `dailytext shows one line of daily-text.txt in a small borderless window
and advances to the next line every 24 hours. Previous and Next buttons
step through the lines by hand, and the window can be dragged anywhere.

Running dailytext without a subcommand opens the widget.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		configPath = globalOpts.configPath
		if configPath == "" {
			if p, err := config.ConfigPath(); err == nil {
				configPath = p
			}
		}

		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(app.Options{
			Config:     cfg,
			ConfigPath: configPath,
			TextFile:   globalOpts.textFile,
			Logger:     logger,
		})
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/dailytext/dailytext.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.textFile, "file", "f", "",
		"Text file to read (default: daily-text.txt in the working directory)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// textFile returns the --file override or the configured text file.
func textFile() string {
	if globalOpts.textFile != "" {
		return globalOpts.textFile
	}
	return cfg.Text.File
}

// loadLines reads the text file.
func loadLines() *textlist.TextList {
	return textlist.Load(textFile(), logger)
}
