package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/dbus"
	"github.com/jmylchreest/dailytext/internal/output"
)

var currentOpts struct {
	format string
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance the running widget to the next line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *dbus.Client) error { return c.Next() })
	},
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Step the running widget back one line",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *dbus.Client) error { return c.Previous() })
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the line the running widget shows",
	Long: `Print the line the running widget shows.

With --format plain (the default) the text is printed exactly as stored.
json and yaml include the index, the line count and the next change time.`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(currentCmd)

	currentCmd.Flags().StringVar(&currentOpts.format, "format", string(output.FormatPlain),
		"Output format (plain, json, yaml)")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	return withClient(func(c *dbus.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}

		switch output.FormatType(currentOpts.format) {
		case output.FormatPlain, "":
			_, err = fmt.Fprint(os.Stdout, status.Text)
			return err
		case output.FormatJSON:
			return output.WriteJSON(os.Stdout, status)
		case output.FormatYAML:
			return output.WriteYAML(os.Stdout, status)
		default:
			return fmt.Errorf("unknown format %q, must be one of: plain, json, yaml", currentOpts.format)
		}
	})
}

// withClient dials the running widget and runs fn against it.
func withClient(fn func(c *dbus.Client) error) error {
	c, err := dbus.Dial()
	if err != nil {
		if errors.Is(err, dbus.ErrNotRunning) {
			return fmt.Errorf("%w (start it with: dailytext)", err)
		}
		return err
	}
	defer c.Close()

	return fn(c)
}
