package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dailytext/internal/output"
)

var linesOpts struct {
	format    string
	template  string
	separator string
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Print the lines the widget would show",
	Long: `Print every line of the text file in the order the widget shows them.

Output formats:
  plain   Lines exactly as stored in the file (default)
  dmenu   One line per entry, suitable for dmenu, rofi, fuzzel or walker
  json    JSON array of {index, text}
  yaml    YAML list of {index, text}

The dmenu format accepts a Go template over {{.Index}} and {{.Text}}:

  dailytext lines --format dmenu --template '{{.Index}}: {{trim .Text}}'`,
	RunE: runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)

	linesCmd.Flags().StringVar(&linesOpts.format, "format", string(output.FormatPlain),
		fmt.Sprintf("Output format (%s)", strings.Join(formatNames(), ", ")))
	linesCmd.Flags().StringVar(&linesOpts.template, "template", "",
		"Go template for dmenu format")
	linesCmd.Flags().StringVar(&linesOpts.separator, "separator", "",
		"Field separator for the default dmenu template")
}

func runLines(cmd *cobra.Command, args []string) error {
	formatter, err := output.NewFormatter(output.FormatType(linesOpts.format), output.FormatterOptions{
		Template:  linesOpts.template,
		Separator: linesOpts.separator,
	})
	if err != nil {
		return err
	}

	list := loadLines()
	if list.IsPlaceholder() {
		logger.Info("text file not found, printing placeholder", "file", textFile())
	}
	return formatter.Format(os.Stdout, output.NewLines(list.Lines()))
}

func formatNames() []string {
	types := output.FormatTypes()
	names := make([]string, 0, len(types))
	for _, f := range types {
		names = append(names, string(f))
	}
	return names
}
