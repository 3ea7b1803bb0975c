package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type copyResultMsg struct {
	err error
}

// copyToClipboard copies the line without its terminator.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(strings.TrimRight(text, "\r\n"))}
	}
}
