// Package tui renders the daily text widget in a terminal with BubbleTea.
// The box can be dragged with the mouse and its buttons clicked, like the
// desktop window.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jmylchreest/dailytext/internal/config"
	"github.com/jmylchreest/dailytext/internal/textlist"
	"github.com/jmylchreest/dailytext/internal/widget"
)

const (
	zonePrevious = "dailytext-previous"
	zoneNext     = "dailytext-next"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	draggingBorder = lipgloss.Color("12")
	buttonStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("7")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// runMsg carries widget work onto the program goroutine.
type runMsg func()

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Model is the BubbleTea model wrapping a widget.
type Model struct {
	w    *widget.Widget
	keys KeyMap
	help help.Model

	// hit reports whether a mouse event falls on a marked zone
	zones *zone.Manager
	hit   func(id string, msg tea.MouseMsg) bool

	width     int
	height    int
	statusMsg string
	statusErr bool
}

// New creates a model for w. Button zones are tracked with zones; a nil
// manager disables button clicks.
func New(w *widget.Widget, zones *zone.Manager) Model {
	m := Model{
		w:     w,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		zones: zones,
	}
	m.hit = func(id string, msg tea.MouseMsg) bool {
		if zones == nil {
			return false
		}
		z := zones.Get(id)
		return z != nil && z.InBounds(msg)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case runMsg:
		msg()
		return m, nil

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		status := statusMsg{text: "Copied to clipboard"}
		if msg.err != nil {
			status = statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
		}
		return m, func() tea.Msg { return status }
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Previous):
		m.w.ShowPrevious()
	case key.Matches(msg, m.keys.Next):
		m.w.ShowNext()
	case key.Matches(msg, m.keys.Copy):
		return m, copyToClipboard(m.w.Current())
	}
	return m, nil
}

// handleMouse maps clicks to the buttons and press-drag-release inside
// the box to a window drag. Presses are tested against the box as drawn;
// pointer positions are passed to the widget relative to its real origin.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	g := m.w.Geometry()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch {
		case m.hit(zonePrevious, msg):
			m.w.ShowPrevious()
		case m.hit(zoneNext, msg):
			m.w.ShowNext()
		case drawnAt(g).Contains(msg.X, msg.Y):
			m.w.StartDrag(msg.X-g.X, msg.Y-g.Y)
		}

	case tea.MouseActionMotion:
		m.w.DragMove(msg.X-g.X, msg.Y-g.Y)

	case tea.MouseActionRelease:
		m.w.EndDrag()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	g := m.w.Geometry()

	d := drawnAt(g)
	body := lipgloss.NewStyle().
		MarginLeft(d.X).
		MarginTop(d.Y).
		Render(m.renderBox(g))
	if m.height > 1 {
		body = lipgloss.NewStyle().Height(m.height - 1).MaxHeight(m.height - 1).Render(body)
	}

	view := body + "\n" + m.footer()
	if m.zones != nil {
		return m.zones.Scan(view)
	}
	return view
}

// drawnAt returns where the box is drawn: boxes dragged off the top or
// left are pinned to the edge.
func drawnAt(g widget.Geometry) widget.Geometry {
	g.X = max(g.X, 0)
	g.Y = max(g.Y, 0)
	return g
}

func (m Model) renderBox(g widget.Geometry) string {
	style := boxStyle
	if m.w.DragState() == widget.DragDragging {
		style = style.BorderForeground(draggingBorder)
	}

	// Width and Height exclude the border; padding is inside Width
	inner := max(g.Width-4, 1)
	textHeight := max(g.Height-3, 1)

	// The terminal cannot show a trailing line terminator, so drop it
	text := strings.TrimRight(m.w.Current(), "\r\n")
	label := lipgloss.NewStyle().
		Width(inner).
		Height(textHeight).
		MaxHeight(textHeight).
		Render(text)

	prev := buttonStyle.Render("Previous")
	next := buttonStyle.Render("Next")
	gap := max(inner-lipgloss.Width(prev)-lipgloss.Width(next), 1)
	if m.zones != nil {
		prev = m.zones.Mark(zonePrevious, prev)
		next = m.zones.Mark(zoneNext, next)
	}
	buttons := prev + strings.Repeat(" ", gap) + next

	return style.
		Width(max(g.Width-2, 1)).
		Height(max(g.Height-2, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, label, buttons))
}

func (m Model) footer() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return errorStyle.Render(m.statusMsg)
		}
		return mutedStyle.Render(m.statusMsg)
	}

	line := m.help.View(m.keys)
	if next := m.w.NextRotation(); !next.IsZero() {
		line += mutedStyle.Render("  •  next change " + humanize.Time(next))
	}
	return line
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	Lines    *textlist.TextList
	Logger   *slog.Logger
	OnRotate widget.ChangeFunc
}

// Run shows the widget in the terminal until the user quits.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var p *tea.Program
	sched := widget.NewTimerScheduler(func(fn func()) {
		p.Send(runMsg(fn))
	})

	w := widget.New(widget.Options{
		Lines:    opts.Lines,
		Interval: cfg.Text.Interval.Duration(),
		Geometry: widget.Geometry{
			X:      cfg.TUI.X,
			Y:      cfg.TUI.Y,
			Width:  cfg.TUI.Width,
			Height: cfg.TUI.Height,
		},
		Scheduler: sched,
		Logger:    opts.Logger,
		OnRotate:  opts.OnRotate,
	})
	defer w.Close()

	zones := zone.New()
	defer zones.Close()

	p = tea.NewProgram(New(w, zones), tea.WithAltScreen(), tea.WithMouseCellMotion())
	w.Start()

	_, err := p.Run()
	return err
}
