package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Browse the wiring of a circuit interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args, noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, args []string, noCache bool) error {
	if len(args) == 0 || args[0] == stdinArg {
		return errors.New(errors.ErrCodeInvalidInput, "inspect needs a file argument (stdin is used by the terminal)")
	}
	text, name, err := c.readInput(args)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	a, _, err := runner.Analyze(ctx, text, pipeline.Options{})
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewInspectModel(a, name), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// InspectModel - Interactive wiring browser
// =============================================================================

// InspectRow is one pin entry of the wiring map.
type InspectRow struct {
	Component string
	Type      string
	Pin       string
	Peer      circuit.Peer
}

// InspectModel is the bubbletea model for browsing a wiring map.
type InspectModel struct {
	Title        string
	Rows         []InspectRow
	Failures     []string
	Cursor       int
	Offset       int
	Height       int
	ShowFailures bool
}

// NewInspectModel creates a model over the analysis' wiring map.
func NewInspectModel(a *wiring.Analysis, title string) InspectModel {
	m := InspectModel{Title: title, Height: 15}
	a.Map.Each(func(at, peer circuit.Peer) {
		typ := ""
		if c, ok := a.Component(at.Component); ok {
			typ = c.Type
		}
		m.Rows = append(m.Rows, InspectRow{Component: at.Component, Type: typ, Pin: at.Pin, Peer: peer})
	})
	for _, f := range a.Failures {
		m.Failures = append(m.Failures, fmt.Sprintf("line %d  %s  %s", f.Line, f.Connection, errors.UserMessage(f.Err)))
	}
	return m
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.ShowFailures = !m.ShowFailures
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "pgup":
			m.moveTo(m.Cursor - m.Height)
		case "pgdown":
			m.moveTo(m.Cursor + m.Height)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Rows) - 1)
		case "enter":
			// Jump to the other end of the selected wire.
			if m.Cursor < len(m.Rows) {
				peer := m.Rows[m.Cursor].Peer
				for i, r := range m.Rows {
					if r.Component == peer.Component && r.Pin == peer.Pin {
						m.moveTo(i)
						break
					}
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m *InspectModel) moveTo(i int) {
	i = min(i, len(m.Rows)-1)
	i = max(i, 0)
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	title := "Wiring"
	if m.Title != "" {
		title += " · " + m.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow wire  tab failures  q quit"))
	b.WriteString("\n\n")

	if m.ShowFailures {
		return b.String() + m.failuresView()
	}
	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no wires"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.Component, r.Type, r.Pin, r.Peer.Component, r.Peer.Pin})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Component", "Type", "Pin", "Peer", "Peer pin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))
	if n := len(m.Failures); n > 0 {
		status += StyleWarning.Render(fmt.Sprintf("  %d skipped", n))
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}

func (m InspectModel) failuresView() string {
	if len(m.Failures) == 0 {
		return StyleSuccess.Render("  every connection was wired")
	}
	var b strings.Builder
	for _, f := range m.Failures {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + f + "\n")
	}
	return b.String()
}
