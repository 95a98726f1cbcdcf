// Package table renders wiring analyses as terminal tables.
//
// The wiring table has one row per pin entry, so every wire appears twice:
// once from each end. Failed connections get a second table.
package table

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Headers of the wiring table.
var Headers = []string{"Component", "Type", "Pin", "Peer"}

// FailureHeaders of the failure table.
var FailureHeaders = []string{"Line", "Connection", "Code", "Reason"}

// Rows returns the wiring table rows in component, pin order.
func Rows(a *wiring.Analysis) [][]string {
	var rows [][]string
	a.Map.Each(func(at, peer circuit.Peer) {
		typ := ""
		if c, ok := a.Component(at.Component); ok {
			typ = c.Type
		}
		rows = append(rows, []string{at.Component, typ, at.Pin, peer.NodeID()})
	})
	return rows
}

// FailureRows returns one row per failed connection in source order.
func FailureRows(a *wiring.Analysis) [][]string {
	rows := make([][]string, 0, len(a.Failures))
	for _, f := range a.Failures {
		line := "-"
		if f.Line > 0 {
			line = strconv.Itoa(f.Line)
		}
		rows = append(rows, []string{line, f.Connection.String(), string(f.Code()), errors.UserMessage(f.Err)})
	}
	return rows
}

// Render returns the wiring table, followed by the failure table when any
// connection failed.
func Render(a *wiring.Analysis) string {
	var b strings.Builder
	b.WriteString(newTable(Headers, Rows(a)).Render())
	if len(a.Failures) > 0 {
		b.WriteString("\n")
		b.WriteString(newTable(FailureHeaders, FailureRows(a)).Render())
	}
	b.WriteString("\n")
	return b.String()
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
}

// Sink renders the plain-text table format.
type Sink struct{}

// Format implements [render.Sink].
func (Sink) Format() string { return render.FormatTable }

// Render implements [render.Sink].
func (Sink) Render(_ context.Context, a *wiring.Analysis) ([]byte, error) {
	return []byte(Render(a)), nil
}
