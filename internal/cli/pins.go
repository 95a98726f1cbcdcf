package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/pins"
)

// pinsCommand creates the pins command.
func (c *CLI) pinsCommand() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "pins [type]",
		Short: "List known component types and their pin names",
		Long: `List known component types and their pin names.

With a type argument, print the index → name table of that type. Types not
listed here get generic "Pin <n>" names. Extra tables are loaded with --pins.

Examples:
  wiregraph pins
  wiregraph pins Arduino
  wiregraph pins --toml > mypins.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			if asTOML {
				return pins.Encode(c.stdout, reg.Tables())
			}
			if len(args) == 1 {
				t, ok := reg.Lookup(args[0])
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no pin table for type %q (generic pin names apply)", args[0])
				}
				fmt.Fprintln(c.stdout, pinTable(t))
				return nil
			}
			fmt.Fprintln(c.stdout, typesTable(reg.Tables()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "print the tables as a TOML pin file")
	return cmd
}

var pinsHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newPinsTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return pinsHeaderStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})
}

// typesTable lists each type with its pin count and names.
func typesTable(tables []pins.Table) string {
	t := newPinsTable("Type", "Pins", "Names")
	for _, tbl := range tables {
		t.Row(tbl.Type, strconv.Itoa(len(tbl.Pins)), summarize(tbl.Pins, 6))
	}
	return t.Render()
}

// pinTable lists one type's pins by index.
func pinTable(tbl pins.Table) string {
	t := newPinsTable("Index", "Pin")
	for i, name := range tbl.Pins {
		t.Row(strconv.Itoa(i), name)
	}
	return StyleTitle.Render(tbl.Type) + "\n" + t.Render()
}

// summarize joins up to n names and notes how many were left out.
func summarize(names []string, n int) string {
	if len(names) <= n {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:n], ", ") + fmt.Sprintf(", … (+%d)", len(names)-n)
}
