package decl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/matzehuels/wiregraph/pkg/circuit"
)

// line is the grammar root: exactly one statement shape per line.
type line struct {
	Component  *componentShape  `parser:"  @@"`
	Connection *connectionShape `parser:"| @@"`
}

// componentShape matches: component <name> <type> [(<n>,...)] [;]
type componentShape struct {
	Name string     `parser:"\"component\" @(Word | Int)"`
	Type string     `parser:"@(Word | Int)"`
	Pins *pinsShape `parser:"@@?"`
	End  bool       `parser:"@Semicolon?"`
}

type pinsShape struct {
	Values []int `parser:"LParen @Int ( Comma @Int )* RParen"`
}

// connectionShape matches: connect <name> <int> to <name> <int> [;]
type connectionShape struct {
	From    string `parser:"\"connect\" @(Word | Int)"`
	FromPin int    `parser:"@Int"`
	To      string `parser:"\"to\" @(Word | Int)"`
	ToPin   int    `parser:"@Int"`
	End     bool   `parser:"@Semicolon?"`
}

var grammar = participle.MustBuild[line](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
)

// Statement is one classified source line: a [ComponentDecl], a
// [ConnectionDecl] or an [Unrecognized] line.
type Statement interface {
	// LineNumber returns the 1-based source line.
	LineNumber() int
	statement()
}

// ComponentDecl is a recognized component declaration.
type ComponentDecl struct {
	circuit.Component
}

// ConnectionDecl is a recognized connection declaration.
type ConnectionDecl struct {
	circuit.Connection
}

// Unrecognized is a non-blank line that matched neither declaration shape.
type Unrecognized struct {
	Line int
	Text string
	Err  error // why the grammar rejected the line
}

func (s ComponentDecl) LineNumber() int  { return s.Line }
func (s ConnectionDecl) LineNumber() int { return s.Line }
func (s Unrecognized) LineNumber() int   { return s.Line }

func (ComponentDecl) statement()  {}
func (ConnectionDecl) statement() {}
func (Unrecognized) statement()   {}

// Classify matches a single line against the two declaration shapes.
// n is the 1-based line number recorded on the result.
func Classify(text string, n int) Statement {
	ast, err := grammar.ParseString("", text)
	if err != nil {
		return Unrecognized{Line: n, Text: text, Err: err}
	}

	switch {
	case ast.Component != nil:
		c := ast.Component
		pins := []int{}
		if c.Pins != nil {
			pins = append(pins, c.Pins.Values...)
		}
		return ComponentDecl{circuit.Component{Name: c.Name, Type: c.Type, Pins: pins, Line: n}}
	case ast.Connection != nil:
		c := ast.Connection
		return ConnectionDecl{circuit.Connection{
			From: circuit.Endpoint{Component: c.From, Pin: c.FromPin},
			To:   circuit.Endpoint{Component: c.To, Pin: c.ToPin},
			Line: n,
		}}
	}
	return Unrecognized{Line: n, Text: text, Err: fmt.Errorf("empty statement")}
}

// Statements classifies every non-blank line of text in order.
func Statements(text string) []Statement {
	var out []Statement
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, Classify(raw, i+1))
	}
	return out
}

// Parse extracts all declarations from text. It never fails: unrecognized
// lines are counted in [circuit.Source.Skipped] and otherwise ignored.
func Parse(text string) *circuit.Source {
	src := circuit.NewSource()
	for _, st := range Statements(text) {
		switch st := st.(type) {
		case ComponentDecl:
			src.Declare(st.Component)
		case ConnectionDecl:
			src.Connect(st.Connection)
		case Unrecognized:
			src.Skipped++
		}
	}
	return src
}

// ParseReader reads r to EOF and parses it. Only read errors are returned.
func ParseReader(r io.Reader) (*circuit.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Parse(string(data)), nil
}
