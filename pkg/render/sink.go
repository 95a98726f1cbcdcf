package render

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatTable = "table"
)

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Sink renders an analysis into one output format.
type Sink interface {
	Format() string
	Render(ctx context.Context, a *wiring.Analysis) ([]byte, error)
}

// Registry holds sinks by format name.
type Registry struct {
	sinks map[string]Sink
}

// NewRegistry creates a registry. A later sink replaces an earlier one with
// the same format.
func NewRegistry(sinks ...Sink) *Registry {
	r := &Registry{sinks: make(map[string]Sink, len(sinks))}
	for _, s := range sinks {
		r.sinks[s.Format()] = s
	}
	return r
}

// Get returns the sink for format, case-insensitively.
func (r *Registry) Get(format string) (Sink, error) {
	s, ok := r.sinks[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (available: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return s, nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.sinks))
	for f := range r.sinks {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// JSONSink writes the analysis as a pkg/graph document.
type JSONSink struct{}

// Format implements [Sink].
func (JSONSink) Format() string { return FormatJSON }

// Render implements [Sink].
func (JSONSink) Render(_ context.Context, a *wiring.Analysis) ([]byte, error) {
	return graph.MarshalDocument(graph.FromAnalysis(a))
}
