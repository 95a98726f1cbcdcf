package nodelink

import (
	"context"

	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// Sink renders node-link diagrams in one of the DOT, SVG, PNG or PDF formats.
type Sink struct {
	format string
	opts   Options
}

// NewSink returns the sink for format, or nil if format is not one of the
// node-link formats.
func NewSink(format string, opts Options) *Sink {
	switch format {
	case render.FormatDOT, render.FormatSVG, render.FormatPNG, render.FormatPDF:
		return &Sink{format: format, opts: opts}
	}
	return nil
}

// Sinks returns one sink per node-link format.
func Sinks(opts Options) []render.Sink {
	return []render.Sink{
		NewSink(render.FormatDOT, opts),
		NewSink(render.FormatSVG, opts),
		NewSink(render.FormatPNG, opts),
		NewSink(render.FormatPDF, opts),
	}
}

// Format implements [render.Sink].
func (s *Sink) Format() string { return s.format }

// Render implements [render.Sink].
func (s *Sink) Render(ctx context.Context, a *wiring.Analysis) ([]byte, error) {
	dot := ToDOT(a, s.opts)
	switch s.format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatPNG:
		return RenderPNG(ctx, dot, s.opts.Scale)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	default:
		return RenderSVG(ctx, dot)
	}
}
