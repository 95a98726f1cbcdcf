package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats
	detailed bool     // label clusters with types and pins with indices
	scale    float64  // PNG resolution multiplier
	fromJSON bool     // input is a document written by "parse"
	strict   bool     // fail when any connection could not be wired
	refresh  bool     // ignore cached analyses and artifacts
	noCache  bool     // disable the cache entirely
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render the wiring of a circuit as a diagram",
		Long: `Render the wiring of a circuit as a diagram.

Each component becomes a cluster of its wired pins; each wire is an edge
between two pins. Formats: svg (default), png, pdf, dot, json, table.
PNG and PDF need rsvg-convert on the PATH.

Examples:
  wiregraph render robot.ino                       # robot.svg
  wiregraph render robot.ino -f svg,png --detailed # robot.svg, robot.png
  wiregraph render --from-json robot.json -o out.pdf -f pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, table (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show component types and pin indices")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.fromJSON, "from-json", false, "read a wiring document produced by parse")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error if any connection could not be wired")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	text, name, err := c.readInput(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spin := newSpinner(ctx, c.spinnerOut(opts), "Rendering "+displayName(name))
	spin.Start()

	var (
		a         *wiring.Analysis
		artifacts map[string][]byte
		cached    bool
	)
	if opts.fromJSON {
		a, artifacts, cached, err = renderDocument(ctx, runner, text, popts)
	} else {
		var res *pipeline.Result
		res, err = runner.Execute(ctx, text, popts)
		if res != nil {
			a, artifacts, cached = res.Analysis, res.Artifacts, res.CacheInfo.AnalyzeHit && res.CacheInfo.RenderHit
		}
	}
	spin.Stop()
	if err != nil {
		return err
	}

	printStats(a.Source.ComponentCount(), len(a.Map.Links()), len(a.Failures), cached)
	printFailures(a)

	if err := c.writeArtifacts(artifacts, popts.Formats, name, opts.output); err != nil {
		return err
	}
	return strictErr(a, opts.strict)
}

// renderDocument re-renders a document written by "parse".
func renderDocument(ctx context.Context, runner *pipeline.Runner, text string, opts pipeline.Options) (*wiring.Analysis, map[string][]byte, bool, error) {
	doc, err := graph.UnmarshalDocument([]byte(text))
	if err != nil {
		return nil, nil, false, err
	}
	a, err := doc.Analysis()
	if err != nil {
		return nil, nil, false, err
	}
	hash, err := pipeline.HashAnalysis(a)
	if err != nil {
		return nil, nil, false, err
	}
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, a, hash, opts)
	return a, artifacts, cached, err
}

// writeArtifacts writes each artifact to its output path.
func (c *CLI) writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := c.writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		if path != stdinArg {
			printFile(path)
		}
		return nil
	}

	if output == stdinArg {
		return fmt.Errorf("cannot write %d formats to stdout", len(formats))
	}
	base := basePath(output, input)
	for _, format := range slices.Sorted(slices.Values(formats)) {
		path := base + "." + format
		if err := c.writeOutput(path, artifacts[format]); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		printFile(path)
	}
	return nil
}

// spinnerOut hides the spinner when output goes to stdout.
func (c *CLI) spinnerOut(opts renderOpts) io.Writer {
	if opts.output == stdinArg {
		return io.Discard
	}
	return os.Stderr
}
