package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/render/table"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output  string // output file (stdout if empty)
	table   bool   // print a terminal table instead of JSON
	strict  bool   // fail when any connection could not be wired
	refresh bool   // ignore cached analyses
	noCache bool   // disable the cache entirely
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Analyze a circuit description and print its wiring",
		Long: `Analyze a circuit description and print its wiring document.

The input is read from a file, or from stdin when the argument is "-" or
missing. Connections that cannot be wired are reported as warnings and left
out of the wiring map; use --strict to turn them into an error.

Examples:
  wiregraph parse robot.ino                  # JSON document on stdout
  wiregraph parse robot.ino -o robot.json    # write to file
  cat robot.ino | wiregraph parse --table    # terminal table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a table instead of JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error if any connection could not be wired")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached analyses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, args []string, opts parseOpts) error {
	text, name, err := c.readInput(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	a, hash, hit, err := runner.AnalyzeWithCacheInfo(ctx, text, pipeline.Options{Refresh: opts.refresh})
	if err != nil {
		return err
	}
	prog.done("analyzed circuit", "source", displayName(name), "hash", short(hash))

	var data []byte
	if opts.table {
		data = []byte(table.Render(a) + "\n")
	} else {
		var buf bytes.Buffer
		if err := graph.WriteDocument(graph.FromAnalysis(a), &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	if err := c.writeOutput(opts.output, data); err != nil {
		return err
	}

	printStats(a.Source.ComponentCount(), len(a.Map.Links()), len(a.Failures), hit)
	printFailures(a)
	if opts.output != "" {
		printFile(opts.output)
		if !opts.table {
			printNextStep("Render it", "wiregraph render --from-json "+opts.output)
		}
	}

	return strictErr(a, opts.strict)
}

// strictErr returns the aggregated failures when strict is set.
func strictErr(a *wiring.Analysis, strict bool) error {
	if !strict || len(a.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%d connection(s) could not be wired: %w", len(a.Failures), a.Err())
}

func displayName(name string) string {
	if name == "" {
		return "stdin"
	}
	return name
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
