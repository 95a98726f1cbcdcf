// Package cli implements the wiregraph command-line interface.
//
// # Commands
//
//   - parse: Analyze a circuit description and write its wiring document
//   - render: Render the wiring as DOT, SVG, PNG, PDF, JSON or a table
//   - pins: List the known component pin tables
//   - inspect: Browse the wiring interactively
//   - serve: Run the HTTP API
//   - cache: Manage the local artifact cache
//
// # Input
//
// Commands that read a circuit take a file path or "-" for stdin. Lines
// that are neither component declarations nor connections are ignored, so
// annotated sketch sources can be fed in as they are.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/buildinfo"
	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wiregraph"

	// envPins names a TOML file of extra pin tables.
	envPins = "WIREGRAPH_PINS"

	// stdinArg reads the circuit from standard input.
	stdinArg = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// pinsPath is the --pins flag value.
	pinsPath string

	// stdin and stdout are swapped out in tests.
	stdin  io.Reader
	stdout io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wiregraph turns component wiring descriptions into pin-level graphs",
		Long:         `Wiregraph reads "component" and "connect" statements, resolves every pin index to its symbolic name and builds a symmetric pin-to-pin wiring map that can be exported or rendered.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.pinsPath, "pins", os.Getenv(envPins), "TOML file with extra pin tables (env "+envPins+")")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pinsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// registry loads the pin registry, including --pins overrides.
func (c *CLI) registry() (*pins.Registry, error) {
	reg, err := pins.Load(c.pinsPath)
	if err != nil {
		return nil, fmt.Errorf("load pin tables: %w", err)
	}
	if c.pinsPath != "" {
		c.Logger.Debug("loaded pin tables", "path", c.pinsPath, "types", len(reg.Tables()))
	}
	return reg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, reg, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wiregraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input / Output Helpers
// =============================================================================

// readInput reads the circuit text from a file, or stdin for "-" or no arg.
func (c *CLI) readInput(args []string) (text, name string, err error) {
	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(io.LimitReader(c.stdin, errors.MaxSourceSize+1))
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}

	path := args[0]
	if err := errors.ValidatePath(path); err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return "", "", err
	}
	return string(data), path, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped. With neither, the base
// is "circuit" in the working directory.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "circuit"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == stdinArg {
		_, err := c.stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
