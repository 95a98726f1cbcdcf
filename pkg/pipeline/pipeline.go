// Package pipeline provides the analysis pipeline for wiregraph.
//
// This package implements the complete analyze → render pipeline that is
// shared by the CLI and the HTTP API. By centralizing this logic, both entry
// points cache, log and report in the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Analyze: Parse the source text and build the wiring map
//  2. Render: Generate output in various formats (JSON, DOT, SVG, PNG, PDF, table)
//
// Each stage can be run independently or as part of the complete pipeline.
// Connection failures are part of the analysis, not pipeline errors: a
// pipeline run succeeds as long as the text could be read and the requested
// formats rendered.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, pins.Default(), logger)
//	result, err := runner.Execute(ctx, text, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	a, hash, err := runner.Analyze(ctx, text, opts)
//	artifacts, err := runner.Render(ctx, a, hash, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxScale bounds PNG output size.
	MaxScale = 8.0

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatSVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	render.FormatJSON:  true,
	render.FormatDOT:   true,
	render.FormatSVG:   true,
	render.FormatPNG:   true,
	render.FormatPDF:   true,
	render.FormatTable: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Analyze options
	Refresh bool `json:"refresh,omitempty"` // Ignore cached analyses and artifacts

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Analysis is the parsed source and its wiring.
	Analysis *wiring.Analysis

	// Hash is the content hash of the serialized analysis.
	Hash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components  int
	Connections int
	Applied     int
	Failures    int
	Skipped     int
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalyzeHit bool // Whether the analysis came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// statsOf fills the size fields of Stats from an analysis.
func statsOf(a *wiring.Analysis) Stats {
	return Stats{
		Components:  a.Source.ComponentCount(),
		Connections: len(a.Source.Connections),
		Applied:     a.Applied,
		Failures:    len(a.Failures),
		Skipped:     a.Source.Skipped,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png, pdf, table)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks that a PNG scale is in (0, MaxScale].
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %g (must be in (0, %g])", scale, MaxScale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateScale(o.Scale)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out so that, for example,
// an SVG is shared between requests with different PNG scales.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case render.FormatDOT, render.FormatSVG, render.FormatPDF:
		k.Detailed = o.Detailed
	case render.FormatPNG:
		k.Detailed = o.Detailed
		k.Scale = o.Scale
	}
	return k
}
