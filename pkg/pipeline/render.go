package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/observability"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/render/nodelink"
	"github.com/matzehuels/wiregraph/pkg/render/table"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

const keyTypeArtifact = "artifact"

// Sinks returns the render registry for opts.
func (r *Runner) Sinks(opts Options) *render.Registry {
	sinks := []render.Sink{render.JSONSink{}, table.Sink{}}
	sinks = append(sinks, nodelink.Sinks(nodelink.Options{
		Detailed: opts.Detailed,
		Scale:    opts.Scale,
		Pins:     r.Pins,
	})...)
	return render.NewRegistry(sinks...)
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from cache. analysisHash keys the cache; when empty it
// is computed from a.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a *wiring.Analysis, analysisHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if analysisHash == "" {
		h, err := HashAnalysis(a)
		if err != nil {
			return nil, false, fmt.Errorf("serialize analysis for cache key: %w", err)
		}
		analysisHash = h
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	sinks := r.Sinks(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(analysisHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		allCached = false

		sink, err := sinks.Get(format)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		data, err := sink.Render(ctx, a)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "kind", keyTypeArtifact, "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, a *wiring.Analysis, analysisHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, a, analysisHash, opts)
	return artifacts, err
}
