package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/observability"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

const keyTypeAnalysis = "analysis"

// AnalyzeWithCacheInfo parses text and builds its wiring map, with caching.
// It returns the analysis, its content hash and whether it came from cache.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, text string, opts Options) (*wiring.Analysis, string, bool, error) {
	if err := errors.ValidateSource(text); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(text))
	start := time.Now()

	cacheKey := r.Keyer.AnalysisKey(cache.Hash([]byte(text)), cache.AnalysisKeyOpts{
		PinsFingerprint: r.Pins.Fingerprint(),
	})

	if !opts.Refresh {
		if a, hash, ok := r.cachedAnalysis(ctx, cacheKey); ok {
			opts.Logger.Debug("analysis cache hit", "hash", shortHash(hash))
			hooks.OnAnalyzeComplete(ctx, statsToHook(statsOf(a)), time.Since(start), nil)
			return a, hash, true, nil
		}
	}

	a := wiring.Analyze(text, r.Pins)
	data, err := graph.MarshalDocument(graph.FromAnalysis(a))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "serialize analysis")
		hooks.OnAnalyzeComplete(ctx, statsToHook(statsOf(a)), time.Since(start), err)
		return nil, "", false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis); err != nil {
		opts.Logger.Warn("cache write failed", "kind", keyTypeAnalysis, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeAnalysis, len(data))
	}

	for _, f := range a.Failures {
		opts.Logger.Debug("connection skipped", "line", f.Line, "code", f.Code(), "reason", errors.UserMessage(f.Err))
	}

	hooks.OnAnalyzeComplete(ctx, statsToHook(statsOf(a)), time.Since(start), nil)
	return a, cache.Hash(data), false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, text string, opts Options) (*wiring.Analysis, string, error) {
	a, hash, _, err := r.AnalyzeWithCacheInfo(ctx, text, opts)
	return a, hash, err
}

func (r *Runner) cachedAnalysis(ctx context.Context, key string) (*wiring.Analysis, string, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
		return nil, "", false
	}
	doc, err := graph.UnmarshalDocument(data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
		return nil, "", false
	}
	a, err := doc.Analysis()
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
		return nil, "", false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeAnalysis)
	return a, cache.Hash(data), true
}

// HashAnalysis returns the content hash of an analysis, as reported by
// [Runner.Analyze]. Use it for analyses that did not come from the runner,
// such as documents read from disk.
func HashAnalysis(a *wiring.Analysis) (string, error) {
	data, err := graph.MarshalDocument(graph.FromAnalysis(a))
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func statsToHook(s Stats) observability.AnalyzeStats {
	return observability.AnalyzeStats{
		Components:  s.Components,
		Connections: s.Connections,
		Applied:     s.Applied,
		Failures:    s.Failures,
		Skipped:     s.Skipped,
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
