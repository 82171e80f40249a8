package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classlayout/pkg/cache"
	"github.com/matzehuels/classlayout/pkg/diagram"
	"github.com/matzehuels/classlayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, d diagram.Diagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Layout(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of d with caching and reports
// whether it came from the cache. With opts.Refresh the cache is not read
// but the fresh layout is still stored.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(d.Entities), len(d.Relationships))
	start := time.Now()

	result, hit, err := r.layout(ctx, d, opts)
	hooks.OnLayoutComplete(ctx, len(d.Entities), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit

	opts.Logger.Info("computed layout",
		"entities", result.LayoutStats.Entities,
		"relationships", result.LayoutStats.Relationships,
		"dropped", result.LayoutStats.DroppedRelationships,
		"cached", hit,
		"duration", result.Stats.LayoutTime)
	if result.LayoutStats.DroppedRelationships > 0 {
		opts.Logger.Warn("dropped relationships with unknown endpoints",
			"count", result.LayoutStats.DroppedRelationships)
	}
	opts.Logger.Debug("crossing reduction",
		"levels", result.LayoutStats.Levels,
		"before", result.LayoutStats.CrossingsBefore,
		"after", result.LayoutStats.CrossingsAfter,
		"label_passes", result.LabelStats.Passes,
		"label_overlaps", result.LabelStats.Overlaps)

	return result, hit, nil
}

func (r *Runner) layout(ctx context.Context, d diagram.Diagram, opts Options) (*Result, bool, error) {
	diagramHash, err := DiagramHash(d)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(diagramHash, opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if result, err := decodeResult(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				result.DiagramHash = diagramHash
				return result, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Debug("layout cache lookup failed", "error", err)
		}
	}
	cacheHooks.OnCacheMiss(ctx, "layout")

	result, err := ComputeLayout(d, opts.Config)
	if err != nil {
		return nil, false, err
	}
	result.DiagramHash = diagramHash

	if data, err := result.payload(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("layout cache store failed", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return result, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d diagram.Diagram, opts Options) (*Result, error) {
	result, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return result, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, result, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(result.LayoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, result, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(result.LayoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, result, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
// Stages log through opts.Logger so callers can pass a request-scoped logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
