package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/observability"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the API and the live stream all use it so that caching logic
// lives in one place.
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

// Execute runs the build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		FrameHash: cache.KeyHash(r.Keyer.FrameKey(opts.FrameKeyOpts())),
	}

	// Stage 1: Build
	buildStart := time.Now()
	s, err := buildScene(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = s
	result.Stats.Items = len(s.Items)
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Debug("built scene",
		"chart", opts.Chart,
		"items", result.Stats.Items,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, s, result.FrameHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered chart",
		"chart", opts.Chart,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format of a built scene.
// Formats found in the cache are reused; the rest are rendered
// concurrently and stored. The bool reports whether all formats were hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, frameHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Cacheable() {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, format)
			artifacts[format] = data
			continue
		}
		hooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := r.renderFormats(ctx, s, missing, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !opts.Cacheable() {
			continue
		}
		key := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttlFor(format)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, frameHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, frameHash, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(ctx context.Context, s *scene.Scene, formats []string, opts Options) (map[string][]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Chart, formats)
	start := time.Now()

	var mu sync.Mutex
	out := make(map[string][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			data, err := RenderFormat(gctx, s, format, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			mu.Lock()
			out[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Chart, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ttlFor(format string) time.Duration {
	if format == FormatJSON {
		return cache.TTLFrame
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
