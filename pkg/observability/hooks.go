// Package observability lets the binary observe renders, cache traffic and
// live streams without the core packages depending on a metrics backend.
//
// Libraries emit events through Render, Cache and Stream. The binary
// installs sinks once at startup with Register; until then every event
// goes to a no-op.
//
//	observability.Register(observability.NewLogHooks(logger))
//	observability.Render().OnBuild(ctx, "orbit", items, elapsed)
package observability

import (
	"context"
	"time"
)

// RenderHooks receives pipeline events. OnRenderStart and OnRenderComplete
// bracket the formats that missed the cache.
type RenderHooks interface {
	OnBuild(ctx context.Context, chart string, items int, duration time.Duration)
	OnRenderStart(ctx context.Context, chart string, formats []string)
	OnRenderComplete(ctx context.Context, chart string, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. keyType is the output
// format.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// StreamHooks receives websocket stream events.
type StreamHooks interface {
	OnOpen(ctx context.Context, id, chart string)
	OnFrame(ctx context.Context, id string, size int)
	OnClose(ctx context.Context, id string, frames uint64, err error)
}

// Noop implements every hook interface and discards all events. Embed it
// to implement only some events.
type Noop struct{}

func (Noop) OnBuild(context.Context, string, int, time.Duration)                      {}
func (Noop) OnRenderStart(context.Context, string, []string)                          {}
func (Noop) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                                       {}
func (Noop) OnCacheMiss(context.Context, string)                                      {}
func (Noop) OnCacheSet(context.Context, string, int)                                  {}
func (Noop) OnOpen(context.Context, string, string)                                   {}
func (Noop) OnFrame(context.Context, string, int)                                     {}
func (Noop) OnClose(context.Context, string, uint64, error)                           {}
