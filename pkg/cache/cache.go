// Package cache stores rendered chart artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Backends:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [MemoryCache]: an in-process buntdb database
//   - [RedisCache]: a shared Redis instance, for the server
//   - [MongoCache]: a MongoDB collection with an expiry field
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the render options so that
// every distinct frame gets its own entry; [ScopedKeyer] adds a namespace.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLFrame applies to scene exports (JSON), which are cheap to rebuild.
	TTLFrame = 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG, PDF and DOT output.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key-value store for rendered output.
//
// Get returns the stored bytes and true on a hit. A miss is not an error.
// A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache stores nothing: every Get misses and every write succeeds.
type NullCache struct{}

// NewNullCache returns a cache with caching disabled.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// Pruner is implemented by backends that do not expire entries on their own.
type Pruner interface {
	// Prune removes expired entries and returns how many were removed.
	Prune(ctx context.Context) (int, error)
}

// FrameKeyOpts identifies one chart frame: everything that changes the
// scene a chart builds.
type FrameKeyOpts struct {
	Chart          string  `json:"chart"`
	Dataset        string  `json:"dataset"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Range          string  `json:"range"`
	Mode           string  `json:"mode"`
	Seed           uint64  `json:"seed"`
	Rotation       float64 `json:"rotation"`
	Phase          float64 `json:"phase"`
	Hover          int     `json:"hover"`
	HoverID        string  `json:"hover_id"`
	ShowMA         bool    `json:"show_ma"`
	ShowPrediction bool    `json:"show_prediction"`
	ShowVolume     bool    `json:"show_volume"`
	Symbol         string  `json:"symbol"`
}

// ArtifactKeyOpts identifies one rendering of a frame.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Interactive bool    `json:"interactive"`
	Watermark   bool    `json:"watermark"`
	Scale       float64 `json:"scale"`
	Detailed    bool    `json:"detailed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// FrameKey returns the key of a frame. Its hash part doubles as the
	// frame hash passed to ArtifactKey.
	FrameKey(opts FrameKeyOpts) string
	// ArtifactKey returns the key of one rendered format of a frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey hashes every frame option.
func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame", opts)
}

// ArtifactKey hashes the frame hash with the output options.
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}
