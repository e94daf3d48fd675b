// Package pkg provides the core libraries for cryptoviz dashboard charts.
//
// # Overview
//
// Cryptoviz lays out the animated charts of a crypto dashboard: radial
// allocation rings, orbiting assets, node-link networks, half-disc arcs,
// candlestick panels and sparklines. Layout is pure: a chart view plus an
// animation clock always produces the same scene. The pkg directory is
// organized into four areas:
//
//  1. Domain - [chart], [market], [mock], [geom], [scene]
//  2. Motion - [anim] (clocks and drivers), [viewport] (resize observers)
//  3. Output - [render] and its [render/sink], [render/styles] and
//     [render/nodelink] subpackages
//  4. Orchestration - [pipeline], [cache], [config], [server]
//
// # Architecture
//
// The typical data flow through cryptoviz:
//
//	Seeded fixtures or caller data
//	         ↓
//	    [chart] package (view + clock → scene)
//	         ↓
//	    [render/sink] package (scene → SVG/PNG/PDF/JSON)
//	         ↓
//	    [cache] package (frame hash → artifact)
//	         ↓
//	    CLI file, HTTP response or websocket frame
//
// # Quick Start
//
// Build and render one frame of the orbit chart:
//
//	import (
//	    "github.com/matzehuels/cryptoviz/pkg/anim"
//	    "github.com/matzehuels/cryptoviz/pkg/chart"
//	    "github.com/matzehuels/cryptoviz/pkg/render/sink"
//	)
//
//	v, _ := chart.NewView(chart.KindOrbit)
//	v.Clock = anim.Orbit.Clock.At(45)
//	s, _ := chart.Build(v)
//	svg := sink.RenderSVG(s)
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Chart:   "insight",
//	    Range:   "1W",
//	    Mode:    "candle",
//	    Hover:   chart.NoHover,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [chart] - The chart registry. Every chart kind declares its datasets, its
// viewport bounds and its animation preset, and builds a [scene.Scene].
//
// [anim] - Animation clocks as plain values, and a [anim.Driver] that ticks
// a clock on an interval. Stopping a driver guarantees no further callbacks.
//
// [viewport] - Per-chart size bounds and an observer that turns container
// resizes into chart sizes.
//
// [mock] - Deterministic fixtures: seeded price series, candles, networks and
// allocation slices.
//
// [render/sink] - Output formats. SVG is native; PNG and PDF are converted
// with rsvg-convert.
//
// [pipeline] - Validation, caching and rendering shared by the CLI, the HTTP
// API and the live stream.
//
// [cache] - File, memory, Redis, MongoDB and null backends behind one
// interface.
//
// [server] - Dashboard page, render API and websocket streams.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/chart/...              # Specific package
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/chart
// [market]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/market
// [mock]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/mock
// [geom]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/scene
// [anim]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/anim
// [viewport]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/viewport
// [render]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/render/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/cryptoviz/pkg/server
package pkg
