// Package pipeline provides the chart rendering pipeline for cryptoviz.
//
// The pipeline turns a set of [Options] into rendered artifacts. It is shared
// by the CLI, the HTTP API and the live stream so that every entry point
// validates, defaults and caches the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: resolve the chart view and lay it out as a scene
//  2. Render: turn the scene into the requested formats (SVG, PNG, PDF,
//     JSON, DOT), concurrently, with each format cached on its own
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Chart:   "orbit",
//	    Hover:   chart.NoHover,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Build only:
//
//	s, err := pipeline.Scene(opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Stream
// =============================================================================

const (
	// DefaultChart is rendered when no chart is named.
	DefaultChart = string(chart.KindAllocation)

	// DefaultStyle is the default color theme.
	DefaultStyle = "cyber"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultWatermark is written into the corner of exported SVGs.
	DefaultWatermark = "cryptoviz"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatGraph is the chart network laid out by Graphviz, as SVG.
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// Formats returns the supported formats in display order.
func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}
}

// NetworkFormats are only available for charts that draw a network.
var NetworkFormats = []string{FormatDOT, FormatGraph}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one chart frame and its outputs.
// This struct supports JSON serialization for API requests.
//
// Hover is an index; zero selects the first item, so callers wanting no
// selection must pass chart.NoHover.
type Options struct {
	// View options
	Chart          string  `json:"chart"`
	Dataset        string  `json:"dataset,omitempty"`
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	Range          string  `json:"range,omitempty"`
	Mode           string  `json:"mode,omitempty"`
	Seed           uint64  `json:"seed,omitempty"`
	Rotation       float64 `json:"rotation,omitempty"`
	Phase          float64 `json:"phase,omitempty"`
	Hover          int     `json:"hover"`
	HoverID        string  `json:"hover_id,omitempty"`
	ShowMA         bool    `json:"show_ma,omitempty"`
	ShowPrediction bool    `json:"show_prediction,omitempty"`
	ShowVolume     bool    `json:"show_volume,omitempty"`
	Symbol         string  `json:"symbol,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Watermark   bool     `json:"watermark,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // DOT labels carry weight and category

	// Runtime options (not serialized)
	Data   *chart.Data `json:"-"`
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the laid out frame.
	Scene *scene.Scene

	// FrameHash identifies the frame in cache keys and API responses.
	FrameHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats(), ", "))
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

// ValidateStyle checks that a style names a theme.
func ValidateStyle(style string) error {
	if _, ok := styles.Lookup(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)",
			style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Chart == "" {
		o.Chart = DefaultChart
	}
	if o.Range == "" {
		o.Range = string(market.DefaultRange)
	}
	if o.Mode == "" {
		o.Mode = string(market.ModeLine)
	}
	if o.Seed == 0 {
		o.Seed = mock.DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field. Names are normalized
// to their canonical spelling.
func (o *Options) Validate() error {
	o.SetDefaults()

	k, err := chart.ParseKind(o.Chart)
	if err != nil {
		return err
	}
	o.Chart = string(k)
	if c, _ := chart.Lookup(k); o.Dataset != "" && !slices.Contains(c.Datasets(), o.Dataset) {
		return errors.New(errors.ErrCodeInvalidDataset, "chart %s has no dataset %q (must be one of %s)",
			k, o.Dataset, strings.Join(c.Datasets(), ", "))
	}

	r, err := market.ParseRange(o.Range)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRange, err, "invalid range")
	}
	o.Range = string(r)

	m, err := market.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid mode")
	}
	o.Mode = string(m)

	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateFinite("rotation", o.Rotation); err != nil {
		return err
	}
	if err := errors.ValidateFinite("phase", o.Phase); err != nil {
		return err
	}
	if err := errors.ValidateFinite("scale", o.Scale); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	if o.Symbol != "" {
		if err := errors.ValidateSymbol(o.Symbol); err != nil {
			return err
		}
	}
	if err := errors.ValidateNodeID(o.HoverID); err != nil {
		return err
	}

	if o.Data != nil {
		for i, c := range o.Data.Candles {
			if !c.Valid() {
				return errors.New(errors.ErrCodeInvalidInput, "candle %d: low and high must bracket open and close", i)
			}
		}
	}

	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range NetworkFormats {
		if !slices.Contains(o.Formats, f) {
			continue
		}
		if _, _, ok := chart.Network(chart.View{Kind: k, Dataset: o.Dataset}); !ok {
			return errors.New(errors.ErrCodeUnsupported, "format %s is only available for network charts", f)
		}
	}
	o.Style = strings.ToLower(o.Style)
	return ValidateStyle(o.Style)
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// View converts the options into a chart view. The clock carries the
// chart's animation preset positioned at Rotation and Phase.
func (o *Options) View() (chart.View, error) {
	k, err := chart.ParseKind(o.Chart)
	if err != nil {
		return chart.View{}, err
	}
	c, err := chart.Lookup(k)
	if err != nil {
		return chart.View{}, err
	}
	ds := o.Dataset
	if ds == "" {
		ds = c.Datasets()[0]
	}
	return chart.View{
		Kind:           k,
		Size:           viewport.Size{W: o.Width, H: o.Height},
		Clock:          c.Preset(ds).Clock.At(o.Rotation).AtPhase(o.Phase),
		Dataset:        o.Dataset,
		Hover:          o.Hover,
		HoverID:        o.HoverID,
		Range:          market.Range(o.Range),
		Mode:           market.Mode(o.Mode),
		ShowMA:         o.ShowMA,
		ShowPrediction: o.ShowPrediction,
		ShowVolume:     o.ShowVolume,
		Symbol:         o.Symbol,
		Seed:           o.Seed,
		Data:           o.Data,
	}, nil
}

// WithClock returns a copy of the options positioned at the clock.
func (o Options) WithClock(c anim.Clock) Options {
	o.Rotation = c.Angle()
	o.Phase = c.Phase.Value
	return o
}

// FrameKeyOpts returns cache key options for the frame.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Chart:          o.Chart,
		Dataset:        o.Dataset,
		Width:          o.Width,
		Height:         o.Height,
		Range:          o.Range,
		Mode:           o.Mode,
		Seed:           o.Seed,
		Rotation:       o.Rotation,
		Phase:          o.Phase,
		Hover:          o.Hover,
		HoverID:        o.HoverID,
		ShowMA:         o.ShowMA,
		ShowPrediction: o.ShowPrediction,
		ShowVolume:     o.ShowVolume,
		Symbol:         o.Symbol,
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Interactive: o.Interactive,
		Watermark:   o.Watermark,
		Scale:       o.Scale,
		Detailed:    o.Detailed,
	}
}

// Cacheable reports whether the frame can be cached. Frames built from
// caller-supplied data are not.
func (o *Options) Cacheable() bool { return o.Data == nil }
