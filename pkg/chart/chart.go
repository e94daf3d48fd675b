// Package chart builds the dashboard charts as scenes.
//
// Every chart kind pairs a set of layout engines from
// [github.com/matzehuels/cryptoviz/pkg/geom] with a size policy from
// [github.com/matzehuels/cryptoviz/pkg/viewport] and an animation preset
// from [github.com/matzehuels/cryptoviz/pkg/anim]. A [View] carries the
// per-instance state (size, clock, hover selection, time range, mode) and
// [Build] turns it into a [scene.Scene].
//
// Building is a pure function of the view: the same view always yields the
// same scene, including the decorative randomness, which is drawn from a
// source seeded by View.Seed.
//
// [scene.Scene]: github.com/matzehuels/cryptoviz/pkg/scene.Scene
package chart

import (
	"slices"
	"strings"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

// Kind names a chart.
type Kind string

const (
	KindAllocation Kind = "allocation"
	KindOrbit      Kind = "orbit"
	KindNeural     Kind = "neural"
	KindNetwork    Kind = "network"
	KindHalfEye    Kind = "halfeye"
	KindInsight    Kind = "insight"
	KindSpark      Kind = "spark"
)

// NoHover marks a view without an index selection.
const NoHover = -1

// Data overrides the fixture data a chart draws. Nil fields fall back to
// the chart's dataset.
type Data struct {
	Slices  []market.Slice  `json:"slices,omitempty"`
	Network *market.Network `json:"network,omitempty"`
	Assets  []market.Asset  `json:"assets,omitempty"`
	Series  []market.Point  `json:"series,omitempty"`
	Candles []market.Candle `json:"candles,omitempty"`
	Values  []float64       `json:"values,omitempty"`
}

// View is the state of one chart instance.
type View struct {
	Kind    Kind          `json:"kind"`
	Size    viewport.Size `json:"size"`
	Clock   anim.Clock    `json:"clock"`
	Dataset string        `json:"dataset,omitempty"`

	// Hover selects an item by index; NoHover or an out-of-range index
	// selects nothing. HoverID selects a network node by ID.
	Hover   int    `json:"hover"`
	HoverID string `json:"hover_id,omitempty"`

	Range          market.Range `json:"range,omitempty"`
	Mode           market.Mode  `json:"mode,omitempty"`
	ShowMA         bool         `json:"show_ma"`
	ShowPrediction bool         `json:"show_prediction"`
	ShowVolume     bool         `json:"show_volume"`

	Symbol string `json:"symbol,omitempty"`
	Seed   uint64 `json:"seed"`
	Data   *Data  `json:"data,omitempty"`
}

// Chart is one chart kind.
type Chart interface {
	Kind() Kind
	Description() string
	// Datasets lists the built-in data sets; the first is the default.
	Datasets() []string
	Bounds() viewport.Bounds
	Preset(dataset string) anim.Preset
	Build(v View) *scene.Scene
}

var registry = map[Kind]Chart{}

func register(c Chart) { registry[c.Kind()] = c }

func init() {
	register(allocationChart{})
	register(orbitChart{})
	register(neuralChart{})
	register(networkChart{})
	register(halfEyeChart{})
	register(insightChart{})
	register(sparkChart{})
}

// Kinds returns every chart kind in display order.
func Kinds() []Kind {
	return []Kind{KindAllocation, KindOrbit, KindNeural, KindNetwork, KindHalfEye, KindInsight, KindSpark}
}

// ParseKind parses a chart name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[k]; !ok {
		return "", errors.New(errors.ErrCodeInvalidChart, "unknown chart %q (must be one of %s)", s, kindList())
	}
	return k, nil
}

func kindList() string {
	names := make([]string, 0, len(registry))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Lookup returns the chart for a kind.
func Lookup(k Kind) (Chart, error) {
	c, ok := registry[k]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidChart, "unknown chart %q (must be one of %s)", k, kindList())
	}
	return c, nil
}

// NewView returns the initial view of a chart: fallback size, the preset
// clock of the default dataset, no hover and the default range.
func NewView(k Kind) (View, error) {
	c, err := Lookup(k)
	if err != nil {
		return View{}, err
	}
	ds := c.Datasets()[0]
	return View{
		Kind:           k,
		Size:           c.Bounds().Fallback,
		Clock:          c.Preset(ds).Clock,
		Dataset:        ds,
		Hover:          NoHover,
		Range:          market.DefaultRange,
		Mode:           market.ModeLine,
		ShowMA:         true,
		ShowPrediction: true,
		ShowVolume:     true,
		Symbol:         defaultSymbol,
		Seed:           mock.DefaultSeed,
	}, nil
}

// Build renders a view into a scene. Missing fields take their defaults;
// an empty size uses the chart's fallback size, and a size below the
// chart's minimum is raised to it.
func Build(v View) (*scene.Scene, error) {
	c, err := Lookup(v.Kind)
	if err != nil {
		return nil, err
	}
	v, err = normalize(c, v)
	if err != nil {
		return nil, err
	}
	return c.Build(v), nil
}

func normalize(c Chart, v View) (View, error) {
	if v.Dataset == "" {
		v.Dataset = c.Datasets()[0]
	}
	if !slices.Contains(c.Datasets(), v.Dataset) {
		return v, errors.New(errors.ErrCodeInvalidDataset, "chart %s has no dataset %q (must be one of %s)",
			c.Kind(), v.Dataset, strings.Join(c.Datasets(), ", "))
	}
	if err := errors.ValidateDimensions(v.Size.W, v.Size.H); err != nil {
		return v, err
	}
	if v.Size.Empty() {
		v.Size = c.Bounds().Fallback
	}
	v.Size = c.Bounds().Floor(v.Size)
	if v.Range == "" {
		v.Range = market.DefaultRange
	}
	if v.Mode == "" {
		v.Mode = market.ModeLine
	}
	if v.Symbol == "" {
		v.Symbol = defaultSymbol
	}
	return v, nil
}

// hovered returns the selected index if it addresses one of n items.
func (v View) hovered(n int) (int, bool) {
	if v.Hover < 0 || v.Hover >= n {
		return 0, false
	}
	return v.Hover, true
}

// Network returns the graph a node-link view draws, and the inches per
// offset unit to export it with. Views of other kinds report false.
func Network(v View) (market.Network, float64, bool) {
	c, err := Lookup(v.Kind)
	if err != nil {
		return market.Network{}, 0, false
	}
	if v, err = normalize(c, v); err != nil {
		return market.Network{}, 0, false
	}
	switch v.Kind {
	case KindNetwork:
		return networkFor(v), 1.0 / 72, true
	case KindHalfEye:
		return halfEyeNetwork(v), 3, true
	case KindNeural:
		return mock.SliceNetwork(slicesFor(v)), 0, true
	}
	return market.Network{}, 0, false
}
