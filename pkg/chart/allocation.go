package chart

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	datasetAllocation  = "allocation"
	datasetPerformance = "performance"
)

// Radii as fractions of half the canvas side.
const (
	allocOuter      = 0.55
	allocInnerRatio = 0.3
	allocMidRatio   = 0.65
	allocSpikeGap   = 0.04
	allocSpikeMin   = 0.04
	allocSpikeMax   = 0.20
	allocLabel      = 0.88
	allocGridSpokes = 12
)

type allocationChart struct{}

func (allocationChart) Kind() Kind { return KindAllocation }

func (allocationChart) Description() string {
	return "Radial allocation ring with spikes and labels"
}

func (allocationChart) Datasets() []string { return []string{datasetAllocation, datasetPerformance} }

func (allocationChart) Bounds() viewport.Bounds { return viewport.Square600 }

func (allocationChart) Preset(dataset string) anim.Preset {
	if dataset == datasetPerformance {
		return anim.Scanner
	}
	return anim.Ring
}

func slicesFor(v View) []market.Slice {
	if v.Data != nil && v.Data.Slices != nil {
		return v.Data.Slices
	}
	if v.Dataset == datasetPerformance {
		return mock.Performance()
	}
	return mock.Allocation()
}

func (allocationChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindAllocation), v.Size.W, v.Size.H)
	frame := s.Frame()
	half := math.Min(v.Size.W, v.Size.H) / 2
	cx, cy := v.Size.W/2, v.Size.H/2
	unit := half / 300

	outer := half * allocOuter
	inner := outer * allocInnerRatio
	mid := outer * allocMidRatio

	slices := slicesFor(v)
	weights := lo.Map(slices, func(sl market.Slice, _ int) float64 { return sl.Value })
	total := lo.Sum(lo.Map(weights, func(w float64, _ int) float64 { return math.Max(0, w) }))
	arcs := geom.Arcs(weights, geom.ArcSpec{
		CX: cx, CY: cy, Inner: inner, Outer: outer,
		Start: geom.Top + geom.Radians(v.Clock.Angle()),
	})
	hover, hovering := v.hovered(len(arcs))

	// Grid: reference rings and spokes.
	for _, r := range []float64{inner, mid, outer} {
		s.Add(scene.Circle(geom.Point{X: cx, Y: cy}, r).WithStroke(scene.PaintGrid, 1).WithOpacity(0.6))
	}
	for _, sp := range geom.Spokes(cx, cy, inner, outer, allocGridSpokes, v.Clock.Angle()) {
		s.Add(scene.Line(sp).WithStroke(scene.PaintGrid, 0.5).WithOpacity(0.4))
	}

	// Scan line, when the clock carries a phase.
	if v.Clock.Phase.Step != 0 {
		a := geom.Top + geom.Radians(v.Clock.Phase.Value)
		scan := geom.Segment{From: geom.Polar(cx, cy, inner, a), To: geom.Polar(cx, cy, outer, a)}
		s.Add(scene.Line(scan).WithStroke(scene.PaintAccent, 2).WithOpacity(0.8).WithGlow())
	}

	rng := mock.NewRand(v.Seed)
	spikes := geom.SpikeSpec{
		From:     outer + half*allocSpikeGap,
		MinLen:   half * allocSpikeMin,
		MaxLen:   half * allocSpikeMax,
		Density:  20,
		MinCount: 3,
	}
	hull := scene.CircleHull(cx, cy, outer)
	for i, a := range arcs {
		paint := scene.SeriesPaint(i)
		opacity := 0.7
		if hovering {
			opacity = 0.35
			if i == hover {
				opacity = 1
			}
		}
		key := strconv.Itoa(i)
		s.Add(scene.Path(a.Path, hull...).
			WithID("arc-"+key).
			WithFill(paint).
			WithOpacity(opacity).
			WithStroke(scene.PaintBackground, 1).
			WithData("hover", key))

		for _, sp := range geom.Spikes(a, cx, cy, spikes, rng) {
			s.Add(scene.Line(sp).WithStroke(paint, 1).WithOpacity(0.6))
		}

		if a.Sweep > 0 {
			p := geom.Polar(cx, cy, half*allocLabel, a.Mid())
			label := scene.Text(p, slices[i].Name, 11*unit).WithFill(paint).WithAnchor(labelAnchor(p.X, cx))
			s.Add(scene.FitText(label, frame))
			val := scene.Text(geom.Point{X: p.X, Y: p.Y + 13*unit}, formatPercent(share(slices[i].Value, total)), 10*unit).
				WithFill(scene.PaintMuted).WithAnchor(labelAnchor(p.X, cx))
			s.Add(scene.FitText(val, frame))
		}
	}

	// Connections between related slices, drawn inside the hole.
	for i, sl := range slices {
		for _, j := range sl.Connections {
			if j <= i || j >= len(arcs) || arcs[i].Sweep == 0 || arcs[j].Sweep == 0 {
				continue
			}
			line := geom.Segment{
				From: geom.Polar(cx, cy, inner*0.9, arcs[i].Mid()),
				To:   geom.Polar(cx, cy, inner*0.9, arcs[j].Mid()),
			}
			opacity := 0.25
			if hovering && (i == hover || j == hover) {
				opacity = 0.9
			}
			s.Add(scene.Line(line).WithStroke(scene.PaintPrimary, 1).WithOpacity(opacity).WithDash("2 3"))
		}
	}

	// Center readout.
	title, value := "TOTAL", formatPercent(100)
	if total == 0 {
		value = formatPercent(0)
	}
	if hovering {
		title, value = slices[hover].Name, formatPercent(share(slices[hover].Value, total))
	}
	s.Add(
		scene.Text(geom.Point{X: cx, Y: cy - 2*unit}, value, 20*unit).WithFill(scene.PaintPrimary).WithBold(),
		scene.Text(geom.Point{X: cx, Y: cy + 14*unit}, title, 9*unit).WithFill(scene.PaintMuted),
	)

	if hovering {
		sl := slices[hover]
		s.Tooltip = &scene.Tooltip{
			Title: sl.Name,
			Lines: []scene.TooltipLine{
				{Label: "Share", Value: formatPercent(share(sl.Value, total))},
				{Label: "Value", Value: strconv.FormatFloat(sl.Value, 'f', -1, 64)},
				{Label: "Links", Value: strconv.Itoa(len(sl.Connections))},
			},
			Anchor: geom.Polar(cx, cy, outer, arcs[hover].Mid()),
		}
	}
	return s
}

func share(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Max(0, v) / total * 100
}

func labelAnchor(x, cx float64) string {
	switch {
	case x < cx-1:
		return scene.AnchorEnd
	case x > cx+1:
		return scene.AnchorStart
	}
	return scene.AnchorMiddle
}
