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
	datasetMarkets = "markets"

	orbitRadius   = 0.76 // of half the canvas side
	orbitSpokes   = 24
	orbitMaxScore = 100
)

var orbitRings = []struct {
	ratio, opacity float64
	color          string
}{
	{0.3, 0.8, "#00ff88"},
	{0.5, 0.6, "#00aaff"},
	{0.7, 0.4, "#ff6600"},
	{0.9, 0.3, "#ff0088"},
}

type orbitChart struct{}

func (orbitChart) Kind() Kind { return KindOrbit }

func (orbitChart) Description() string {
	return "Assets orbiting by score with rotating spokes"
}

func (orbitChart) Datasets() []string { return []string{datasetMarkets} }

func (orbitChart) Bounds() viewport.Bounds { return viewport.Square500 }

func (orbitChart) Preset(string) anim.Preset { return anim.Orbit }

func assetsFor(v View) []market.Asset {
	if v.Data != nil && v.Data.Assets != nil {
		return v.Data.Assets
	}
	return mock.Assets()
}

func (orbitChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindOrbit), v.Size.W, v.Size.H)
	frame := s.Frame()
	half := math.Min(v.Size.W, v.Size.H) / 2
	c := geom.Point{X: frame.CenterX(), Y: frame.CenterY()}
	unit := half / 250
	R := half * orbitRadius

	for _, ring := range orbitRings {
		s.Add(scene.Circle(c, R*ring.ratio).WithStroke(ring.color, 1).WithOpacity(ring.opacity).WithDash("4 4"))
	}

	// Spokes are laid out once and turned as a group.
	spokes := lo.Map(geom.Spokes(c.X, c.Y, 0.2*R, R, orbitSpokes, 0), func(sp geom.Segment, _ int) scene.Item {
		return scene.Line(sp).WithStroke(scene.PaintGrid, 0.5)
	})
	s.Add(scene.Group(spokes...).WithRotation(v.Clock.Angle(), c).WithOpacity(0.5))

	assets := assetsFor(v)
	scores := lo.Map(assets, func(a market.Asset, _ int) float64 { return a.Score })
	points := geom.Radial(scores, geom.RadialSpec{
		CX: c.X, CY: c.Y,
		Inner: 0.6 * R, Outer: 0.9 * R,
		Rotation: v.Clock.Angle(),
		Max:      orbitMaxScore,
	})
	hover, hovering := v.hovered(len(points))

	for i, p := range points {
		a := assets[i]
		paint := scene.PaintUp
		if a.Change < 0 {
			paint = scene.PaintDown
		}
		size := (4 + geom.Clamp(a.Score/orbitMaxScore, 0, 1)*8) * unit
		key := strconv.Itoa(i)

		s.Add(scene.Line(geom.Segment{From: c, To: p.Point}).WithStroke(paint, 0.5).WithOpacity(0.3))
		dot := scene.Circle(p.Point, size).WithFill(paint).WithID("asset-" + key).WithData("hover", key).WithGlow()
		if hovering && i != hover {
			dot = dot.WithOpacity(0.4)
		}
		if hovering && i == hover {
			s.Add(scene.Circle(p.Point, size+4*unit).WithStroke(scene.PaintHighlight, 2))
		}
		s.Add(dot)

		lp := geom.Polar(c.X, c.Y, p.Radius+size+14*unit, p.Angle)
		label := scene.Text(lp, a.Symbol, 10*unit).WithFill(scene.PaintText).WithAnchor(labelAnchor(lp.X, c.X))
		s.Add(scene.FitText(label, frame))
	}

	s.Add(
		scene.Circle(c, 0.12*R).WithFill(scene.PaintBackground).WithStroke(scene.PaintPrimary, 2).WithGlow(),
		scene.Text(geom.Point{X: c.X, Y: c.Y + 4*unit}, strconv.Itoa(len(assets)), 12*unit).WithFill(scene.PaintPrimary).WithBold(),
	)

	if hovering {
		a := assets[hover]
		s.Tooltip = &scene.Tooltip{
			Title: a.Name + " (" + a.Symbol + ")",
			Lines: []scene.TooltipLine{
				{Label: "Score", Value: strconv.FormatFloat(a.Score, 'f', 0, 64)},
				{Label: "Change", Value: formatChange(a.Change)},
				{Label: "Volume", Value: a.Volume},
			},
			Anchor: points[hover].Point,
		}
	}
	return s
}
