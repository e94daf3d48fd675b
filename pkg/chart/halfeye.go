package chart

import (
	"math"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	datasetNeural = "neural"

	halfEyeRadius = 0.9 // of the canvas height
	halfEyeSpokes = 7
)

type halfEyeChart struct{}

func (halfEyeChart) Kind() Kind { return KindHalfEye }

func (halfEyeChart) Description() string {
	return "Half-disc neural network with a sweeping scan line"
}

func (halfEyeChart) Datasets() []string { return []string{datasetNeural} }

func (halfEyeChart) Bounds() viewport.Bounds { return viewport.HalfDisc }

func (halfEyeChart) Preset(string) anim.Preset { return anim.Sweep }

func (halfEyeChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindHalfEye), v.Size.W, v.Size.H)
	frame := s.Frame()
	radius := math.Min(v.Size.H*halfEyeRadius, v.Size.W/2*0.95)
	c := geom.Point{X: v.Size.W / 2, Y: v.Size.H}
	px := v.Size.H / 400
	margin := 6 * px

	for _, f := range []float64{0.25, 0.5, 0.75, 1} {
		r := radius * f
		var p geom.PathBuilder
		p.MoveTo(geom.Point{X: c.X - r, Y: c.Y}).ArcTo(r, false, true, geom.Point{X: c.X + r, Y: c.Y})
		hull := []geom.Point{{X: c.X - r, Y: c.Y - r}, {X: c.X + r, Y: c.Y}}
		s.Add(scene.Path(p.String(), hull...).WithStroke(scene.PaintGrid, 1).WithOpacity(0.4 + 0.4*f))
	}
	for k := range halfEyeSpokes {
		a := math.Pi + float64(k)*math.Pi/float64(halfEyeSpokes-1)
		s.Add(scene.Line(geom.Segment{
			From: geom.Polar(c.X, c.Y, 0.1*radius, a),
			To:   geom.Polar(c.X, c.Y, radius, a),
		}).WithStroke(scene.PaintGrid, 0.5).WithOpacity(0.5))
	}

	// The scan line sweeps left to right across the disc.
	scanAngle := math.Pi + v.Clock.Phase.Value/100*math.Pi
	s.Add(scene.Line(geom.Segment{From: c, To: geom.Polar(c.X, c.Y, radius, scanAngle)}).
		WithStroke(scene.PaintAccent, 2).WithOpacity(0.8).WithGlow())

	net := halfEyeNetwork(v)
	hoverID := v.hoveredNode(net)
	nodes, edges := geom.Network(net, geom.NetworkSpec{
		CX: c.X, CY: c.Y,
		Unit:   radius,
		Ring:   radius * 0.5,
		MinR:   5 * px,
		MaxR:   16 * px,
		Bounds: frame.Inset(margin, margin, margin, margin),
		Hover:  hoverID,
		Phase:  v.Clock.Phase.Value,
	})
	drawNetwork(s, net, nodes, edges, networkStyle{unit: px, pulses: true, hover: hoverID})

	for i := range s.Items {
		if s.Items[i].Kind == scene.KindText {
			s.Items[i] = scene.FitText(s.Items[i], frame)
		}
	}
	return s
}

// halfEyeNetwork colors nodes by category when the data has no colors.
func halfEyeNetwork(v View) market.Network {
	if v.Data != nil && v.Data.Network != nil {
		return *v.Data.Network
	}
	net := mock.HalfEye()
	paints := map[string]string{
		"core":       scene.PaintPrimary,
		"primary":    scene.PaintUp,
		"secondary":  scene.PaintAccent,
		"peripheral": scene.PaintMuted,
	}
	for i, n := range net.Nodes {
		if n.Color == "" {
			net.Nodes[i].Color = paints[n.Category]
		}
	}
	return net
}
