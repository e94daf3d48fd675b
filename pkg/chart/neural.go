package chart

import (
	"math"
	"strconv"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	neuralRadius = 0.73 // of half the canvas side
	neuralRing   = 0.8  // node ring, of the radius
)

type neuralChart struct{}

func (neuralChart) Kind() Kind { return KindNeural }

func (neuralChart) Description() string {
	return "Allocation nodes on a slowly turning ring with their links"
}

func (neuralChart) Datasets() []string { return []string{datasetAllocation, datasetPerformance} }

func (neuralChart) Bounds() viewport.Bounds { return viewport.Square600 }

func (neuralChart) Preset(string) anim.Preset { return anim.Drift }

func (neuralChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindNeural), v.Size.W, v.Size.H)
	frame := s.Frame()
	half := math.Min(v.Size.W, v.Size.H) / 2
	c := geom.Point{X: v.Size.W / 2, Y: v.Size.H / 2}
	unit := half / 300
	radius := half * neuralRadius

	slices := slicesFor(v)
	net := mock.SliceNetwork(slices)
	hoverID := v.hoveredNode(net)

	nodes, edges := geom.Network(net, geom.NetworkSpec{
		CX: c.X, CY: c.Y,
		Ring:     radius * neuralRing,
		MinR:     8 * unit,
		MaxR:     24 * unit,
		Bounds:   frame,
		Hover:    hoverID,
		Rotation: v.Clock.Angle(),
	})

	s.Add(
		scene.Circle(c, radius).WithStroke(scene.PaintGrid, 1),
		scene.Circle(c, radius*neuralRing).WithStroke(scene.PaintGrid, 0.5).WithDash("2 4"),
	)
	for _, n := range nodes {
		s.Add(scene.Line(geom.Segment{From: c, To: n.Center}).WithStroke(scene.PaintGrid, 0.5).WithOpacity(0.5))
	}

	for _, e := range edges {
		opacity, width := 0.35, 1.0
		if e.Highlighted {
			opacity, width = 1, 2
		}
		s.Add(scene.Line(e.Line).WithStroke(scene.PaintPrimary, width).WithOpacity(opacity))
	}

	var tip *scene.Tooltip
	for _, n := range nodes {
		key := strconv.Itoa(n.Index)
		node := scene.Circle(n.Center, n.R).
			WithFill(scene.PaintBackground).
			WithStroke(scene.PaintPrimary, 2).
			WithID("node-"+key).
			WithData("hover", key)
		if n.Hovered || n.Related {
			node = node.WithGlow()
		}
		if hoverID != "" && !n.Hovered && !n.Related {
			node = node.WithOpacity(0.4)
		}
		s.Add(node)

		sl := slices[n.Index]
		lp := geom.Point{X: n.Center.X, Y: n.Center.Y + n.R + 14*unit}
		s.Add(
			scene.Text(geom.Point{X: n.Center.X, Y: n.Center.Y + 3*unit}, formatPercent(sl.Value), 9*unit).WithFill(scene.PaintPrimary),
			scene.FitText(scene.Text(lp, sl.Name, 10*unit).WithFill(scene.PaintText), frame),
		)
		if n.Hovered {
			tip = &scene.Tooltip{
				Title: sl.Name,
				Lines: []scene.TooltipLine{
					{Label: "Value", Value: formatPercent(sl.Value)},
					{Label: "Links", Value: strconv.Itoa(len(sl.Connections))},
				},
				Anchor: n.Center,
			}
		}
	}

	s.Add(
		scene.Circle(c, 20*unit).WithFill(scene.PaintPrimary).WithOpacity(0.9).WithGlow(),
		scene.Text(geom.Point{X: c.X, Y: c.Y + 4*unit}, "AI", 12*unit).WithFill(scene.PaintBackground).WithBold(),
	)
	s.Tooltip = tip
	return s
}
