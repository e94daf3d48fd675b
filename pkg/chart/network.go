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
	datasetEcosystem = "ecosystem"
	datasetCyber     = "cyber"

	// Fixture offsets are laid out for this canvas.
	networkDesignW = 800.0
	networkDesignH = 600.0
)

type networkChart struct{}

func (networkChart) Kind() Kind { return KindNetwork }

func (networkChart) Description() string {
	return "Asset correlation network with data-flow pulses"
}

func (networkChart) Datasets() []string { return []string{datasetEcosystem, datasetCyber} }

func (networkChart) Bounds() viewport.Bounds { return viewport.Wide }

func (networkChart) Preset(dataset string) anim.Preset {
	if dataset == datasetCyber {
		return anim.Flow
	}
	return anim.Drift
}

func networkFor(v View) market.Network {
	if v.Data != nil && v.Data.Network != nil {
		return *v.Data.Network
	}
	if v.Dataset == datasetCyber {
		return mock.Cyber()
	}
	return mock.Ecosystem()
}

func (networkChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindNetwork), v.Size.W, v.Size.H)
	frame := s.Frame()
	unit := math.Min(v.Size.W/networkDesignW, v.Size.H/networkDesignH)
	c := geom.Point{X: frame.CenterX(), Y: frame.CenterY()}
	margin := 8 * unit

	net := networkFor(v)
	hoverID := v.hoveredNode(net)
	nodes, edges := geom.Network(net, geom.NetworkSpec{
		CX: c.X, CY: c.Y,
		Unit:     unit,
		Ring:     math.Min(v.Size.W, v.Size.H) * 0.35,
		MinR:     6 * unit,
		MaxR:     26 * unit,
		Bounds:   frame.Inset(margin, margin, margin, margin),
		Hover:    hoverID,
		Phase:    v.Clock.Phase.Value,
		Rotation: v.Clock.Angle(),
	})

	drawNetwork(s, net, nodes, edges, networkStyle{
		unit:   unit,
		pulses: v.Clock.Phase.Step != 0,
		hover:  hoverID,
	})

	// Halo around the heaviest node, turning with the clock.
	if len(nodes) > 0 {
		core := nodes[0]
		for _, n := range nodes[1:] {
			if n.R > core.R {
				core = n
			}
		}
		halo := scene.Circle(core.Center, core.R+6*unit).WithStroke(scene.PaintAccent, 1).WithDash("3 5")
		s.Add(scene.Group(halo).WithRotation(v.Clock.Angle(), core.Center).WithOpacity(0.7))
	}

	for i := range s.Items {
		if s.Items[i].Kind == scene.KindText {
			s.Items[i] = scene.FitText(s.Items[i], frame)
		}
	}
	return s
}

// hoveredNode resolves the hovered node of net by index or ID. It returns
// "" when neither names a node.
func (v View) hoveredNode(net market.Network) string {
	if i, ok := v.hovered(len(net.Nodes)); ok {
		return net.Nodes[i].ID
	}
	if _, ok := net.NodeByID(v.HoverID); ok {
		return v.HoverID
	}
	return ""
}

type networkStyle struct {
	unit   float64
	pulses bool
	hover  string
}

// drawNetwork adds edges, pulses, nodes, labels and the hover tooltip.
func drawNetwork(s *scene.Scene, net market.Network, nodes []geom.NodeShape, edges []geom.EdgeShape, st networkStyle) {
	edgeColor := make(map[[2]string]market.Edge, len(net.Edges))
	for _, e := range net.Edges {
		edgeColor[[2]string{e.Source, e.Target}] = e
	}

	for _, e := range edges {
		src := edgeColor[[2]string{e.Source, e.Target}]
		paint := src.Color
		if paint == "" {
			paint = scene.PaintPrimary
		}
		opacity := 0.3 + 0.5*geom.Clamp(e.Strength, 0, 1)
		if st.hover != "" {
			opacity = 0.15
			if e.Highlighted {
				opacity = 1
			}
		}
		s.Add(scene.Line(e.Line).WithStroke(paint, (1+e.Strength*3)*st.unit).WithOpacity(opacity))
		if st.pulses {
			r := (2 + geom.Clamp(src.Flow/100, 0, 1)*3) * st.unit
			s.Add(scene.Circle(e.Pulse, r).WithFill(paint).WithGlow())
		}
	}

	var tip *scene.Tooltip
	for _, n := range nodes {
		node := net.Nodes[n.Index]
		paint := node.Color
		if paint == "" {
			paint = scene.SeriesPaint(n.Index)
		}
		if n.Hovered {
			s.Add(scene.Circle(n.Center, n.R+4*st.unit).WithStroke(scene.PaintHighlight, 2).WithGlow())
		}
		item := scene.Circle(n.Center, n.R).
			WithFill(paint).
			WithOpacity(0.85).
			WithStroke(scene.PaintBackground, 1).
			WithID("node-"+n.ID).
			WithData("hover", n.ID)
		switch {
		case n.Hovered:
			item = item.WithClass("highlight")
		case st.hover != "" && !n.Related:
			item = item.WithOpacity(0.3).WithClass("dim")
		}
		s.Add(item)
		s.Add(scene.Text(geom.Point{X: n.Center.X, Y: n.Center.Y + n.R + 12*st.unit}, n.Label, 10*st.unit).WithFill(scene.PaintText))

		if n.Hovered {
			tip = nodeTooltip(net, n)
		}
	}
	s.Tooltip = tip
}

// nodeTooltip describes the market node behind a laid-out node.
func nodeTooltip(net market.Network, n geom.NodeShape) *scene.Tooltip {
	node, ok := net.NodeByID(n.ID)
	if !ok {
		return nil
	}
	lines := []scene.TooltipLine{{Label: "Weight", Value: formatNumber(node.Weight)}}
	if node.Category != "" {
		lines = append(lines, scene.TooltipLine{Label: "Category", Value: node.Category})
	}
	if node.Level > 0 {
		lines = append(lines, scene.TooltipLine{Label: "Level", Value: formatNumber(float64(node.Level))})
	}
	return &scene.Tooltip{Title: n.Label, Lines: lines, Anchor: n.Center}
}
