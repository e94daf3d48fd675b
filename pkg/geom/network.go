package geom

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

// NetworkSpec describes where network nodes go.
type NetworkSpec struct {
	CX, CY float64
	Unit   float64 // pixels per offset unit
	Ring   float64 // radius for nodes without a fixed offset
	MinR   float64 // node radius at zero weight
	MaxR   float64 // node radius at the heaviest weight
	Bounds Rect    // node centers are kept inside, when non-empty
	Hover  string  // hovered node ID
	Phase  float64 // data-flow phase in [0, 100)
	// Rotation in degrees turns the ring of unpositioned nodes.
	Rotation float64
}

// NodeShape is the placement of one node.
type NodeShape struct {
	Index   int     `json:"index"`
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Center  Point   `json:"center"`
	R       float64 `json:"r"`
	Hovered bool    `json:"hovered,omitempty"`
	Related bool    `json:"related,omitempty"`
}

// EdgeShape is one drawable connection.
type EdgeShape struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Line        Segment `json:"line"`
	Strength    float64 `json:"strength"`
	Highlighted bool    `json:"highlighted,omitempty"`
	Pulse       Point   `json:"pulse"`
}

// Network places nodes and resolves edges. Nodes with an Offset sit at
// center + offset·Unit; the rest are spread on a ring of radius Ring. Edges
// referring to an unknown node are dropped, the rest keep their input order.
// Hovering a node highlights it, its incident edges and its neighbours; a
// hover ID naming no node is ignored.
func Network(n market.Network, spec NetworkSpec) ([]NodeShape, []EdgeShape) {
	if len(n.Nodes) == 0 {
		return nil, nil
	}

	free := lo.Filter(n.Nodes, func(node market.Node, _ int) bool { return node.Offset == nil })
	ring := Ring(len(free), spec.Rotation)
	maxW := lo.MaxBy(n.Nodes, func(a, b market.Node) bool { return a.Weight > b.Weight }).Weight

	known := lo.SliceToMap(n.Nodes, func(node market.Node) (string, bool) { return node.ID, true })
	hover := spec.Hover
	if !known[hover] {
		hover = ""
	}
	related := make(map[string]bool)
	if hover != "" {
		for _, e := range n.Edges {
			if !known[e.Source] || !known[e.Target] {
				continue
			}
			if e.Source == hover {
				related[e.Target] = true
			}
			if e.Target == hover {
				related[e.Source] = true
			}
		}
	}

	nodes := make([]NodeShape, len(n.Nodes))
	byID := make(map[string]Point, len(n.Nodes))
	k := 0
	for i, node := range n.Nodes {
		var c Point
		if node.Offset != nil {
			c = Point{X: spec.CX + node.Offset.DX*spec.Unit, Y: spec.CY + node.Offset.DY*spec.Unit}
		} else {
			c = Polar(spec.CX, spec.CY, spec.Ring, ring[k])
			k++
		}

		r := spec.MinR
		if maxW > 0 {
			r += math.Sqrt(Clamp(node.Weight/maxW, 0, 1)) * (spec.MaxR - spec.MinR)
		}
		if spec.Bounds.W > 0 && spec.Bounds.H > 0 {
			c = ClampPoint(c, spec.Bounds.Inset(r, r, r, r))
		}

		nodes[i] = NodeShape{
			Index:   i,
			ID:      node.ID,
			Label:   node.Label,
			Center:  c,
			R:       r,
			Hovered: hover != "" && node.ID == hover,
			Related: related[node.ID],
		}
		byID[node.ID] = c
	}

	phase := math.Mod(math.Mod(Finite(spec.Phase), 100)+100, 100) / 100
	edges := make([]EdgeShape, 0, len(n.Edges))
	for _, e := range n.Edges {
		from, ok := byID[e.Source]
		if !ok {
			continue
		}
		to, ok := byID[e.Target]
		if !ok {
			continue
		}
		line := Segment{From: from, To: to}
		edges = append(edges, EdgeShape{
			Source:      e.Source,
			Target:      e.Target,
			Line:        line,
			Strength:    e.Strength,
			Highlighted: hover != "" && (e.Source == hover || e.Target == hover),
			Pulse:       line.Lerp(phase),
		})
	}
	return nodes, edges
}
