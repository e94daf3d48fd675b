// Package scene holds the vector primitives charts are drawn with.
//
// A [Scene] is a flat list of [Item] values in paint order plus the canvas
// size and an optional tooltip. Items carry geometry in canvas pixels and
// paint as either a literal color ("#00ff88") or a semantic token
// ("primary", "up", "grid") that a theme resolves at render time. Sinks in
// [github.com/matzehuels/cryptoviz/pkg/render/sink] turn scenes into SVG,
// PNG, PDF or JSON.
package scene

import (
	"math"
	"strconv"

	"github.com/matzehuels/cryptoviz/pkg/geom"
)

// Kind identifies a primitive.
type Kind string

const (
	KindCircle   Kind = "circle"
	KindLine     Kind = "line"
	KindRect     Kind = "rect"
	KindPath     Kind = "path"
	KindPolyline Kind = "polyline"
	KindText     Kind = "text"
	KindGroup    Kind = "group"
)

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Semantic paint tokens resolved by the theme.
const (
	PaintNone       = "none"
	PaintBackground = "background"
	PaintPrimary    = "primary"
	PaintMuted      = "muted"
	PaintAccent     = "accent"
	PaintGrid       = "grid"
	PaintUp         = "up"
	PaintDown       = "down"
	PaintText       = "text"
	PaintHighlight  = "highlight"
)

// SeriesPaint returns the token of the i-th categorical color.
func SeriesPaint(i int) string {
	return "series-" + strconv.Itoa(((i%8)+8)%8)
}

// Item is one drawable primitive. Which fields apply depends on Kind:
//
//   - circle: Center, R
//   - line: Line
//   - rect: Rect
//   - path: D, with Hull bounding the drawn shape
//   - polyline: Points
//   - text: Center (anchor point), Text, Size, Anchor
//   - group: Children, rotated by Rotate degrees about Center
type Item struct {
	Kind     Kind              `json:"kind"`
	ID       string            `json:"id,omitempty"`
	Class    string            `json:"class,omitempty"`
	Center   geom.Point        `json:"center,omitzero"`
	R        float64           `json:"r,omitempty"`
	Line     geom.Segment      `json:"line,omitzero"`
	Rect     geom.Rect         `json:"rect,omitzero"`
	D        string            `json:"d,omitempty"`
	Hull     []geom.Point      `json:"hull,omitempty"`
	Points   []geom.Point      `json:"points,omitempty"`
	Text     string            `json:"text,omitempty"`
	Size     float64           `json:"size,omitempty"`
	Anchor   string            `json:"anchor,omitempty"`
	Bold     bool              `json:"bold,omitempty"`
	Fill     string            `json:"fill,omitempty"`
	Stroke   string            `json:"stroke,omitempty"`
	Width    float64           `json:"stroke_width,omitempty"`
	Dash     string            `json:"dash,omitempty"`
	Opacity  float64           `json:"opacity,omitempty"` // 0 means opaque
	Glow     bool              `json:"glow,omitempty"`
	Rotate   float64           `json:"rotate,omitempty"`
	Children []Item            `json:"children,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

// Circle creates a circle.
func Circle(c geom.Point, r float64) Item {
	return Item{Kind: KindCircle, Center: c, R: math.Max(0, r)}
}

// Line creates a straight line.
func Line(s geom.Segment) Item { return Item{Kind: KindLine, Line: s, Fill: PaintNone} }

// Rect creates a rectangle.
func Rect(r geom.Rect) Item { return Item{Kind: KindRect, Rect: r} }

// Path creates a path. hull lists points whose bounding box contains the
// drawn shape.
func Path(d string, hull ...geom.Point) Item { return Item{Kind: KindPath, D: d, Hull: hull} }

// Polyline creates an open polyline.
func Polyline(pts []geom.Point) Item { return Item{Kind: KindPolyline, Points: pts, Fill: PaintNone} }

// Text creates a label anchored at p.
func Text(p geom.Point, s string, size float64) Item {
	return Item{Kind: KindText, Center: p, Text: s, Size: size, Anchor: AnchorMiddle, Fill: PaintText}
}

// Group wraps items.
func Group(items ...Item) Item { return Item{Kind: KindGroup, Children: items} }

// CircleHull returns the corners of the box around a circle, for paths
// drawn on it.
func CircleHull(cx, cy, r float64) []geom.Point {
	return []geom.Point{{X: cx - r, Y: cy - r}, {X: cx + r, Y: cy + r}}
}

func (it Item) WithID(id string) Item      { it.ID = id; return it }
func (it Item) WithClass(c string) Item    { it.Class = c; return it }
func (it Item) WithFill(p string) Item     { it.Fill = p; return it }
func (it Item) WithOpacity(o float64) Item { it.Opacity = o; return it }
func (it Item) WithDash(d string) Item     { it.Dash = d; return it }
func (it Item) WithAnchor(a string) Item   { it.Anchor = a; return it }
func (it Item) WithBold() Item             { it.Bold = true; return it }
func (it Item) WithGlow() Item             { it.Glow = true; return it }
func (it Item) WithStroke(p string, w float64) Item {
	it.Stroke, it.Width = p, w
	return it
}

// WithRotation turns a group by deg degrees about c.
func (it Item) WithRotation(deg float64, c geom.Point) Item {
	it.Rotate, it.Center = deg, c
	return it
}

// WithData attaches a data attribute, used by interactive sinks.
func (it Item) WithData(k, v string) Item {
	m := make(map[string]string, len(it.Data)+1)
	for key, val := range it.Data {
		m[key] = val
	}
	m[k] = v
	it.Data = m
	return it
}

// TooltipLine is one label/value row.
type TooltipLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Tooltip describes the hover card for the selected element.
type Tooltip struct {
	Title  string        `json:"title"`
	Lines  []TooltipLine `json:"lines,omitempty"`
	Anchor geom.Point    `json:"anchor"`
}

// Scene is a complete chart frame.
type Scene struct {
	Chart   string   `json:"chart"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Items   []Item   `json:"items"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
}

// New creates an empty scene.
func New(chart string, w, h float64) *Scene {
	return &Scene{Chart: chart, Width: w, Height: h}
}

// Add appends items in paint order.
func (s *Scene) Add(items ...Item) { s.Items = append(s.Items, items...) }

// Frame returns the canvas rectangle.
func (s *Scene) Frame() geom.Rect { return geom.Rect{W: s.Width, H: s.Height} }
