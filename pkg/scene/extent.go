package scene

import (
	"math"

	"github.com/matzehuels/cryptoviz/pkg/geom"
)

// Average glyph width as a share of the font size.
const charWidth = 0.6

// TextWidth estimates the rendered width of s at the given size.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * charWidth
}

// FitText moves a label so its estimated box lies inside frame. The anchor
// is kept; only the position changes.
func FitText(it Item, frame geom.Rect) Item {
	if it.Kind != KindText {
		return it
	}
	w := TextWidth(it.Text, it.Size)
	var left float64
	switch it.Anchor {
	case AnchorStart:
		left = 0
	case AnchorEnd:
		left = w
	default:
		left = w / 2
	}
	right := w - left
	x := geom.Clamp(it.Center.X, frame.X+left, math.Max(frame.X+left, frame.Right()-right))
	y := geom.Clamp(it.Center.Y, frame.Y+it.Size, math.Max(frame.Y+it.Size, frame.Bottom()))
	it.Center = geom.Point{X: x, Y: y}
	return it
}

// box accumulates a bounding box.
type box struct {
	r   geom.Rect
	set bool
}

func (b *box) add(p geom.Point) {
	if !b.set {
		b.r = geom.Rect{X: p.X, Y: p.Y}
		b.set = true
		return
	}
	x0, y0 := math.Min(b.r.X, p.X), math.Min(b.r.Y, p.Y)
	x1, y1 := math.Max(b.r.Right(), p.X), math.Max(b.r.Bottom(), p.Y)
	b.r = geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Extent returns the bounding box of every item, with group rotations
// applied. The second result is false for an empty scene.
func (s *Scene) Extent() (geom.Rect, bool) {
	var b box
	for _, it := range s.Items {
		visit(it, identity, b.add)
	}
	return b.r, b.set
}

// Finite reports whether every coordinate in the scene is a finite number.
func (s *Scene) Finite() bool {
	ok := true
	check := func(p geom.Point) {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			ok = false
		}
	}
	for _, it := range s.Items {
		visit(it, identity, check)
		if math.IsNaN(it.R) || math.IsNaN(it.Opacity) || math.IsNaN(it.Size) {
			ok = false
		}
	}
	return ok
}

type transform func(geom.Point) geom.Point

func identity(p geom.Point) geom.Point { return p }

func rotation(deg float64, c geom.Point) transform {
	a := geom.Radians(deg)
	sin, cos := math.Sin(a), math.Cos(a)
	return func(p geom.Point) geom.Point {
		dx, dy := p.X-c.X, p.Y-c.Y
		return geom.Point{X: c.X + dx*cos - dy*sin, Y: c.Y + dx*sin + dy*cos}
	}
}

func visit(it Item, t transform, emit func(geom.Point)) {
	switch it.Kind {
	case KindCircle:
		emit(t(geom.Point{X: it.Center.X - it.R, Y: it.Center.Y}))
		emit(t(geom.Point{X: it.Center.X + it.R, Y: it.Center.Y}))
		emit(t(geom.Point{X: it.Center.X, Y: it.Center.Y - it.R}))
		emit(t(geom.Point{X: it.Center.X, Y: it.Center.Y + it.R}))
	case KindLine:
		emit(t(it.Line.From))
		emit(t(it.Line.To))
	case KindRect:
		emit(t(geom.Point{X: it.Rect.X, Y: it.Rect.Y}))
		emit(t(geom.Point{X: it.Rect.Right(), Y: it.Rect.Bottom()}))
	case KindPath:
		for _, p := range it.Hull {
			emit(t(p))
		}
	case KindPolyline:
		for _, p := range it.Points {
			emit(t(p))
		}
	case KindText:
		w := TextWidth(it.Text, it.Size)
		x := it.Center.X
		switch it.Anchor {
		case AnchorMiddle, "":
			x -= w / 2
		case AnchorEnd:
			x -= w
		}
		emit(t(geom.Point{X: x, Y: it.Center.Y - it.Size}))
		emit(t(geom.Point{X: x + w, Y: it.Center.Y}))
	case KindGroup:
		inner := t
		if it.Rotate != 0 {
			rot := rotation(it.Rotate, it.Center)
			inner = func(p geom.Point) geom.Point { return t(rot(p)) }
		}
		for _, c := range it.Children {
			visit(c, inner, emit)
		}
	}
}
