package geom

import "math"

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a straight line between two points.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Lerp returns the point at fraction t along the segment.
func (s Segment) Lerp(t float64) Point {
	t = Clamp(t, 0, 1)
	return Point{
		X: s.From.X + (s.To.X-s.From.X)*t,
		Y: s.From.Y + (s.To.Y-s.From.Y)*t,
	}
}

// Rect is an axis-aligned box.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Inset shrinks r by the given paddings. Width and height never go negative.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	return Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: math.Max(0, r.W-left-right),
		H: math.Max(0, r.H-top-bottom),
	}
}

// Polar converts polar coordinates around (cx, cy) to a point.
func Polar(cx, cy, r, angle float64) Point {
	return Point{
		X: Finite(cx + math.Cos(angle)*r),
		Y: Finite(cy + math.Sin(angle)*r),
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite replaces NaN and infinities with zero.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ClampPoint pulls p inside r.
func ClampPoint(p Point, r Rect) Point {
	return Point{X: Clamp(p.X, r.X, r.Right()), Y: Clamp(p.Y, r.Y, r.Bottom())}
}
