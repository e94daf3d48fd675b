package geom

import (
	"gonum.org/v1/gonum/floats"
)

// Range is a closed value interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Pad scales the bounds by the given factors (for example 0.98 and 1.02).
func (r Range) Pad(lo, hi float64) Range {
	return Range{Min: r.Min * lo, Max: r.Max * hi}
}

// ValueRange returns the smallest range covering every value of every
// series. Empty series are skipped; no values at all gives the zero Range.
func ValueRange(series ...[]float64) Range {
	var r Range
	seen := false
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		lo, hi := floats.Min(s), floats.Max(s)
		if !seen {
			r = Range{Min: lo, Max: hi}
			seen = true
			continue
		}
		r.Min = min(r.Min, lo)
		r.Max = max(r.Max, hi)
	}
	return r
}

// SeriesLayout maps series indices and values into a frame.
type SeriesLayout struct {
	Frame Rect
	Range Range
	N     int
}

// NewSeriesLayout creates a layout for n samples spanning r.
func NewSeriesLayout(frame Rect, n int, r Range) SeriesLayout {
	return SeriesLayout{Frame: frame, Range: r, N: n}
}

// X maps index i linearly across the frame using i/(N-1). A single sample
// sits on the left edge.
func (l SeriesLayout) X(i int) float64 {
	if l.N <= 1 {
		return l.Frame.X
	}
	return Finite(l.Frame.X + l.Frame.W*float64(i)/float64(l.N-1))
}

// Y maps v into the frame with larger values higher up. A flat range maps
// everything to the vertical middle.
func (l SeriesLayout) Y(v float64) float64 {
	span := l.Range.Span()
	if span == 0 {
		return l.Frame.CenterY()
	}
	return Finite(l.Frame.Y + l.Frame.H*(1-(v-l.Range.Min)/span))
}

// Point returns the position of sample i with value v.
func (l SeriesLayout) Point(i int, v float64) Point {
	return Point{X: l.X(i), Y: l.Y(v)}
}

// Points maps a whole series.
func (l SeriesLayout) Points(values []float64) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = l.Point(i, v)
	}
	return out
}

// Slot returns the horizontal space available per sample.
func (l SeriesLayout) Slot() float64 {
	if l.N <= 0 {
		return l.Frame.W
	}
	return l.Frame.W / float64(l.N)
}

// Level is a horizontal gridline.
type Level struct {
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// Levels returns k+1 evenly spaced gridlines from the bottom to the top of
// the frame.
func (l SeriesLayout) Levels(k int) []Level {
	if k <= 0 {
		return nil
	}
	out := make([]Level, k+1)
	for i := range out {
		t := float64(i) / float64(k)
		out[i] = Level{
			Y:     l.Frame.Y + (1-t)*l.Frame.H,
			Value: l.Range.Min + l.Range.Span()*t,
		}
	}
	return out
}

// Columns returns n evenly spaced vertical gridline x positions.
func (l SeriesLayout) Columns(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{l.Frame.X}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Frame.X + l.Frame.W*float64(i)/float64(n-1)
	}
	return out
}

// SparkWidth and SparkHeight are the default sparkline box.
const (
	SparkWidth  = 60.0
	SparkHeight = 20.0
)

// Sparkline fits values into a w×h box anchored at the origin.
func Sparkline(values []float64, w, h float64) []Point {
	l := NewSeriesLayout(Rect{W: w, H: h}, len(values), ValueRange(values))
	return l.Points(values)
}
