package geom

import (
	"math"

	"github.com/samber/lo"
)

// Scale maps a normalized magnitude in [0, 1] to a radial fraction.
type Scale int

const (
	Linear Scale = iota
	Sqrt
)

func (s Scale) apply(t float64) float64 {
	t = Clamp(t, 0, 1)
	if s == Sqrt {
		return math.Sqrt(t)
	}
	return t
}

// RadialSpec describes the circle items are placed on.
type RadialSpec struct {
	CX, CY   float64
	Inner    float64 // radius of a zero magnitude
	Outer    float64 // radius of the largest magnitude
	Rotation float64 // degrees, added to every angle
	Scale    Scale
	Max      float64 // magnitude mapped to Outer; 0 uses the largest value
}

// RadialPoint is the placement of one item.
type RadialPoint struct {
	Index  int     `json:"index"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Point
}

// Radial places item i at angle 2πi/N plus the rotation, at a distance
// between Inner and Outer scaled by its magnitude. Output order matches input
// order. N=0 yields nil and N=1 puts the single item at angle 0.
func Radial(values []float64, spec RadialSpec) []RadialPoint {
	n := len(values)
	if n == 0 {
		return nil
	}

	maxV := spec.Max
	if maxV <= 0 {
		maxV = lo.Max(values)
	}

	angles := Ring(n, spec.Rotation)
	out := make([]RadialPoint, n)
	for i, v := range values {
		t := 0.0
		if maxV > 0 {
			t = v / maxV
		}
		r := spec.Inner + spec.Scale.apply(Finite(t))*(spec.Outer-spec.Inner)
		out[i] = RadialPoint{
			Index:  i,
			Angle:  angles[i],
			Radius: r,
			Point:  Polar(spec.CX, spec.CY, r, angles[i]),
		}
	}
	return out
}

// Ring returns n evenly spaced angles starting at rotation degrees.
func Ring(n int, rotation float64) []float64 {
	if n <= 0 {
		return nil
	}
	offset := Radians(rotation)
	step := 2 * math.Pi / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)*step + offset
	}
	return out
}

// Spokes returns n radial segments between radii from and to.
func Spokes(cx, cy, from, to float64, n int, rotation float64) []Segment {
	angles := Ring(n, rotation)
	out := make([]Segment, len(angles))
	for i, a := range angles {
		out[i] = Segment{From: Polar(cx, cy, from, a), To: Polar(cx, cy, to, a)}
	}
	return out
}
