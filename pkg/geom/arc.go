package geom

import (
	"math"
	"math/rand/v2"

	"github.com/samber/lo"
)

// weight is an arc's share: non-finite and negative weights count as zero.
func weight(w float64) float64 { return math.Max(0, Finite(w)) }

// Top is the 12 o'clock angle, the usual origin of arc layouts.
const Top = -math.Pi / 2

const fullTurn = 2 * math.Pi

// ArcSpec describes the annulus arcs are cut from.
type ArcSpec struct {
	CX, CY       float64
	Inner, Outer float64
	Start        float64 // origin angle; use Top for 12 o'clock
}

// Arc is one annular sector.
type Arc struct {
	Index    int     `json:"index"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Sweep    float64 `json:"sweep"`
	LargeArc bool    `json:"large_arc"`
	Path     string  `json:"path"`
}

// Mid returns the bisecting angle of the arc.
func (a Arc) Mid() float64 { return a.Start + a.Sweep/2 }

// Arcs lays out contiguous sectors with sweep 2π·w/T, starting at spec.Start
// and proceeding monotonically. Negative weights count as zero. When the total
// T is zero every arc has zero sweep at the origin and an empty path.
func Arcs(weights []float64, spec ArcSpec) []Arc {
	if len(weights) == 0 {
		return nil
	}

	total := lo.SumBy(weights, weight)

	out := make([]Arc, len(weights))
	cum := 0.0
	start := spec.Start
	for i, w := range weights {
		end := spec.Start
		if total > 0 {
			cum += weight(w)
			end = spec.Start + fullTurn*cum/total
		}
		sweep := end - start
		out[i] = Arc{
			Index:    i,
			Start:    start,
			End:      end,
			Sweep:    sweep,
			LargeArc: sweep > math.Pi,
			Path:     SectorPath(spec.CX, spec.CY, spec.Inner, spec.Outer, start, end),
		}
		start = end
	}
	return out
}

// SectorPath returns the path of the annular sector between two angles. An
// inner radius of zero draws a pie wedge. A full turn is split into two half
// arcs since a single SVG arc cannot start and end at the same point.
func SectorPath(cx, cy, inner, outer, start, end float64) string {
	sweep := end - start
	if sweep <= 0 || outer <= 0 {
		return ""
	}
	if sweep >= fullTurn-1e-9 {
		return ringPath(cx, cy, inner, outer, start)
	}

	large := sweep > math.Pi
	var p PathBuilder
	if inner <= 0 {
		p.MoveTo(Point{X: cx, Y: cy}).
			LineTo(Polar(cx, cy, outer, start)).
			ArcTo(outer, large, true, Polar(cx, cy, outer, end)).
			Close()
		return p.String()
	}
	p.MoveTo(Polar(cx, cy, inner, start)).
		LineTo(Polar(cx, cy, outer, start)).
		ArcTo(outer, large, true, Polar(cx, cy, outer, end)).
		LineTo(Polar(cx, cy, inner, end)).
		ArcTo(inner, large, false, Polar(cx, cy, inner, start)).
		Close()
	return p.String()
}

func ringPath(cx, cy, inner, outer, start float64) string {
	var p PathBuilder
	half := start + math.Pi
	p.MoveTo(Polar(cx, cy, outer, start)).
		ArcTo(outer, true, true, Polar(cx, cy, outer, half)).
		ArcTo(outer, true, true, Polar(cx, cy, outer, start)).
		Close()
	if inner > 0 {
		p.MoveTo(Polar(cx, cy, inner, start)).
			ArcTo(inner, true, false, Polar(cx, cy, inner, half)).
			ArcTo(inner, true, false, Polar(cx, cy, inner, start)).
			Close()
	}
	return p.String()
}

// SpikeSpec configures the decorative radial ticks drawn outside an arc.
type SpikeSpec struct {
	From     float64 // radius where every tick starts
	MinLen   float64 // shortest tick
	MaxLen   float64 // longest tick
	Density  float64 // ticks per radian
	MinCount int
}

// Spikes returns max(MinCount, floor(sweep·Density)) ticks spread evenly
// across the arc, with lengths drawn from rng. A nil rng gives every tick
// MinLen. Zero-sweep arcs have no ticks.
func Spikes(a Arc, cx, cy float64, spec SpikeSpec, rng *rand.Rand) []Segment {
	if a.Sweep <= 0 {
		return nil
	}
	count := max(spec.MinCount, int(math.Floor(a.Sweep*spec.Density)))
	if count <= 0 {
		return nil
	}

	out := make([]Segment, count)
	for i := range out {
		t := 0.5
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		angle := a.Start + a.Sweep*t
		length := spec.MinLen
		if rng != nil {
			length += rng.Float64() * (spec.MaxLen - spec.MinLen)
		}
		out[i] = Segment{
			From: Polar(cx, cy, spec.From, angle),
			To:   Polar(cx, cy, spec.From+length, angle),
		}
	}
	return out
}
