package market

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultMAPeriod is the moving-average window of the insight chart.
const DefaultMAPeriod = 20

// MovingAverage returns the simple moving average of values over period.
// Entries before the window fills carry the raw value.
func MovingAverage(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if period < 2 || len(values) < period {
		return out
	}
	sma := talib.Sma(values, period)
	for i := period - 1; i < len(values); i++ {
		out[i] = sma[i]
	}
	return out
}

// Predict returns the forecast overlay: each value scaled by
// 1 + 0.15·i/N + 0.05·sin(0.3·i).
func Predict(values []float64) []float64 {
	out := make([]float64, len(values))
	n := float64(len(values))
	for i, v := range values {
		boost := 1 + 0.15*float64(i)/n + 0.05*math.Sin(0.3*float64(i))
		out[i] = v * boost
	}
	return out
}

// WithOverlays fills the MovingAverage and Prediction fields of points.
func WithOverlays(points []Point, period int) []Point {
	values := Values(points)
	ma := MovingAverage(values, period)
	pred := Predict(values)

	out := make([]Point, len(points))
	for i, p := range points {
		p.MovingAverage = ma[i]
		p.Prediction = pred[i]
		out[i] = p
	}
	return out
}

// Summary describes a value series.
type Summary struct {
	First, Last float64
	Min, Max    float64
	Mean        float64
	Change      float64 // percent change from first to last
}

// Summarize computes a Summary. An empty series yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{
		First: values[0],
		Last:  values[len(values)-1],
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  stat.Mean(values, nil),
	}
	if s.First != 0 {
		s.Change = (s.Last - s.First) / s.First * 100
	}
	return s
}
