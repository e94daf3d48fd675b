package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandleValid(t *testing.T) {
	tests := []struct {
		name string
		c    Candle
		want bool
	}{
		{"bullish", Candle{Open: 10, High: 12, Low: 9, Close: 11}, true},
		{"bearish", Candle{Open: 11, High: 11.5, Low: 9, Close: 10}, true},
		{"flat", Candle{Open: 10, High: 10, Low: 10, Close: 10}, true},
		{"high below close", Candle{Open: 10, High: 10.5, Low: 9, Close: 11}, false},
		{"low above open", Candle{Open: 10, High: 12, Low: 10.5, Close: 11}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	for _, r := range Ranges() {
		got, err := ParseRange(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRange(" all ")
	require.NoError(t, err)
	assert.Equal(t, RangeAll, got)

	_, err = ParseRange("5Y")
	assert.Error(t, err)
}

func TestRangeNextWraps(t *testing.T) {
	assert.Equal(t, Range1W, Range1D.Next())
	assert.Equal(t, Range1D, RangeAll.Next())
	assert.Equal(t, DefaultRange, Range("bogus").Next())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("CANDLE")
	require.NoError(t, err)
	assert.Equal(t, ModeCandle, m)
	assert.Equal(t, ModeLine, m.Toggle())

	_, err = ParseMode("area")
	assert.Error(t, err)
}

func TestPeriodFor(t *testing.T) {
	assert.Equal(t, 24, PeriodFor(Range1D).Points)
	assert.Equal(t, 365, PeriodFor(Range1Y).Points)
	assert.Equal(t, PeriodFor(RangeAll), PeriodFor(Range("nope")))
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	got := MovingAverage(values, 3)

	// Warm-up entries carry the raw value.
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 2.0, got[1])
	assert.InDelta(t, 2.0, got[2], 1e-9)
	assert.InDelta(t, 3.0, got[3], 1e-9)
	assert.InDelta(t, 5.0, got[5], 1e-9)

	short := MovingAverage([]float64{7, 8}, 20)
	assert.Equal(t, []float64{7, 8}, short)

	assert.Empty(t, MovingAverage(nil, 20))
}

func TestPredict(t *testing.T) {
	values := []float64{100, 100, 100, 100}
	got := Predict(values)
	require.Len(t, got, 4)
	assert.InDelta(t, 100.0, got[0], 1e-9)
	want := 100 * (1 + 0.15*2/4 + 0.05*math.Sin(0.6))
	assert.InDelta(t, want, got[2], 1e-9)
}

func TestWithOverlays(t *testing.T) {
	points := []Point{{Value: 1}, {Value: 2}, {Value: 3}}
	got := WithOverlays(points, 2)
	assert.InDelta(t, 1.5, got[1].MovingAverage, 1e-9)
	assert.NotZero(t, got[2].Prediction)
	assert.Zero(t, points[1].MovingAverage, "input must not be mutated")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{100, 80, 120, 110})
	assert.Equal(t, 80.0, s.Min)
	assert.Equal(t, 120.0, s.Max)
	assert.InDelta(t, 102.5, s.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.Change, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestNetworkNodeByID(t *testing.T) {
	n := Network{Nodes: []Node{{ID: "btc"}, {ID: "eth"}}}
	_, ok := n.NodeByID("eth")
	assert.True(t, ok)
	_, ok = n.NodeByID("doge")
	assert.False(t, ok)
}
