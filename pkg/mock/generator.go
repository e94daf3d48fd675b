// Package mock produces deterministic dashboard data.
//
// A [Generator] wraps a seeded PCG source: the same seed and parameters give
// the same series and candles on every run. Fixtures in fixtures.go hold the
// hard-coded networks, allocations and asset lists shown by the charts.
package mock

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

// DefaultSeed is used when no seed is configured.
const DefaultSeed = uint64(42)

// Anchor is the date the generated series end on.
var Anchor = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

const (
	labelLayout = "Jan 2"
	baseVolume  = 1_000_000.0
	minValue    = 0.1
)

// Generator creates series and candles from a seeded source.
type Generator struct {
	rng    *rand.Rand
	anchor time.Time
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:    NewRand(seed),
		anchor: Anchor,
	}
}

// NewRand returns a PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Rand exposes the underlying source.
func (g *Generator) Rand() *rand.Rand { return g.rng }

func (g *Generator) label(i, points int) string {
	return g.anchor.AddDate(0, 0, i-points).Format(labelLayout)
}

// Series generates a random walk for p: each step adds a uniform change of
// ±volatility/2 plus trend·i/points, never dropping below 0.1.
func (g *Generator) Series(p market.Period) []market.Point {
	out := make([]market.Point, p.Points)
	v := p.Base
	for i := range out {
		change := (g.rng.Float64() - 0.5) * p.Volatility
		trend := p.Trend * float64(i) / float64(p.Points)
		v = math.Max(minValue, v+change+trend)
		out[i] = market.Point{Value: v, Label: g.label(i, p.Points)}
	}
	return out
}

// Candles generates OHLCV bars for p. Every candle satisfies
// Low <= min(Open, Close) and High >= max(Open, Close).
func (g *Generator) Candles(p market.Period) []market.Candle {
	out := make([]market.Candle, p.Points)
	v := p.Base
	for i := range out {
		open := v
		trend := p.Trend * float64(i) / float64(p.Points)
		daily := p.Volatility * (0.5 + g.rng.Float64()*0.5)

		body := g.rng.Float64() * daily * 0.6
		wick := g.rng.Float64() * daily * 0.4

		var c market.Candle
		if g.rng.Float64() > 0.5 {
			c.Close = open + body
			c.High = math.Max(open, c.Close) + wick
			c.Low = math.Min(open, c.Close) - wick*0.5
		} else {
			c.Close = math.Max(minValue, open-body)
			c.High = math.Max(open, c.Close) + wick*0.5
			c.Low = math.Min(open, c.Close) - wick
		}
		c.Open = open
		c.Low = math.Max(0, c.Low)

		move := math.Abs(c.Close - c.Open)
		c.Volume = baseVolume * (1 + move/open*10) * (0.5 + g.rng.Float64())
		c.Label = g.label(i, p.Points)

		out[i] = c
		v = c.Close + trend/float64(p.Points)
	}
	return out
}

// Portfolio generates the line series for r with overlays filled in.
func (g *Generator) Portfolio(r market.Range) []market.Point {
	return market.WithOverlays(g.Series(market.PeriodFor(r)), market.DefaultMAPeriod)
}

// OHLC generates the candle series for r.
func (g *Generator) OHLC(r market.Range) []market.Candle {
	return g.Candles(market.PeriodFor(r))
}

