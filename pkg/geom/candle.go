package geom

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

const (
	// MinBodyHeight keeps flat candles visible.
	MinBodyHeight = 2.0

	MinCandleWidth = 4.0
	MaxCandleWidth = 30.0

	// CandleFill is the share of a slot taken by a candle body.
	CandleFill = 0.7
)

// CandleShape is the geometry of one candle.
type CandleShape struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"` // center line
	Body    Rect    `json:"body"`
	Wick    Segment `json:"wick"`
	WickW   float64 `json:"wick_width"`
	Bullish bool    `json:"bullish"`
}

// CandleWidth returns the body width for the layout: 70% of a slot clamped
// to [4, 30] pixels.
func CandleWidth(l SeriesLayout) float64 {
	return Clamp(l.Slot()*CandleFill, MinCandleWidth, MaxCandleWidth)
}

// Candles lays out OHLC bars. The body spans min(openY, closeY) with height
// |closeY − openY|, never less than MinBodyHeight; the wick runs from the
// high to the low.
func Candles(l SeriesLayout, candles []market.Candle) []CandleShape {
	if len(candles) == 0 {
		return nil
	}
	w := CandleWidth(l)
	wickW := math.Max(1, w*0.15)

	out := make([]CandleShape, len(candles))
	for i, c := range candles {
		x := l.X(i)
		openY, closeY := l.Y(c.Open), l.Y(c.Close)
		out[i] = CandleShape{
			Index: i,
			X:     x,
			Body: Rect{
				X: x - w/2,
				Y: math.Min(openY, closeY),
				W: w,
				H: math.Max(MinBodyHeight, math.Abs(closeY-openY)),
			},
			Wick: Segment{
				From: Point{X: x, Y: l.Y(c.High)},
				To:   Point{X: x, Y: l.Y(c.Low)},
			},
			WickW:   wickW,
			Bullish: c.Bullish(),
		}
	}
	return out
}

// CandleRange returns the range covering every high and low.
func CandleRange(candles []market.Candle) Range {
	lows := lo.Map(candles, func(c market.Candle, _ int) float64 { return c.Low })
	highs := lo.Map(candles, func(c market.Candle, _ int) float64 { return c.High })
	return ValueRange(lows, highs)
}

const (
	// VolumeBand is the height reserved under the price panel.
	VolumeBand = 60.0
	// VolumeGap is the part of the band kept free above the tallest bar.
	VolumeGap = 20.0
)

// VolumeBar is one bar of the volume panel.
type VolumeBar struct {
	Index   int     `json:"index"`
	Rect    Rect    `json:"rect"`
	Bullish bool    `json:"bullish"`
	Volume  float64 `json:"volume"`
}

// VolumeBars scales each volume by volume/maxVolume into band, bars growing
// up from the bottom edge. A zero maximum yields zero-height bars.
func VolumeBars(l SeriesLayout, candles []market.Candle, band Rect) []VolumeBar {
	if len(candles) == 0 {
		return nil
	}
	maxVol := lo.MaxBy(candles, func(a, b market.Candle) bool { return a.Volume > b.Volume }).Volume
	w := CandleWidth(l)

	out := make([]VolumeBar, len(candles))
	for i, c := range candles {
		h := 0.0
		if maxVol > 0 {
			h = Clamp(c.Volume/maxVol, 0, 1) * band.H
		}
		x := l.X(i)
		out[i] = VolumeBar{
			Index:   i,
			Rect:    Rect{X: x - w/2, Y: band.Bottom() - h, W: w, H: h},
			Bullish: c.Bullish(),
			Volume:  c.Volume,
		}
	}
	return out
}
