package market

import (
	"fmt"
	"strings"
)

// Range selects the time window of a series chart.
type Range string

const (
	Range1D  Range = "1D"
	Range1W  Range = "1W"
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	Range1Y  Range = "1Y"
	RangeAll Range = "ALL"
)

// DefaultRange is selected when a view is first created.
const DefaultRange = RangeAll

// Ranges returns every range in display order.
func Ranges() []Range {
	return []Range{Range1D, Range1W, Range1M, Range3M, Range1Y, RangeAll}
}

// ParseRange parses a range name case-insensitively.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := periods[r]; !ok {
		return "", fmt.Errorf("unknown range %q (must be one of 1D, 1W, 1M, 3M, 1Y, ALL)", s)
	}
	return r, nil
}

// Next returns the range after r, wrapping around.
func (r Range) Next() Range {
	all := Ranges()
	for i, x := range all {
		if x == r {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultRange
}

// Mode selects how a series chart draws its data.
type Mode string

const (
	ModeLine   Mode = "line"
	ModeCandle Mode = "candle"
)

// ParseMode parses a chart mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLine, ModeCandle:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (must be line or candle)", s)
}

// Toggle switches between line and candle mode.
func (m Mode) Toggle() Mode {
	if m == ModeCandle {
		return ModeLine
	}
	return ModeCandle
}

// Period holds the generator parameters for one time range.
type Period struct {
	Base       float64 `json:"base"`
	Volatility float64 `json:"volatility"`
	Trend      float64 `json:"trend"`
	Points     int     `json:"points"`
}

var periods = map[Range]Period{
	Range1D:  {Base: 10500, Volatility: 200, Trend: 100, Points: 24},
	Range1W:  {Base: 10200, Volatility: 300, Trend: 300, Points: 7},
	Range1M:  {Base: 9800, Volatility: 400, Trend: 700, Points: 30},
	Range3M:  {Base: 8500, Volatility: 500, Trend: 2000, Points: 90},
	Range1Y:  {Base: 6000, Volatility: 800, Trend: 4500, Points: 365},
	RangeAll: {Base: 5000, Volatility: 600, Trend: 5500, Points: 50},
}

// PeriodFor returns the generator parameters of r, falling back to
// DefaultRange for unknown values.
func PeriodFor(r Range) Period {
	if p, ok := periods[r]; ok {
		return p
	}
	return periods[DefaultRange]
}
