// Package market defines the data model shared by the chart layout engines.
//
// Values in this package are plain data: series points, OHLCV candles,
// network nodes and edges, allocation slices, and the two enums that select
// which data a chart shows (time range and chart mode). Generators in
// [github.com/matzehuels/cryptoviz/pkg/mock] produce them; layout engines in
// [github.com/matzehuels/cryptoviz/pkg/geom] consume them.
//
// Series and candle slices are ordered: insertion order is chronological.
// They are treated as immutable once generated and are regenerated wholesale
// when the selected time range changes.
package market

import "math"

// Point is one sample of a value series.
type Point struct {
	Value         float64 `json:"value"`
	Label         string  `json:"label"`
	MovingAverage float64 `json:"moving_average,omitempty"`
	Prediction    float64 `json:"prediction,omitempty"`
}

// Candle is one OHLCV bar.
type Candle struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
	Label  string  `json:"label"`
}

// Valid reports whether the candle satisfies Low <= min(Open, Close) and
// High >= max(Open, Close).
func (c Candle) Valid() bool {
	return c.Low <= math.Min(c.Open, c.Close) && c.High >= math.Max(c.Open, c.Close)
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Offset is a fixed node position relative to the canvas center, in
// chart-specific units.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Node is a vertex of a network chart. IDs are unique within one network.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category,omitempty"`
	Level    int     `json:"level,omitempty"`
	Color    string  `json:"color,omitempty"`
	Offset   *Offset `json:"offset,omitempty"`
}

// Edge connects two nodes by ID. Edges whose endpoints are missing are
// dropped by the layout.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Flow     float64 `json:"flow,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// Network groups nodes and edges.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given ID.
func (n Network) NodeByID(id string) (Node, bool) {
	for _, node := range n.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// Slice is one allocation entry. Connections hold indices of related slices.
type Slice struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Connections []int   `json:"connections,omitempty"`
}

// Asset is a ranked market entry with a short price history.
type Asset struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	Score   float64   `json:"score"`
	Change  float64   `json:"change"`
	Volume  string    `json:"volume"`
	History []float64 `json:"history"`
}

// Values extracts the Value field of every point.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
