// Package geom implements the chart layout engines.
//
// Every engine is a pure function from data, canvas geometry and the current
// animation angle to pixel coordinates. Engines keep no state between calls;
// a chart recomputes its whole layout whenever the viewport, hover selection
// or animation clock changes.
//
// # Engines
//
//   - [Radial]: items evenly spaced around a circle, distance scaled by magnitude
//   - [Arcs]: contiguous angular segments proportional to weight
//   - [SeriesLayout]: index-to-x and value-to-y mapping for line and area charts
//   - [Candles] and [VolumeBars]: OHLCV bars on top of a SeriesLayout
//   - [Network]: fixed or circle-placed nodes joined by edges
//   - [Sparkline]: a series squeezed into a small fixed box
//
// # Degenerate input
//
// Engines never return errors and never emit NaN or infinite coordinates.
// Empty input yields empty output, a zero total weight yields zero-sweep arcs
// at the origin, a single series point sits on the left edge, and a flat value
// range maps every value to the vertical middle of the frame.
//
// Angles are radians unless a field or parameter name says degrees. The SVG
// y axis points down, so positive angles turn clockwise on screen.
package geom
