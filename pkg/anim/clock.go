// Package anim drives chart animation.
//
// A [Clock] is a plain value: ticking it returns a new clock with the
// rotation advanced by a fixed step and wrapped into [0, 360). Layout
// functions receive the clock value as a parameter, so the same clock always
// produces the same frame.
//
// A [Driver] owns a ticker that advances a clock and hands each new value to
// a callback. Stopping the driver, or cancelling its context, ends the
// ticker; once Stop returns no further callback runs.
package anim

import (
	"math"
	"time"
)

// Counter is a value that advances by Step and wraps modulo Mod. A Mod of
// zero disables wrapping.
type Counter struct {
	Value float64 `json:"value"`
	Step  float64 `json:"step"`
	Mod   float64 `json:"mod"`
}

// Tick returns the counter advanced by one step.
func (c Counter) Tick() Counter {
	c.Value = Wrap(c.Value+c.Step, c.Mod)
	return c
}

// Wrap reduces v into [0, mod). A non-positive mod returns v unchanged.
func Wrap(v, mod float64) float64 {
	if mod <= 0 {
		return v
	}
	v = math.Mod(v, mod)
	if v < 0 {
		v += mod
	}
	// -tiny + mod can round to mod itself.
	if v >= mod {
		v = 0
	}
	return v
}

// Clock is the animation state of one chart.
type Clock struct {
	Rotation Counter `json:"rotation"` // degrees, wraps at 360
	Phase    Counter `json:"phase"`    // scan line or data flow accumulator
	Ticks    uint64  `json:"ticks"`
}

// NewClock returns a clock rotating step degrees per tick.
func NewClock(step float64) Clock {
	return Clock{Rotation: Counter{Step: step, Mod: 360}}
}

// WithPhase adds a secondary accumulator.
func (c Clock) WithPhase(step, mod float64) Clock {
	c.Phase = Counter{Value: c.Phase.Value, Step: step, Mod: mod}
	return c
}

// At returns the clock with the rotation set to angle degrees.
func (c Clock) At(angle float64) Clock {
	c.Rotation.Value = Wrap(angle, c.Rotation.Mod)
	return c
}

// AtPhase returns the clock with the phase set to v.
func (c Clock) AtPhase(v float64) Clock {
	c.Phase.Value = Wrap(v, c.Phase.Mod)
	return c
}

// Tick advances the clock by one step.
func (c Clock) Tick() Clock {
	c.Rotation = c.Rotation.Tick()
	c.Phase = c.Phase.Tick()
	c.Ticks++
	return c
}

// Angle returns the current rotation in degrees.
func (c Clock) Angle() float64 { return c.Rotation.Value }

// Static reports whether ticking changes nothing visible.
func (c Clock) Static() bool { return c.Rotation.Step == 0 && c.Phase.Step == 0 }

// Preset pairs a tick interval with the clock it advances.
type Preset struct {
	Interval time.Duration
	Clock    Clock
}

// Animation presets.
var (
	// Orbit turns 0.5° every 100ms.
	Orbit = Preset{Interval: 100 * time.Millisecond, Clock: NewClock(0.5)}
	// Scanner turns 0.4° every 50ms with a 2° scan line.
	Scanner = Preset{Interval: 50 * time.Millisecond, Clock: NewClock(0.4).WithPhase(2, 360)}
	// Flow turns 0.3° every 50ms while pulses travel the edges.
	Flow = Preset{Interval: 50 * time.Millisecond, Clock: NewClock(0.3).WithPhase(2, 100)}
	// Ring turns 0.2° every 50ms.
	Ring = Preset{Interval: 50 * time.Millisecond, Clock: NewClock(0.2)}
	// Drift turns 0.1° every 100ms.
	Drift = Preset{Interval: 100 * time.Millisecond, Clock: NewClock(0.1)}
	// Sweep moves a scan line across 0..100 every 50ms without rotating.
	Sweep = Preset{Interval: 50 * time.Millisecond, Clock: NewClock(0).WithPhase(1, 100)}
	// Still never changes.
	Still = Preset{Interval: time.Second, Clock: NewClock(0)}
)
