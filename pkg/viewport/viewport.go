// Package viewport turns container sizes into chart dimensions.
//
// [Bounds] clamps a reported container size to the range a chart supports.
// [Observer] tracks the latest size and notifies listeners only when the
// clamped dimensions actually change. Resizes reported while listeners run
// are coalesced and applied after they return, so a listener that causes a
// resize never re-enters the observer.
package viewport

import (
	"math"
	"sync"
)

// Size is a width and height in pixels.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Empty reports whether either side is not positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Min returns the shorter side.
func (s Size) Min() float64 { return math.Min(s.W, s.H) }

// Bounds describes how a container size maps to chart dimensions.
//
// The width is the container width minus Padding, clamped to [MinW, MaxW].
// When Square is set the height equals the width. Otherwise the height is
// Aspect·width when Aspect is positive, else the container height minus
// Padding; either way it is clamped to [MinH, MaxH]. A zero max means no
// upper limit.
type Bounds struct {
	MinW, MaxW float64
	MinH, MaxH float64
	Aspect     float64
	Square     bool
	Padding    float64
	Fallback   Size // used when the container reports nothing
}

// Clamp computes chart dimensions for a container of the given size.
func (b Bounds) Clamp(container Size) Size {
	if container.Empty() && !b.Fallback.Empty() {
		return b.Fallback
	}

	w := clamp(container.W-b.Padding, b.MinW, b.MaxW)
	if b.Square {
		return Size{W: w, H: w}
	}

	var h float64
	if b.Aspect > 0 {
		h = (container.W - b.Padding) * b.Aspect
	} else {
		h = container.H - b.Padding
	}
	return Size{W: w, H: clamp(h, b.MinH, b.MaxH)}
}

// Floor raises an explicit size to the bounds' minimums. Maximums do not
// apply: a caller may ask for a larger chart than any container yields.
func (b Bounds) Floor(size Size) Size {
	return Size{W: math.Max(size.W, b.MinW), H: math.Max(size.H, b.MinH)}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Listener receives new chart dimensions.
type Listener func(Size)

// Observer tracks container resizes for one chart.
type Observer struct {
	bounds Bounds

	mu        sync.Mutex
	current   Size
	pending   *Size
	notifying bool
	listeners []Listener
}

// NewObserver creates an observer. The initial dimensions are the bounds
// applied to an empty container.
func NewObserver(b Bounds) *Observer {
	return &Observer{bounds: b, current: b.Clamp(Size{})}
}

// NewObserverAt creates an observer whose current dimensions are pinned
// to size, raised to the minimums, until the first resize that clamps to
// something else. An empty size behaves like NewObserver.
func NewObserverAt(b Bounds, size Size) *Observer {
	if size.Empty() {
		return NewObserver(b)
	}
	return &Observer{bounds: b, current: b.Floor(size)}
}

// Size returns the current chart dimensions.
func (o *Observer) Size() Size {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Bounds returns the observer's bounds.
func (o *Observer) Bounds() Bounds { return o.bounds }

// Subscribe registers a listener.
func (o *Observer) Subscribe(l Listener) {
	o.mu.Lock()
	o.listeners = append(o.listeners, l)
	o.mu.Unlock()
}

// Resize reports a new container size. It returns true if the chart
// dimensions changed. A call made while listeners are being notified only
// records the size; the notifying call applies it once they return.
func (o *Observer) Resize(container Size) bool {
	o.mu.Lock()
	if o.notifying {
		c := container
		o.pending = &c
		o.mu.Unlock()
		return false
	}

	changed := false
	for {
		next := o.bounds.Clamp(container)
		if next == o.current {
			break
		}
		o.current = next
		changed = true
		o.notifying = true
		listeners := append([]Listener(nil), o.listeners...)
		o.mu.Unlock()

		for _, l := range listeners {
			l(next)
		}

		o.mu.Lock()
		o.notifying = false
		if o.pending == nil {
			break
		}
		container = *o.pending
		o.pending = nil
	}
	o.mu.Unlock()
	return changed
}
