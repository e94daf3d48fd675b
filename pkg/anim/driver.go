package anim

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Err after an explicit Stop.
var ErrStopped = errors.New("animation stopped")

// TickFunc receives each new clock value. Returning an error stops the
// driver; the error is reported by Err.
type TickFunc func(Clock) error

// Driver advances a Clock on a fixed interval.
type Driver struct {
	interval time.Duration
	onTick   TickFunc

	mu      sync.Mutex
	clock   Clock
	cancel  context.CancelFunc
	stopped chan struct{}
	err     error
}

// NewDriver creates a driver that starts from c. It does nothing until
// Start is called.
func NewDriver(c Clock, interval time.Duration, onTick TickFunc) *Driver {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Driver{interval: interval, onTick: onTick, clock: c}
}

// FromPreset creates a driver from a preset.
func FromPreset(p Preset, onTick TickFunc) *Driver {
	return NewDriver(p.Clock, p.Interval, onTick)
}

// Start launches the ticker goroutine. It stops when ctx is cancelled, Stop
// is called, or the callback fails. Starting a running driver is a no-op.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.stopped = make(chan struct{})
	go d.run(runCtx, d.stopped)
}

func (d *Driver) run(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.setErr(ctx.Err())
			return
		case <-ticker.C:
			// A tick and a cancellation can be ready together.
			if ctx.Err() != nil {
				d.setErr(ctx.Err())
				return
			}
			d.mu.Lock()
			d.clock = d.clock.Tick()
			c := d.clock
			d.mu.Unlock()

			if d.onTick == nil {
				continue
			}
			if err := d.onTick(c); err != nil {
				d.setErr(err)
				return
			}
		}
	}
}

func (d *Driver) setErr(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
}

// Stop cancels the ticker and waits for the goroutine to exit. After Stop
// returns the callback is never invoked again. Stop is idempotent and must
// not be called from inside the callback; return an error there instead.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, stopped := d.cancel, d.stopped
	if d.err == nil && cancel != nil {
		d.err = ErrStopped
	}
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

// Done is closed when the ticker goroutine has exited. It is nil before
// Start.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// Err reports why the driver stopped, or nil while it runs.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Clock returns the latest clock value.
func (d *Driver) Clock() Clock {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clock
}

// Update replaces the clock, for example to jump to an angle.
func (d *Driver) Update(fn func(Clock) Clock) {
	d.mu.Lock()
	d.clock = fn(d.clock)
	d.mu.Unlock()
}
