package anim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, mod, want float64
	}{
		{370, 360, 10},
		{360, 360, 0},
		{-10, 360, 350},
		{-720, 360, 0},
		{99, 100, 99},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap(tt.v, tt.mod), 1e-9, "Wrap(%v, %v)", tt.v, tt.mod)
	}
}

func TestClockTickWraps(t *testing.T) {
	c := NewClock(0.5)
	for i := 0; i < 720; i++ {
		c = c.Tick()
		require.GreaterOrEqual(t, c.Angle(), 0.0)
		require.Less(t, c.Angle(), 360.0)
	}
	assert.InDelta(t, 0.0, c.Angle(), 1e-6)
	assert.Equal(t, uint64(720), c.Ticks)

	neg := NewClock(-90).Tick()
	assert.InDelta(t, 270.0, neg.Angle(), 1e-9)
}

func TestClockPhase(t *testing.T) {
	c := Sweep.Clock
	for i := 0; i < 150; i++ {
		c = c.Tick()
	}
	assert.InDelta(t, 50.0, c.Phase.Value, 1e-9)
	assert.Zero(t, c.Angle())
	assert.False(t, c.Static())
	assert.True(t, Still.Clock.Static())
}

func TestClockAt(t *testing.T) {
	c := NewClock(1).At(725)
	assert.InDelta(t, 5.0, c.Angle(), 1e-9)
}

func TestClockAtPhase(t *testing.T) {
	c := Flow.Clock.AtPhase(250)
	assert.InDelta(t, 50.0, c.Phase.Value, 1e-9)
	assert.InDelta(t, 52.0, c.Tick().Phase.Value, 1e-9)
}

func TestClockIsAValue(t *testing.T) {
	a := NewClock(10)
	b := a.Tick()
	assert.Zero(t, a.Angle())
	assert.Equal(t, 10.0, b.Angle())
}

func TestDriverTicks(t *testing.T) {
	got := make(chan Clock, 16)
	d := NewDriver(NewClock(1), time.Millisecond, func(c Clock) error {
		select {
		case got <- c:
		default:
		}
		return nil
	})
	d.Start(context.Background())
	defer d.Stop()

	first := <-got
	second := <-got
	assert.Greater(t, second.Ticks, first.Ticks)
	assert.InDelta(t, 1.0, second.Angle()-first.Angle(), 1e-9)
}

func TestDriverNoCallbackAfterStop(t *testing.T) {
	var calls atomic.Int64
	d := NewDriver(NewClock(1), time.Millisecond, func(Clock) error {
		calls.Add(1)
		return nil
	})
	d.Start(context.Background())

	require.Eventually(t, func() bool { return calls.Load() > 3 }, time.Second, time.Millisecond)
	d.Stop()
	after := calls.Load()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "callback ran after Stop returned")
	assert.ErrorIs(t, d.Err(), ErrStopped)

	// Idempotent.
	d.Stop()
}

func TestDriverContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDriver(NewClock(1), time.Millisecond, nil)
	d.Start(ctx)
	cancel()

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("driver did not stop on context cancel")
	}
	assert.ErrorIs(t, d.Err(), context.Canceled)
}

func TestDriverCallbackError(t *testing.T) {
	boom := errors.New("write failed")
	d := NewDriver(NewClock(1), time.Millisecond, func(Clock) error { return boom })
	d.Start(context.Background())

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("driver did not stop on callback error")
	}
	assert.ErrorIs(t, d.Err(), boom)
	d.Stop()
	assert.ErrorIs(t, d.Err(), boom, "Stop keeps the first error")
}

func TestDriverStopBeforeStart(t *testing.T) {
	d := NewDriver(NewClock(1), 0, nil)
	d.Stop()
	assert.Nil(t, d.Done())
	assert.NoError(t, d.Err())
}

func TestDriverUpdate(t *testing.T) {
	d := FromPreset(Orbit, nil)
	d.Update(func(c Clock) Clock { return c.At(90) })
	assert.Equal(t, 90.0, d.Clock().Angle())
}
