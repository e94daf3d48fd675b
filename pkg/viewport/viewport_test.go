package viewport

import (
	"testing"
)

func TestBoundsClamp(t *testing.T) {
	tests := []struct {
		name      string
		bounds    Bounds
		container Size
		want      Size
	}{
		{"square shrinks", Square600, Size{W: 400, H: 900}, Size{W: 360, H: 360}},
		{"square caps", Square600, Size{W: 2000, H: 900}, Size{W: 600, H: 600}},
		{"square fallback", Square600, Size{}, Size{W: 600, H: 600}},
		{"wide min width", Wide, Size{W: 300, H: 100}, Size{W: 600, H: 195}},
		{"wide caps height", Wide, Size{W: 1240, H: 100}, Size{W: 1200, H: 600}},
		{"half disc", HalfDisc, Size{W: 840, H: 0}, Size{W: 800, H: 400}},
		{"panel", Panel, Size{W: 1048, H: 10}, Size{W: 1000, H: 400}},
		{"spark fixed", Spark, Size{W: 500, H: 500}, Size{W: 60, H: 20}},
		{"no negatives", Bounds{}, Size{W: -5, H: -5}, Size{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bounds.Clamp(tt.container); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.container, got, tt.want)
			}
		})
	}
}

func TestObserverNotifiesOnChangeOnly(t *testing.T) {
	o := NewObserver(Square600)
	var got []Size
	o.Subscribe(func(s Size) { got = append(got, s) })

	if o.Resize(Size{W: 2000, H: 2000}) {
		t.Error("clamped size equals the fallback, expected no change")
	}
	if !o.Resize(Size{W: 440, H: 440}) {
		t.Error("expected a change")
	}
	if o.Resize(Size{W: 440, H: 100}) {
		t.Error("square ignores height, expected no change")
	}

	if len(got) != 1 || got[0] != (Size{W: 400, H: 400}) {
		t.Fatalf("notifications = %+v", got)
	}
	if o.Size() != (Size{W: 400, H: 400}) {
		t.Errorf("Size() = %+v", o.Size())
	}
}

func TestObserverDoesNotRecurse(t *testing.T) {
	o := NewObserver(Square600)
	depth, maxDepth, calls := 0, 0, 0

	o.Subscribe(func(s Size) {
		depth++
		calls++
		if depth > maxDepth {
			maxDepth = depth
		}
		// Re-layout nudges the container, which reports a resize again.
		if s.W > 300 {
			o.Resize(Size{W: s.W - 60, H: s.W - 60})
		}
		depth--
	})

	o.Resize(Size{W: 540, H: 540})

	if maxDepth != 1 {
		t.Errorf("listener re-entered, max depth %d", maxDepth)
	}
	// 500 -> 400 -> 300
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if o.Size().W != 300 {
		t.Errorf("final width = %v, want 300", o.Size().W)
	}
}

func TestObserverListenerSeesClampedSize(t *testing.T) {
	o := NewObserver(Wide)
	o.Subscribe(func(s Size) {
		if s.W < Wide.MinW || s.H > Wide.MaxH {
			t.Errorf("listener got unclamped size %+v", s)
		}
	})
	o.Resize(Size{W: 100, H: 100})
	o.Resize(Size{W: 5000, H: 100})
}

func TestObserverAtPinnedSize(t *testing.T) {
	o := NewObserverAt(Square600, Size{W: 300, H: 300})
	if got := o.Size(); got != (Size{W: 300, H: 300}) {
		t.Fatalf("initial size = %v, want the pinned 300x300", got)
	}

	var got []Size
	o.Subscribe(func(s Size) { got = append(got, s) })

	// The container clamps to the fallback, which still differs from the pin.
	if !o.Resize(Size{W: 2000, H: 900}) {
		t.Fatal("resize away from the pinned size reported no change")
	}
	if len(got) != 1 || got[0] != (Size{W: 600, H: 600}) {
		t.Errorf("notified %v, want [600x600]", got)
	}

	if o := NewObserverAt(Square600, Size{}); o.Size() != Square600.Fallback {
		t.Errorf("empty pin = %v, want fallback", o.Size())
	}
}

func TestBoundsFloor(t *testing.T) {
	tests := []struct {
		bounds Bounds
		in     Size
		want   Size
	}{
		{Panel, Size{W: 160, H: 90}, Size{W: 800, H: 400}},
		{Panel, Size{W: 5000, H: 60}, Size{W: 5000, H: 400}},
		{Wide, Size{W: 50, H: 50}, Size{W: 600, H: 50}},
		{Square500, Size{W: 300, H: 300}, Size{W: 300, H: 300}},
	}
	for _, tt := range tests {
		if got := tt.bounds.Floor(tt.in); got != tt.want {
			t.Errorf("Floor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
