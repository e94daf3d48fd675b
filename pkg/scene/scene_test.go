package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/cryptoviz/pkg/geom"
)

func TestExtentEmpty(t *testing.T) {
	_, ok := New("x", 10, 10).Extent()
	assert.False(t, ok)
}

func TestExtentPrimitives(t *testing.T) {
	s := New("x", 200, 200)
	s.Add(
		Circle(geom.Point{X: 50, Y: 50}, 10),
		Line(geom.Segment{From: geom.Point{X: 5, Y: 100}, To: geom.Point{X: 20, Y: 120}}),
		Rect(geom.Rect{X: 100, Y: 10, W: 50, H: 5}),
		Path("M 0 0", geom.Point{X: 30, Y: 30}, geom.Point{X: 160, Y: 40}),
	)
	got, ok := s.Extent()
	assert.True(t, ok)
	assert.Equal(t, geom.Rect{X: 5, Y: 10, W: 155, H: 110}, got)
}

func TestExtentRotatedGroup(t *testing.T) {
	s := New("x", 100, 100)
	c := geom.Point{X: 50, Y: 50}
	s.Add(Group(Line(geom.Segment{From: c, To: geom.Point{X: 90, Y: 50}})).WithRotation(90, c))

	got, _ := s.Extent()
	assert.InDelta(t, 50, got.X, 1e-9)
	assert.InDelta(t, 50, got.Y, 1e-9)
	assert.InDelta(t, 0, got.W, 1e-9)
	assert.InDelta(t, 40, got.H, 1e-9, "a quarter turn points the line down")
}

func TestExtentText(t *testing.T) {
	s := New("x", 100, 100)
	s.Add(Text(geom.Point{X: 50, Y: 20}, "abcd", 10))
	got, _ := s.Extent()
	w := TextWidth("abcd", 10)
	assert.InDelta(t, 50-w/2, got.X, 1e-9)
	assert.InDelta(t, 10, got.Y, 1e-9)
	assert.InDelta(t, w, got.W, 1e-9)
}

func TestFitText(t *testing.T) {
	frame := geom.Rect{W: 100, H: 100}
	tests := []struct {
		name   string
		item   Item
		wantIn bool
	}{
		{"left overflow", Text(geom.Point{X: 0, Y: 50}, "long label", 10), true},
		{"right overflow end", Text(geom.Point{X: 200, Y: 50}, "x", 10).WithAnchor(AnchorEnd), true},
		{"above top", Text(geom.Point{X: 50, Y: -20}, "x", 10).WithAnchor(AnchorStart), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("x", frame.W, frame.H)
			s.Add(FitText(tt.item, frame))
			got, _ := s.Extent()
			assert.GreaterOrEqual(t, got.X, -1e-9)
			assert.GreaterOrEqual(t, got.Y, -1e-9)
			assert.LessOrEqual(t, got.Right(), frame.W+1e-9)
			assert.LessOrEqual(t, got.Bottom(), frame.H+1e-9)
		})
	}
}

func TestFinite(t *testing.T) {
	s := New("x", 10, 10)
	s.Add(Circle(geom.Point{X: 1, Y: 1}, 1))
	assert.True(t, s.Finite())

	s.Add(Group(Line(geom.Segment{To: geom.Point{X: math.NaN()}})))
	assert.False(t, s.Finite())
}

func TestWithDataCopies(t *testing.T) {
	a := Circle(geom.Point{}, 1).WithData("k", "1")
	b := a.WithData("k", "2")
	assert.Equal(t, "1", a.Data["k"])
	assert.Equal(t, "2", b.Data["k"])
}

func TestSeriesPaintWraps(t *testing.T) {
	assert.Equal(t, "series-0", SeriesPaint(0))
	assert.Equal(t, "series-1", SeriesPaint(9))
	assert.Equal(t, "series-7", SeriesPaint(-1))
}
