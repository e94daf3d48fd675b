package cli

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

func newTestWatch(t *testing.T, kind chart.Kind) watchModel {
	t.Helper()
	opts := pipeline.Options{Chart: string(kind), Hover: chart.NoHover, ShowMA: true}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	ch, err := chart.Lookup(kind)
	if err != nil {
		t.Fatal(err)
	}
	p := ch.Preset(ch.Datasets()[0])
	return newWatchModel(opts, ch.Bounds(), p.Clock, p.Interval)
}

func update(m watchModel, msg tea.Msg) watchModel {
	next, _ := m.Update(msg)
	return next.(watchModel)
}

func TestWatchModelInitialFrame(t *testing.T) {
	m := newTestWatch(t, chart.KindOrbit)
	if m.err != nil {
		t.Fatalf("initial frame error: %v", m.err)
	}
	if m.scene == nil || len(m.scene.Items) == 0 {
		t.Fatal("initial frame should have items")
	}
	if m.opts.Width != 500 || m.opts.Height != 500 {
		t.Errorf("fallback size = %vx%v, want 500x500", m.opts.Width, m.opts.Height)
	}
	if len(m.keys) == 0 {
		t.Error("orbit should expose hover targets")
	}
}

func TestWatchModelFrameAdvancesClock(t *testing.T) {
	m := newTestWatch(t, chart.KindOrbit)
	want := m.clock.Tick().Tick()
	m = update(m, frameMsg{})
	m = update(m, frameMsg{})
	if m.clock != want {
		t.Errorf("clock = %+v, want %+v", m.clock, want)
	}

	space := tea.KeyMsg{Type: tea.KeySpace}
	m = update(m, space)
	if !m.paused {
		t.Fatal("space should pause")
	}
	for range 10 {
		m = update(m, frameMsg{})
	}
	if m.clock != want {
		t.Error("a paused model should hold its clock")
	}

	m = update(m, space)
	m = update(m, frameMsg{})
	if m.clock != want.Tick() {
		t.Errorf("resumed clock = %+v, want one tick past the pause", m.clock)
	}
}

func TestWatchModelHoverCycle(t *testing.T) {
	m := newTestWatch(t, chart.KindOrbit)
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m = update(m, right)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	want, _ := strconv.Atoi(m.keys[0])
	if m.opts.Hover != want || m.opts.HoverID != "" {
		t.Errorf("hover = %d/%q, want index %d", m.opts.Hover, m.opts.HoverID, want)
	}
	if m.scene.Tooltip == nil {
		t.Error("hovered orbit frame should carry a tooltip")
	}

	m = update(m, left)
	if m.cursor != -1 || m.opts.Hover != chart.NoHover {
		t.Errorf("stepping back should clear hover, got cursor %d hover %d", m.cursor, m.opts.Hover)
	}
	if m.scene.Tooltip != nil {
		t.Error("no tooltip without hover")
	}

	m = update(m, left)
	if m.cursor != len(m.keys)-1 {
		t.Errorf("left from none should wrap to last, got %d", m.cursor)
	}
}

func TestWatchModelHoverNetworkByID(t *testing.T) {
	m := newTestWatch(t, chart.KindNetwork)
	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.opts.HoverID == "" || m.opts.Hover != chart.NoHover {
		t.Errorf("network hover should select by ID, got %d/%q", m.opts.Hover, m.opts.HoverID)
	}
}

func TestWatchModelRangeAndMode(t *testing.T) {
	m := newTestWatch(t, chart.KindInsight)
	r, mode := m.opts.Range, m.opts.Mode

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.opts.Range == r {
		t.Error("r should advance the range")
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if m.opts.Mode == mode {
		t.Error("m should toggle the mode")
	}
	if m.err != nil {
		t.Errorf("frame error: %v", m.err)
	}
}

func TestWatchModelResize(t *testing.T) {
	m := newTestWatch(t, chart.KindOrbit)
	// 40 columns is 320px; Square500 pads by 40.
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 50})
	if m.opts.Width != 280 || m.opts.Height != 280 {
		t.Errorf("size = %vx%v, want 280x280", m.opts.Width, m.opts.Height)
	}
	if m.scene.Width != 280 {
		t.Errorf("scene width = %v", m.scene.Width)
	}
}

func TestWatchModelResizeFromPinnedSize(t *testing.T) {
	opts := pipeline.Options{Chart: string(chart.KindOrbit), Hover: chart.NoHover, Width: 300, Height: 300}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	ch, _ := chart.Lookup(chart.KindOrbit)
	p := ch.Preset(ch.Datasets()[0])
	m := newWatchModel(opts, ch.Bounds(), p.Clock, p.Interval)
	if m.opts.Width != 300 {
		t.Fatalf("pinned width = %v", m.opts.Width)
	}

	// 80 columns is 640px, which clamps to the 500px fallback.
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 60})
	if m.opts.Width != 500 || m.scene.Width != 500 {
		t.Errorf("size = %v (scene %v), want 500", m.opts.Width, m.scene.Width)
	}
}

func TestWatchModelQuit(t *testing.T) {
	m := newTestWatch(t, chart.KindSpark)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestHoverKeys(t *testing.T) {
	items := []scene.Item{
		scene.Group(
			scene.Rect(geom.Rect{W: 1, H: 1}).WithData("hover", "0"),
			scene.Rect(geom.Rect{W: 1, H: 1}).WithData("hover", "1"),
		),
		scene.Rect(geom.Rect{W: 1, H: 1}).WithData("hover", "0"),
		scene.Rect(geom.Rect{W: 1, H: 1}),
		scene.Rect(geom.Rect{W: 1, H: 1}).WithData("hover", "btc"),
	}
	got := hoverKeys(items, nil)
	want := []string{"0", "1", "btc"}
	if len(got) != len(want) {
		t.Fatalf("hoverKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hoverKeys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAnimation(t *testing.T) {
	tests := []struct {
		preset anim.Preset
		want   string
	}{
		{anim.Still, "static"},
		{anim.Orbit, "5°/s"},
		{anim.Sweep, "sweep 20/s"},
	}
	for _, tt := range tests {
		if got := animation(tt.preset); got != tt.want {
			t.Errorf("animation() = %q, want %q", got, tt.want)
		}
	}
}
