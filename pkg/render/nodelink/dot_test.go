package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

func testNetwork() market.Network {
	return market.Network{
		Nodes: []market.Node{
			{ID: "btc", Label: "Bitcoin", Weight: 100, Category: "crypto", Level: 3, Color: "#f7931a", Offset: &market.Offset{DX: 0, DY: 0}},
			{ID: "eth", Label: "Ethereum", Weight: 80, Offset: &market.Offset{DX: -144, DY: 72}},
		},
		Edges: []market.Edge{
			{Source: "btc", Target: "eth", Strength: 0.5, Color: "#00ff88"},
			{Source: "btc", Target: "ghost", Strength: 1},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testNetwork(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"btc" [label="Bitcoin", color="#f7931a"];`,
		`"btc" -> "eth" [penwidth=2.00, color="#00ff88"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("dangling edge was written")
	}
}

func TestToDOTDetailedAndPinned(t *testing.T) {
	dot := ToDOT(testNetwork(), Options{Detailed: true, Pinned: true, Scale: 1.0 / 72})

	if !strings.Contains(dot, "layout=neato;") {
		t.Error("pinned layout should use neato")
	}
	if !strings.Contains(dot, `label="Bitcoin\nweight: 100\ncategory: crypto\nlevel: 3"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="-2.000,-1.000!"`) {
		t.Errorf("pinned position missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("got %s", out)
	}

	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testNetwork(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "Bitcoin") {
		t.Error("rendered SVG lacks node label")
	}
}
