package sink

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/render"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

func testScene() *scene.Scene {
	s := scene.New("test", 200, 100)
	c := geom.Point{X: 100, Y: 50}
	s.Add(
		scene.Circle(c, 20).WithFill(scene.PaintUp).WithID("node-a").WithData("hover", "a"),
		scene.Group(
			scene.Line(geom.Segment{From: c, To: geom.Point{X: 150, Y: 50}}).WithStroke(scene.PaintGrid, 1),
		).WithRotation(45, c).WithOpacity(0.5),
		scene.Text(geom.Point{X: 100, Y: 90}, "BTC <&>", 12).WithBold(),
		scene.Polyline([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}).WithStroke("#f7931a", 2),
		scene.Path(""),
	)
	return s
}

func TestRenderSVGIsWellFormed(t *testing.T) {
	out := RenderSVG(testScene(), WithInteraction(), WithWatermark("cryptoviz"))

	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestRenderSVGContent(t *testing.T) {
	out := string(RenderSVG(testScene(), WithTheme(styles.Cyber)))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200.0 100.0" width="200" height="100"`))
	assert.Contains(t, out, `<circle cx="100.00" cy="50.00" r="20.00" id="node-a" fill="#00ff88" data-hover="a"/>`)
	assert.Contains(t, out, `transform="rotate(45.00 100.00 50.00)"`)
	assert.Contains(t, out, `opacity="0.50"`)
	assert.Contains(t, out, `stroke="#333333"`)
	assert.Contains(t, out, `BTC &lt;&amp;&gt;`)
	assert.Contains(t, out, `font-weight="bold"`)
	assert.Contains(t, out, `points="0.00,0.00 10.00,10.00"`)
	assert.Contains(t, out, `stroke="#f7931a"`)
	assert.NotContains(t, out, "<path", "empty paths are skipped")
	assert.NotContains(t, out, "<script", "no interaction requested")
}

func TestRenderSVGThemes(t *testing.T) {
	neural := string(RenderSVG(testScene(), WithTheme(styles.Neural)))
	cyber := string(RenderSVG(testScene(), WithTheme(styles.Cyber)))
	assert.Contains(t, neural, `fill="#22c55e"`)
	assert.Contains(t, cyber, `fill="#00ff88"`)
}

func TestRenderSVGInteraction(t *testing.T) {
	out := string(RenderSVG(testScene(), WithInteraction()))
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, "<![CDATA[")
	assert.Contains(t, out, "data-hover")
}

func TestRenderSVGTooltipStaysOnCanvas(t *testing.T) {
	s := scene.New("test", 200, 100)
	s.Tooltip = &scene.Tooltip{
		Title:  "Bitcoin",
		Lines:  []scene.TooltipLine{{Label: "Value", Value: "45.2%"}},
		Anchor: geom.Point{X: 195, Y: 5},
	}
	out := string(RenderSVG(s))
	assert.Contains(t, out, `class="tooltip"`)
	// Flipped left of the anchor and below it.
	assert.Contains(t, out, `<rect x="23.00" y="17.00" width="160.00" height="48.00"`)
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene())
	require.NoError(t, err)

	var out struct {
		Chart string       `json:"chart"`
		Width float64      `json:"width"`
		Items []scene.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "test", out.Chart)
	assert.Equal(t, 200.0, out.Width)
	require.Len(t, out.Items, 5)
	assert.Equal(t, scene.PaintUp, out.Items[0].Fill)
}

func TestRenderJSONWithTheme(t *testing.T) {
	data, err := RenderJSON(testScene(), WithJSONTheme(styles.Neural), WithJSONIndent())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "neural"`)
	assert.Contains(t, string(data), `"fill": "#22c55e"`)
	assert.Contains(t, string(data), `"stroke": "#333333"`, "nested group items are resolved")
}

func TestRenderPNGAndPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()
	png, err := RenderPNG(ctx, testScene(), WithScale(1))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	pdf, err := RenderPDF(ctx, testScene(), WithSVG(WithTheme(styles.Neural)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
