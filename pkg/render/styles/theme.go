// Package styles defines the color themes scenes are rendered with.
//
// Scene items paint with semantic tokens such as "primary", "up" or
// "series-3". A [Theme] maps those tokens to concrete colors and supplies
// the shared SVG definitions (glow filter, fonts). Literal colors pass
// through unchanged, so fixture colors like "#f7931a" survive any theme.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
	"strings"
)

// Theme is a named palette.
type Theme struct {
	Name       string
	Background string
	Primary    string
	Muted      string
	Accent     string
	Grid       string
	Up         string
	Down       string
	Text       string
	Highlight  string
	Series     []string
	Font       string
}

// Neural is the monochrome white-on-black theme.
var Neural = Theme{
	Name:       "neural",
	Background: "#000000",
	Primary:    "#ffffff",
	Muted:      "#999999",
	Accent:     "#ffffff",
	Grid:       "#333333",
	Up:         "#22c55e",
	Down:       "#ef4444",
	Text:       "#ffffff",
	Highlight:  "#ffffff",
	Series:     []string{"#ffffff", "#cccccc", "#999999", "#777777", "#555555", "#e5e5e5", "#b3b3b3", "#888888"},
	Font:       "ui-monospace, SFMono-Regular, Menlo, monospace",
}

// Cyber is the neon theme.
var Cyber = Theme{
	Name:       "cyber",
	Background: "#000000",
	Primary:    "#00ffff",
	Muted:      "#0080ff",
	Accent:     "#ff00ff",
	Grid:       "#333333",
	Up:         "#00ff88",
	Down:       "#ff0088",
	Text:       "#00ffff",
	Highlight:  "#ffff00",
	Series:     []string{"#00ff88", "#00aaff", "#ff6600", "#ff0088", "#8000ff", "#ffff00", "#88ff00", "#0088ff"},
	Font:       "ui-monospace, SFMono-Regular, Menlo, monospace",
}

var themes = map[string]Theme{
	Neural.Name: Neural,
	Cyber.Name:  Cyber,
}

// Names returns the registered theme names, sorted.
func Names() []string {
	out := make([]string, 0, len(themes))
	for n := range themes {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// Resolve maps a paint token to a color. Empty paint resolves to "none";
// unknown tokens and literal colors are returned unchanged.
func (t Theme) Resolve(paint string) string {
	switch paint {
	case "", "none":
		return "none"
	case "background":
		return t.Background
	case "primary":
		return t.Primary
	case "muted":
		return t.Muted
	case "accent":
		return t.Accent
	case "grid":
		return t.Grid
	case "up":
		return t.Up
	case "down":
		return t.Down
	case "text":
		return t.Text
	case "highlight":
		return t.Highlight
	}
	if rest, ok := strings.CutPrefix(paint, "series-"); ok && len(t.Series) > 0 {
		var i int
		if _, err := fmt.Sscanf(rest, "%d", &i); err == nil && i >= 0 {
			return t.Series[i%len(t.Series)]
		}
	}
	return paint
}

// GlowFilterID is the id of the glow filter written by RenderDefs.
const GlowFilterID = "glow"

// RenderDefs writes the <defs> block shared by every chart.
func (t Theme) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n", GlowFilterID)
	buf.WriteString(`      <feGaussianBlur stdDeviation="3" result="coloredBlur"/>` + "\n")
	buf.WriteString("      <feMerge><feMergeNode in=\"coloredBlur\"/><feMergeNode in=\"SourceGraphic\"/></feMerge>\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString("  </defs>\n")
}

// EscapeXML escapes text for use in SVG content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
