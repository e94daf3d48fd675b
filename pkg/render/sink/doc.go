// Package sink provides output format renderers for chart scenes.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into a final output format:
//
//   - SVG: Scalable vector graphics with optional hover interaction
//   - JSON: Scene primitives for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
//	svg := sink.RenderSVG(s,
//	    sink.WithTheme(styles.Neural),
//	    sink.WithInteraction(),
//	)
//
// Items are written in paint order. Semantic paints are resolved through
// the theme; the tooltip, when the scene has one, is drawn last and kept
// on the canvas. [WithInteraction] embeds a small script that highlights
// every element sharing the hovered element's data-hover key.
//
// # JSON Output
//
// [RenderJSON] writes the scene as-is, or with paints resolved when
// [WithJSONTheme] is given.
//
// [scene.Scene]: github.com/matzehuels/cryptoviz/pkg/scene.Scene
package sink
