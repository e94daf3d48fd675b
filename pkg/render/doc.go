// Package render turns chart scenes into files.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The scene sinks use them
// for PNG and PDF output.
//
//	svg := sink.RenderSVG(s, sink.WithTheme(styles.Cyber))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Subpackages:
//   - [styles]: color themes resolving semantic paint tokens
//   - [sink]: SVG, PNG, PDF and JSON output for scenes
//   - [nodelink]: Graphviz DOT export and rendering of network charts
//
// [styles]: github.com/matzehuels/cryptoviz/pkg/render/styles
// [sink]: github.com/matzehuels/cryptoviz/pkg/render/sink
// [nodelink]: github.com/matzehuels/cryptoviz/pkg/render/nodelink
package render
