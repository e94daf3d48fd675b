// Package nodelink renders network charts as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(mock.Cyber(), nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// With Pinned set, nodes keep the fixed offsets the dashboard uses and the
// neato engine only routes edges. Without it Graphviz ranks nodes top to
// bottom along edge direction.
//
// The DOT source can also be saved and processed with external Graphviz
// tools. This package uses [github.com/goccy/go-graphviz] for in-process
// rendering.
package nodelink
