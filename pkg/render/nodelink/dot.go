package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds weight, category and level to node labels.
	// When false, only the label is shown.
	Detailed bool
	// Pinned fixes nodes at their offsets (neato layout) instead of letting
	// Graphviz rank them top to bottom.
	Pinned bool
	// Scale converts offset units to inches when Pinned is set.
	Scale float64
}

// ToDOT converts a network to Graphviz DOT format. Edges whose endpoints
// are not in the network are skipped. Edge pen width follows strength.
func ToDOT(n market.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=black, fontcolor=white, color=white, fontsize=14, fontname=\"monospace\"];\n")
	buf.WriteString("  edge [color=white, arrowhead=none];\n")
	buf.WriteString("\n")

	scale := opts.Scale
	if scale <= 0 {
		scale = 1.0 / 72
	}

	ids := make(map[string]bool, len(n.Nodes))
	for _, node := range n.Nodes {
		ids[node.ID] = true
		attrs := fmtAttrs(node, opts, scale)
		fmt.Fprintf(&buf, "  %q [%s];\n", node.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range n.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			continue
		}
		attrs := []string{fmt.Sprintf("penwidth=%.2f", 0.5+e.Strength*3)}
		if e.Color != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n market.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("weight: %g", n.Weight)}
	if n.Category != "" {
		parts = append(parts, "category: "+n.Category)
	}
	if n.Level > 0 {
		parts = append(parts, fmt.Sprintf("level: %d", n.Level))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n market.Node, opts Options, scale float64) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", n.Color))
	}
	if opts.Pinned && n.Offset != nil {
		// DOT's y axis points up.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", n.Offset.DX*scale, -n.Offset.DY*scale))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
