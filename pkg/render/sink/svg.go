package sink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/render"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

const hoverCSS = `
    [data-hover] { cursor: pointer; transition: opacity 0.2s ease, stroke-width 0.2s ease; }
    [data-hover].dim { opacity: 0.25; }
    [data-hover].highlight { stroke-width: 3; opacity: 1; }
    .tooltip { pointer-events: none; }`

const hoverJS = `
    function highlight(key) {
      document.querySelectorAll('[data-hover]').forEach(el => {
        const on = el.dataset.hover === key || (el.dataset.related || '').split(' ').includes(key);
        el.classList.toggle('highlight', on);
        el.classList.toggle('dim', !on);
      });
      window.parent && window.parent.postMessage({type: 'hover', key: key}, '*');
    }
    function clearHighlight() {
      document.querySelectorAll('[data-hover]').forEach(el => el.classList.remove('highlight', 'dim'));
      window.parent && window.parent.postMessage({type: 'hover', key: null}, '*');
    }
    document.querySelectorAll('[data-hover]').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.hover));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme       styles.Theme
	interactive bool
	watermark   string
}

// WithTheme selects the color theme (default [styles.Cyber]).
func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithInteraction embeds the hover highlight stylesheet and script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithWatermark writes a small caption in the bottom-right corner.
func WithWatermark(s string) SVGOption { return func(r *svgRenderer) { r.watermark = s } }

// RenderSVG renders a scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		s.Width, s.Height, s.Width, s.Height, styles.EscapeXML(r.theme.Font))

	r.theme.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)

	for _, it := range s.Items {
		r.renderItem(&buf, it, 1)
	}
	if s.Tooltip != nil {
		r.renderTooltip(&buf, s.Tooltip, s.Frame())
	}
	if r.watermark != "" {
		fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="9" text-anchor="end" fill="%s" opacity="0.5">%s</text>`+"\n",
			s.Width-6, s.Height-6, r.theme.Resolve(scene.PaintMuted), styles.EscapeXML(r.watermark))
	}
	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: styles.Cyber}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, it scene.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	switch it.Kind {
	case scene.KindCircle:
		fmt.Fprintf(buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
			indent, it.Center.X, it.Center.Y, it.R, r.attrs(it))
	case scene.KindLine:
		fmt.Fprintf(buf, `%s<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
			indent, it.Line.From.X, it.Line.From.Y, it.Line.To.X, it.Line.To.Y, r.attrs(it))
	case scene.KindRect:
		fmt.Fprintf(buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
			indent, it.Rect.X, it.Rect.Y, it.Rect.W, it.Rect.H, r.attrs(it))
	case scene.KindPath:
		if it.D == "" {
			return
		}
		fmt.Fprintf(buf, `%s<path d="%s"%s/>`+"\n", indent, it.D, r.attrs(it))
	case scene.KindPolyline:
		if len(it.Points) == 0 {
			return
		}
		fmt.Fprintf(buf, `%s<polyline points="%s"%s/>`+"\n", indent, pointList(it.Points), r.attrs(it))
	case scene.KindText:
		weight := ""
		if it.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `%s<text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s"%s%s>%s</text>`+"\n",
			indent, it.Center.X, it.Center.Y, it.Size, anchor(it.Anchor), weight, r.attrs(it), styles.EscapeXML(it.Text))
	case scene.KindGroup:
		transform := ""
		if it.Rotate != 0 {
			transform = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, it.Rotate, it.Center.X, it.Center.Y)
		}
		fmt.Fprintf(buf, "%s<g%s%s>\n", indent, transform, r.attrs(it))
		for _, c := range it.Children {
			r.renderItem(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	}
}

// attrs renders the presentation and identity attributes of an item.
func (r *svgRenderer) attrs(it scene.Item) string {
	var b strings.Builder
	if it.ID != "" {
		fmt.Fprintf(&b, ` id="%s"`, styles.EscapeXML(it.ID))
	}
	if it.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, styles.EscapeXML(it.Class))
	}
	if it.Kind != scene.KindGroup || it.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, r.theme.Resolve(it.Fill))
	}
	if it.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%.2f"`, r.theme.Resolve(it.Stroke), it.Width)
	}
	if it.Dash != "" {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, it.Dash)
	}
	if it.Opacity > 0 && it.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%.2f"`, it.Opacity)
	}
	if it.Glow {
		fmt.Fprintf(&b, ` filter="url(#%s)"`, styles.GlowFilterID)
	}
	for _, k := range slices.Sorted(maps.Keys(it.Data)) {
		fmt.Fprintf(&b, ` data-%s="%s"`, k, styles.EscapeXML(it.Data[k]))
	}
	return b.String()
}

func anchor(a string) string {
	if a == "" {
		return scene.AnchorMiddle
	}
	return a
}

func pointList(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

const (
	tooltipWidth   = 160.0
	tooltipLineH   = 16.0
	tooltipPadding = 8.0
	tooltipOffset  = 12.0
)

// renderTooltip draws the hover card next to its anchor, flipped and
// clamped so it stays on the canvas.
func (r *svgRenderer) renderTooltip(buf *bytes.Buffer, t *scene.Tooltip, frame geom.Rect) {
	h := tooltipPadding*2 + tooltipLineH*float64(1+len(t.Lines))
	x := t.Anchor.X + tooltipOffset
	if x+tooltipWidth > frame.Right() {
		x = t.Anchor.X - tooltipOffset - tooltipWidth
	}
	y := t.Anchor.Y - h - tooltipOffset
	if y < frame.Y {
		y = t.Anchor.Y + tooltipOffset
	}
	x = geom.Clamp(x, frame.X, max(frame.X, frame.Right()-tooltipWidth))
	y = geom.Clamp(y, frame.Y, max(frame.Y, frame.Bottom()-h))

	buf.WriteString(`  <g class="tooltip">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1" opacity="0.9"/>`+"\n",
		x, y, tooltipWidth, h, r.theme.Background, r.theme.Primary)
	ty := y + tooltipPadding + tooltipLineH - 4
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="11" font-weight="bold" fill="%s">%s</text>`+"\n",
		x+tooltipPadding, ty, r.theme.Text, styles.EscapeXML(t.Title))
	for _, l := range t.Lines {
		ty += tooltipLineH
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="10" fill="%s">%s</text>`+"\n",
			x+tooltipPadding, ty, r.theme.Muted, styles.EscapeXML(l.Label))
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="10" text-anchor="end" fill="%s">%s</text>`+"\n",
			x+tooltipWidth-tooltipPadding, ty, r.theme.Text, styles.EscapeXML(l.Value))
	}
	buf.WriteString("  </g>\n")
}

var (
	scriptOnce sync.Once
	script     string
)

// hoverScript returns the minified hover script, or the source if it does
// not transpile.
func hoverScript() string {
	scriptOnce.Do(func() {
		out, err := render.MinifyJS(hoverJS, false)
		if err != nil {
			script = hoverJS
			return
		}
		script = "\n    " + out
	})
	return script
}

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverScript())
}
