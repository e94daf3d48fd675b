package geom

import (
	"strconv"
	"strings"
)

// PathBuilder assembles an SVG path descriptor.
type PathBuilder struct {
	b strings.Builder
}

func (p *PathBuilder) cmd(c byte) {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	p.b.WriteByte(c)
}

func (p *PathBuilder) num(v float64) {
	p.b.WriteByte(' ')
	p.b.WriteString(strconv.FormatFloat(Finite(v), 'f', 2, 64))
}

func (p *PathBuilder) flag(f bool) {
	if f {
		p.b.WriteString(" 1")
	} else {
		p.b.WriteString(" 0")
	}
}

// MoveTo starts a new subpath at pt.
func (p *PathBuilder) MoveTo(pt Point) *PathBuilder {
	p.cmd('M')
	p.num(pt.X)
	p.num(pt.Y)
	return p
}

// LineTo draws a straight line to pt.
func (p *PathBuilder) LineTo(pt Point) *PathBuilder {
	p.cmd('L')
	p.num(pt.X)
	p.num(pt.Y)
	return p
}

// ArcTo draws a circular arc of radius r to pt. sweep selects the clockwise
// direction in screen coordinates.
func (p *PathBuilder) ArcTo(r float64, largeArc, sweep bool, pt Point) *PathBuilder {
	p.cmd('A')
	p.num(r)
	p.num(r)
	p.b.WriteString(" 0")
	p.flag(largeArc)
	p.flag(sweep)
	p.num(pt.X)
	p.num(pt.Y)
	return p
}

// Close closes the current subpath.
func (p *PathBuilder) Close() *PathBuilder {
	p.cmd('Z')
	return p
}

// String returns the path descriptor.
func (p *PathBuilder) String() string { return p.b.String() }

// AreaPath closes the line through pts down to baseline.
func AreaPath(pts []Point, baseline float64) string {
	if len(pts) < 2 {
		return ""
	}
	var p PathBuilder
	p.MoveTo(Point{X: pts[0].X, Y: baseline})
	for _, pt := range pts {
		p.LineTo(pt)
	}
	p.LineTo(Point{X: pts[len(pts)-1].X, Y: baseline})
	p.Close()
	return p.String()
}
