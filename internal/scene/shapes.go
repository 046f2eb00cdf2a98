package scene

import (
	"math"
	"strconv"
)

const circleSegments = 24

type Line struct {
	A, B Point
}

func NewLine(a, b Point) *Line { return &Line{A: a, B: b} }

func (l *Line) Apply(f func(Point) Point) { l.A, l.B = f(l.A), f(l.B) }
func (l *Line) Points() []Point           { return []Point{l.A, l.B} }
func (l *Line) Segments() []Segment       { return []Segment{{l.A, l.B}} }

// Polygon is a closed outline.
type Polygon struct {
	Vertices []Point
}

// NewRect returns an axis-aligned rectangle with lower-left corner lo.
func NewRect(lo Point, w, h float64) *Polygon {
	return &Polygon{Vertices: []Point{
		lo,
		{lo.X + w, lo.Y},
		{lo.X + w, lo.Y + h},
		{lo.X, lo.Y + h},
	}}
}

// NewSquare returns a square of the given side centered on c.
func NewSquare(c Point, side float64) *Polygon {
	return NewRect(Point{c.X - side/2, c.Y - side/2}, side, side)
}

func (p *Polygon) Apply(f func(Point) Point) {
	for i, v := range p.Vertices {
		p.Vertices[i] = f(v)
	}
}

func (p *Polygon) Points() []Point { return append([]Point(nil), p.Vertices...) }

func (p *Polygon) Segments() []Segment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, n)
	for i := range p.Vertices {
		segs[i] = Segment{p.Vertices[i], p.Vertices[(i+1)%n]}
	}
	return segs
}

func (p *Polygon) Center() Point {
	var c Point
	for _, v := range p.Vertices {
		c = c.Add(v)
	}
	n := float64(len(p.Vertices))
	return Point{c.X / n, c.Y / n}
}

// Circle moves rigidly: Apply maps the center and keeps the radius.
type Circle struct {
	Center Point
	Radius float64
}

func NewCircle(c Point, r float64) *Circle { return &Circle{Center: c, Radius: r} }

func (c *Circle) Apply(f func(Point) Point) { c.Center = f(c.Center) }

func (c *Circle) Points() []Point {
	r := c.Radius
	return []Point{
		{c.Center.X - r, c.Center.Y},
		{c.Center.X + r, c.Center.Y},
		{c.Center.X, c.Center.Y - r},
		{c.Center.X, c.Center.Y + r},
	}
}

func (c *Circle) Segments() []Segment {
	segs := make([]Segment, circleSegments)
	prev := Point{c.Center.X + c.Radius, c.Center.Y}
	for i := 1; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		next := Point{c.Center.X + c.Radius*math.Cos(a), c.Center.Y + c.Radius*math.Sin(a)}
		segs[i-1] = Segment{prev, next}
		prev = next
	}
	return segs
}

// Label is text anchored at its left edge.
type Label struct {
	Pos  Point
	Text string
}

func NewLabel(pos Point, text string) *Label { return &Label{Pos: pos, Text: text} }

func (l *Label) Apply(f func(Point) Point) { l.Pos = f(l.Pos) }
func (l *Label) Points() []Point           { return []Point{l.Pos} }
func (l *Label) Segments() []Segment       { return nil }

// NextTo places l a buff to the right of d, vertically centered.
func (l *Label) NextTo(d Drawable, buff float64) {
	lo, hi := Bounds(d)
	l.Pos = Point{hi.X + buff, (lo.Y + hi.Y) / 2}
}

// PeriodLabel formats "T_i = n s" with the period truncated to whole seconds.
func PeriodLabel(i int, period float64) string {
	return "T_" + strconv.Itoa(i) + " = " + strconv.Itoa(int(period)) + " s"
}

type Group struct {
	Items []Drawable
}

func NewGroup(items ...Drawable) *Group { return &Group{Items: items} }

func (g *Group) Add(items ...Drawable) { g.Items = append(g.Items, items...) }

func (g *Group) Apply(f func(Point) Point) {
	for _, d := range g.Items {
		d.Apply(f)
	}
}

func (g *Group) Points() []Point {
	var pts []Point
	for _, d := range g.Items {
		pts = append(pts, d.Points()...)
	}
	return pts
}

func (g *Group) Segments() []Segment {
	var segs []Segment
	for _, d := range g.Items {
		segs = append(segs, d.Segments()...)
	}
	return segs
}

// ZigZag builds a coil of n lines spanning [0, width] horizontally and
// [0, height] vertically. The first and last lines are half-length and start
// and end at mid-height.
func ZigZag(width, height float64, n int) *Group {
	if n < 2 {
		n = 2
	}
	zag := width / float64(n-1)
	g := NewGroup(NewLine(Point{0, height / 2}, Point{zag / 2, height}))

	x := zag / 2
	high := true
	for i := 0; i < n-2; i++ {
		startY, endY := height, 0.0
		if !high {
			startY, endY = 0, height
		}
		g.Add(NewLine(Point{x, startY}, Point{x + zag, endY}))
		x += zag
		high = !high
	}

	y := 0.0
	if high {
		y = height
	}
	g.Add(NewLine(Point{x, y}, Point{x + zag/2, height / 2}))
	return g
}
