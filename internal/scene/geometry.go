package scene

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rotate turns p counter-clockwise about the origin.
func (p Point) Rotate(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

type Segment struct {
	A, B Point
}

// Drawable is anything the renderer can place and transform.
type Drawable interface {
	// Apply maps every control point of the drawable through f.
	Apply(f func(Point) Point)
	// Points returns the control points, used for bounds.
	Points() []Point
	// Segments returns the outline as straight segments.
	Segments() []Segment
}

func Shift(d Drawable, dx, dy float64) {
	off := Point{dx, dy}
	d.Apply(func(p Point) Point { return p.Add(off) })
}

func RotateAboutOrigin(d Drawable, angle float64) {
	d.Apply(func(p Point) Point { return p.Rotate(angle) })
}

func RotateAbout(d Drawable, pivot Point, angle float64) {
	d.Apply(func(p Point) Point { return p.Sub(pivot).Rotate(angle).Add(pivot) })
}

// Bounds returns the axis-aligned bounding box of d. An empty drawable has
// a zero box.
func Bounds(d Drawable) (lo, hi Point) {
	pts := d.Points()
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func Width(d Drawable) float64 {
	lo, hi := Bounds(d)
	return hi.X - lo.X
}

// StretchToFitWidth scales d horizontally about the center of its bounds so
// that its width becomes w. Drawables of zero width are left unchanged.
func StretchToFitWidth(d Drawable, w float64) {
	lo, hi := Bounds(d)
	old := hi.X - lo.X
	if old == 0 {
		return
	}
	cx := (lo.X + hi.X) / 2
	k := w / old
	d.Apply(func(p Point) Point { return Point{cx + (p.X-cx)*k, p.Y} })
}
