package viz

import (
	"math"
	"strings"

	"github.com/san-kum/exactsim/internal/scene"
)

const blankCell = '⠀'

// dotBit[row][col] is the braille bit of one dot inside a 2×4 cell.
var dotBit = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. A canvas of Width×Height cells has
// 2·Width×4·Height dots. A cell holding a rune outside the braille block is
// text and shows no dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return 2 * c.Width, 4 * c.Height }

func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= 2*c.Width || y >= 4*c.Height {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, dotBit[y%4][x%2], true
}

// Set turns on dot (x, y). Dots outside the canvas or under text are dropped.
func (c *Canvas) Set(x, y int) {
	row, col, bit, ok := c.locate(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] |= bit
}

// Dot reports whether dot (x, y) is on.
func (c *Canvas) Dot(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return false
	}
	r := c.Grid[row][col]
	return isBraille(r) && r&bit != 0
}

// TextAt returns the rune in cell (col, row) when that cell holds text.
func (c *Canvas) TextAt(col, row int) (rune, bool) {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return 0, false
	}
	r := c.Grid[row][col]
	return r, !isBraille(r)
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = blankCell
		}
	}
}

// Project maps a world point to dot coordinates. World y grows upward and
// one scale serves both axes, so circles stay round.
func (c *Canvas) Project(v *Viewport, p scene.Point) (x, y float64) {
	w, h := c.Dots()
	pw, ph := float64(w-1), float64(h-1)
	spanX := math.Max(v.Hi.X-v.Lo.X, 1e-9)
	spanY := math.Max(v.Hi.Y-v.Lo.Y, 1e-9)
	s := math.Min(pw/spanX, ph/spanY)

	offX := (pw - spanX*s) / 2
	offY := (ph - spanY*s) / 2
	return offX + (p.X-v.Lo.X)*s, ph - offY - (p.Y-v.Lo.Y)*s
}

// Stroke draws seg one dot per step along its longer axis.
func (c *Canvas) Stroke(v *Viewport, seg scene.Segment) {
	x0, y0 := c.Project(v, seg.A)
	x1, y1 := c.Project(v, seg.B)
	span := math.Max(math.Abs(x1-x0), math.Abs(y1-y0))
	if math.IsNaN(span) || math.IsInf(span, 0) {
		return
	}
	w, h := c.Dots()
	n := int(math.Min(math.Ceil(span), float64(2*(w+h))))
	for i := 0; i <= n; i++ {
		f := 0.0
		if n > 0 {
			f = float64(i) / float64(n)
		}
		c.Set(int(math.Round(x0+f*(x1-x0))), int(math.Round(y0+f*(y1-y0))))
	}
}

// Label writes l at its projected cell, pulled left so the text fits.
func (c *Canvas) Label(v *Viewport, l *scene.Label) {
	x, y := c.Project(v, l.Pos)
	col, n := int(x)/2, len([]rune(l.Text))
	if col+n > c.Width {
		col = c.Width - n
	}
	c.Text(col, int(y)/4, l.Text)
}

// Text writes s into cells starting at (col, row), clipped to the canvas.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.Grid[row][col] = r
		}
		col++
	}
}

// Render grows v to cover s, then redraws every drawable and label of s.
func (c *Canvas) Render(s *scene.Scene, v *Viewport) {
	v.Fit(s.Bounds())
	c.Clear()
	for _, d := range s.Drawables() {
		for _, seg := range d.Segments() {
			c.Stroke(v, seg)
		}
	}
	for _, l := range s.Labels() {
		c.Label(v, l)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func isBraille(r rune) bool {
	return r >= blankCell && r <= blankCell+0xff
}
