package viz

import (
	"math"

	"github.com/san-kum/exactsim/internal/scene"
)

// Viewport is the world-space box a Canvas projects onto its dots.
type Viewport struct {
	Lo, Hi scene.Point
	Margin float64
	set    bool
}

func NewViewport(margin float64) *Viewport {
	return &Viewport{Margin: margin}
}

// Fit grows the viewport to include the box lo..hi. It never shrinks, so
// the picture does not jitter as objects move.
func (v *Viewport) Fit(lo, hi scene.Point) {
	lo = lo.Sub(scene.Point{X: v.Margin, Y: v.Margin})
	hi = hi.Add(scene.Point{X: v.Margin, Y: v.Margin})
	if !v.set {
		v.Lo, v.Hi, v.set = lo, hi, true
		return
	}
	v.Lo.X = math.Min(v.Lo.X, lo.X)
	v.Lo.Y = math.Min(v.Lo.Y, lo.Y)
	v.Hi.X = math.Max(v.Hi.X, hi.X)
	v.Hi.Y = math.Max(v.Hi.Y, hi.Y)
}
