package scene

import (
	"math"

	"github.com/san-kum/exactsim/internal/linode"
)

// MinCoilWidth is the narrowest the coil is drawn; positions at or below
// zero would otherwise collapse or mirror it.
const MinCoilWidth = 1e-3

type CoilGeometry struct {
	Height float64
	Zags   int
	Block  float64
}

func DefaultCoilGeometry() CoilGeometry {
	return CoilGeometry{Height: 1, Zags: 8, Block: 1}
}

// SpringActor draws a coil anchored at x = 0 and a square block attached to
// its free end. The coil width equals the block position.
type SpringActor struct {
	clock
	Coil  *Group
	Block *Polygon
	group *Group
}

func NewSpringActor(name string, sol *linode.Solution, x0 float64, geom CoilGeometry) *SpringActor {
	coil := ZigZag(math.Max(x0, MinCoilWidth), geom.Height, geom.Zags)
	block := NewRect(Point{x0, geom.Height/2 - geom.Block/2}, geom.Block, geom.Block)
	return &SpringActor{
		clock: newClock(name, x0, sol.Position),
		Coil:  coil,
		Block: block,
		group: NewGroup(coil, block),
	}
}

func (s *SpringActor) Advance(dt float64) error {
	prev := s.x
	dx, err := s.tick(dt)
	if err != nil {
		return err
	}
	if dx == 0 {
		return nil
	}
	StretchToFitWidth(s.Coil, math.Max(s.x, MinCoilWidth))
	Shift(s.Coil, (math.Max(s.x, MinCoilWidth)-math.Max(prev, MinCoilWidth))/2, 0)
	Shift(s.Block, dx, 0)
	return nil
}

func (s *SpringActor) Drawable() Drawable { return s.group }
