package scene

import (
	"github.com/san-kum/exactsim/internal/linode"
)

const BobRadius = 0.2

// PendulumActor draws a rod from Pivot to a bob and rotates both about the
// pivot by the change in angle each frame.
type PendulumActor struct {
	clock
	Pivot Point
	Rod   *Line
	Bob   *Circle
	group *Group
}

func NewPendulumActor(name string, sol *linode.Solution, length, theta0 float64) *PendulumActor {
	return NewPendulumActorAt(name, sol, Point{}, length, theta0)
}

func NewPendulumActorAt(name string, sol *linode.Solution, pivot Point, length, theta0 float64) *PendulumActor {
	tip := Point{0, -length}.Rotate(theta0).Add(pivot)
	rod := NewLine(pivot, tip)
	bob := NewCircle(tip, BobRadius)
	return &PendulumActor{
		clock: newClock(name, theta0, sol.Position),
		Pivot: pivot,
		Rod:   rod,
		Bob:   bob,
		group: NewGroup(rod, bob),
	}
}

func (p *PendulumActor) Advance(dt float64) error {
	dTheta, err := p.tick(dt)
	if err != nil {
		return err
	}
	if dTheta != 0 {
		RotateAbout(p.group, p.Pivot, dTheta)
	}
	return nil
}

func (p *PendulumActor) Drawable() Drawable { return p.group }
