package scene

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/san-kum/exactsim/internal/logging"
)

// Scene is an ordered update set of actors plus static drawables.
// It is not safe for concurrent use.
type Scene struct {
	Name    string
	actors  []Actor
	static  []Drawable
	labels  []*Label
	elapsed float64
	frames  int
	log     *logging.Logger
}

func New(name string, log *logging.Logger) *Scene {
	if log == nil {
		log = logging.Nop()
	}
	return &Scene{Name: name, log: log.Named("scene").With(logging.String("scene", name))}
}

func (s *Scene) Add(a Actor) {
	s.actors = append(s.actors, a)
	s.log.Debug("actor added", logging.String("actor", a.Name()), logging.String("id", a.ID().String()))
}

func (s *Scene) AddStatic(d ...Drawable) {
	s.static = append(s.static, d...)
}

func (s *Scene) AddLabel(l ...*Label) {
	s.labels = append(s.labels, l...)
}

// Remove detaches the actor and drops it from the update set.
func (s *Scene) Remove(id uuid.UUID) error {
	for i, a := range s.actors {
		if a.ID() == id {
			a.Detach()
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			s.log.Debug("actor removed", logging.String("actor", a.Name()))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownActor, id)
}

func (s *Scene) Actor(name string) (Actor, bool) {
	for _, a := range s.actors {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

func (s *Scene) Actors() []Actor {
	return append([]Actor(nil), s.actors...)
}

func (s *Scene) Labels() []*Label {
	return append([]*Label(nil), s.labels...)
}

// Tick delivers one frame of length dt to every actor in insertion order.
// Every actor is checked first, so a frame either reaches all actors or
// none of them.
func (s *Scene) Tick(dt float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return fmt.Errorf("%w: dt=%g", ErrNonMonotonic, dt)
	}
	for _, a := range s.actors {
		if err := a.Check(dt); err != nil {
			s.log.Error("frame rejected", logging.String("actor", a.Name()), logging.Err(err))
			return err
		}
	}
	for _, a := range s.actors {
		if err := a.Advance(dt); err != nil {
			s.log.Error("advance failed", logging.String("actor", a.Name()), logging.Err(err))
			return err
		}
	}
	s.elapsed += dt
	s.frames++
	return nil
}

func (s *Scene) Elapsed() float64 { return s.elapsed }
func (s *Scene) Frames() int      { return s.frames }

// Drawables returns static drawables first, then actors in order.
func (s *Scene) Drawables() []Drawable {
	out := make([]Drawable, 0, len(s.static)+len(s.actors))
	out = append(out, s.static...)
	for _, a := range s.actors {
		out = append(out, a.Drawable())
	}
	return out
}

// Bounds covers every drawable and label in the scene.
func (s *Scene) Bounds() (lo, hi Point) {
	g := NewGroup(s.Drawables()...)
	for _, l := range s.labels {
		g.Add(l)
	}
	return Bounds(g)
}
