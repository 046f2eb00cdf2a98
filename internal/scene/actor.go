package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/san-kum/exactsim/internal/linode"
)

var (
	// ErrDetached indicates a frame was delivered to an actor removed from its scene.
	ErrDetached = errors.New("scene: actor is detached")

	// ErrNonMonotonic indicates a negative or NaN frame interval.
	ErrNonMonotonic = errors.New("scene: frame interval must be non-negative")

	// ErrUnknownActor indicates an id that is not part of the scene.
	ErrUnknownActor = errors.New("scene: unknown actor")
)

type ActorState int

const (
	StateInitialized ActorState = iota
	StateRunning
	StateDetached
)

func (s ActorState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateDetached:
		return "detached"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Actor is a drawable driven by a closed-form function of time.
type Actor interface {
	ID() uuid.UUID
	Name() string
	State() ActorState
	// Time is the time of the next sample.
	Time() float64
	// Value is the last sampled position.
	Value() float64
	// Check reports the error Advance(dt) would return, without side effects.
	Check(dt float64) error
	Advance(dt float64) error
	Detach()
	Drawable() Drawable
}

// clock is the {t, x} state shared by every actor.
type clock struct {
	id    uuid.UUID
	name  string
	state ActorState
	t     float64
	x     float64
	f     func(float64) float64
}

func newClock(name string, x0 float64, f func(float64) float64) clock {
	return clock{id: uuid.New(), name: name, x: x0, f: f}
}

func (c *clock) ID() uuid.UUID     { return c.id }
func (c *clock) Name() string      { return c.name }
func (c *clock) State() ActorState { return c.state }
func (c *clock) Time() float64     { return c.t }
func (c *clock) Value() float64    { return c.x }
func (c *clock) Detach()           { c.state = StateDetached }

func (c *clock) Check(dt float64) error {
	_, err := c.sample(dt)
	return err
}

func (c *clock) sample(dt float64) (float64, error) {
	if c.state == StateDetached {
		return 0, fmt.Errorf("%w: %s", ErrDetached, c.name)
	}
	if dt < 0 || math.IsNaN(dt) {
		return 0, fmt.Errorf("%w: %s got dt=%g", ErrNonMonotonic, c.name, dt)
	}
	x := c.f(c.t)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %s at t=%g", linode.ErrNonFinite, c.name, c.t)
	}
	return x, nil
}

// tick samples x at the current time, returns the change since the last
// sample, then moves the clock forward by dt. On error the clock is left
// unchanged.
func (c *clock) tick(dt float64) (float64, error) {
	x, err := c.sample(dt)
	if err != nil {
		return 0, err
	}
	dx := x - c.x
	c.t += dt
	c.x = x
	c.state = StateRunning
	return dx, nil
}
