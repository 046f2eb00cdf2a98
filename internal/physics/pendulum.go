package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/exactsim/internal/linode"
)

const (
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// Pendulum is the small-angle pendulum θ'' + (g/L)·θ = 0.
type Pendulum struct {
	Length  float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Length:  DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) Triplet() linode.Triplet {
	return linode.Triplet{A: 1, B: 0, C: p.Gravity / p.Length, K: 0}
}

func (p *Pendulum) Validate() error {
	if err := requirePositive("length", p.Length); err != nil {
		return err
	}
	return requirePositive("gravity", p.Gravity)
}

// XY projects an angle onto the bob position relative to the pivot.
func (p *Pendulum) XY(theta float64) (x, y float64) {
	return p.Length * math.Sin(theta), -p.Length * math.Cos(theta)
}

// Trajectory composes the closed-form angle with XY.
func (p *Pendulum) Trajectory(sol *linode.Solution) func(t float64) (x, y float64) {
	return func(t float64) (float64, float64) {
		return p.XY(sol.Position(t))
	}
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if err := requirePositive("length", value); err != nil {
			return err
		}
		p.Length = value
	case "gravity":
		if err := requirePositive("gravity", value); err != nil {
			return err
		}
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
