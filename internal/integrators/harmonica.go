package integrators

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

var ErrNotASpring = errors.New("integrators: triplet is not a damped spring")

// Harmonica steps a·x'' + b·x' + c·x = k with harmonica's analytic spring,
// using ω = √(c/a), ζ = b/(2aω) and equilibrium k/c. It ignores the System
// passed to Step; the triplet fixed at construction drives it.
type Harmonica struct {
	omega, zeta, eq float64

	dt     float64
	spring harmonica.Spring
}

func NewHarmonica(tr linode.Triplet) (*Harmonica, error) {
	if tr.A == 0 || tr.C/tr.A <= 0 {
		return nil, fmt.Errorf("%w: need c/a > 0, got a=%g c=%g", ErrNotASpring, tr.A, tr.C)
	}
	omega := math.Sqrt(tr.C / tr.A)
	h := &Harmonica{
		omega: omega,
		zeta:  tr.B / tr.A / (2 * omega),
		eq:    tr.K / tr.C,
	}
	if math.IsNaN(h.zeta) || math.IsInf(h.zeta, 0) {
		return nil, fmt.Errorf("%w: damping ratio is not finite", ErrNotASpring)
	}
	return h, nil
}

func (h *Harmonica) AngularFrequency() float64 { return h.omega }
func (h *Harmonica) DampingRatio() float64     { return h.zeta }
func (h *Harmonica) Equilibrium() float64      { return h.eq }

func (h *Harmonica) Step(_ dynamo.System, x dynamo.State, _, dt float64) dynamo.State {
	if dt != h.dt {
		h.dt = dt
		h.spring = harmonica.NewSpring(dt, h.omega, h.zeta)
	}
	pos, vel := h.spring.Update(x[0], x[1], h.eq)
	return dynamo.State{pos, vel}
}
