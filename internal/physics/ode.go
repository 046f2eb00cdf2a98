package physics

import (
	"fmt"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

// ODE is a second-order triplet rewritten as the first-order system
// (x, v)' = (v, (k − b·v − c·x)/a).
type ODE struct {
	Coeffs linode.Triplet
}

func NewODE(tr linode.Triplet) (*ODE, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	if tr.A == 0 {
		return nil, fmt.Errorf("%w: a = 0 has no second-order state", dynamo.ErrParameterBounds)
	}
	return &ODE{Coeffs: tr}, nil
}

func (o *ODE) StateDim() int { return 2 }

func (o *ODE) Derive(x dynamo.State, t float64) dynamo.State {
	tr := o.Coeffs
	return dynamo.State{x[1], (tr.K - tr.B*x[1] - tr.C*x[0]) / tr.A}
}

// Energy is ½·a·v² + ½·c·(x − k/c)², conserved when b = 0.
func (o *ODE) Energy(x dynamo.State) float64 {
	tr := o.Coeffs
	e := 0.5 * tr.A * x[1] * x[1]
	if tr.C != 0 {
		d := x[0] - tr.K/tr.C
		e += 0.5 * tr.C * d * d
	}
	return e
}
