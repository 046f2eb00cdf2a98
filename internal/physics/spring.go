package physics

import (
	"fmt"

	"github.com/san-kum/exactsim/internal/linode"
)

const (
	DefaultStiffness   = 10.0
	DefaultMass        = 1.0
	DefaultEquilibrium = 2.0
)

// Spring is a block of mass Mass on a spring of stiffness Stiffness whose
// rest length is Equilibrium.
//
// The default mapping is (k/m, friction, 1, k/m·xe). With Newtonian set
// the mapping is (1, friction/m, k/m, k/m·xe), the equation of motion
// m·x'' = −k·(x − xe) − friction·x' divided by m.
type Spring struct {
	Stiffness   float64
	Mass        float64
	Friction    float64
	Equilibrium float64
	Newtonian   bool
}

func NewSpring() *Spring {
	return &Spring{
		Stiffness:   DefaultStiffness,
		Mass:        DefaultMass,
		Equilibrium: DefaultEquilibrium,
	}
}

func (s *Spring) Name() string { return "spring" }

func (s *Spring) Triplet() linode.Triplet {
	w := s.Stiffness / s.Mass
	if s.Newtonian {
		return linode.Triplet{A: 1, B: s.Friction / s.Mass, C: w, K: w * s.Equilibrium}
	}
	return linode.Triplet{A: w, B: s.Friction, C: 1, K: w * s.Equilibrium}
}

func (s *Spring) Validate() error {
	if err := requirePositive("mass", s.Mass); err != nil {
		return err
	}
	for name, v := range map[string]float64{"stiffness": s.Stiffness, "friction": s.Friction, "equilibrium": s.Equilibrium} {
		if err := requireFinite(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Spring) GetParams() map[string]float64 {
	return map[string]float64{
		"stiffness":   s.Stiffness,
		"mass":        s.Mass,
		"friction":    s.Friction,
		"equilibrium": s.Equilibrium,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "stiffness":
		s.Stiffness = value
	case "mass":
		if err := requirePositive("mass", value); err != nil {
			return err
		}
		s.Mass = value
	case "friction":
		s.Friction = value
	case "equilibrium":
		s.Equilibrium = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
