package physics

import (
	"fmt"

	"github.com/san-kum/exactsim/internal/linode"
)

// Linear exposes a coefficient triplet directly.
type Linear struct {
	Coeffs linode.Triplet
}

func NewLinear(tr linode.Triplet) *Linear {
	return &Linear{Coeffs: tr}
}

func (l *Linear) Name() string { return "triplet" }

func (l *Linear) Triplet() linode.Triplet { return l.Coeffs }

func (l *Linear) Validate() error { return l.Coeffs.Validate() }

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{"a": l.Coeffs.A, "b": l.Coeffs.B, "c": l.Coeffs.C, "k": l.Coeffs.K}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "a":
		l.Coeffs.A = value
	case "b":
		l.Coeffs.B = value
	case "c":
		l.Coeffs.C = value
	case "k":
		l.Coeffs.K = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
