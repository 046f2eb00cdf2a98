package linode

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// DefaultTolerance is the relative distance under which two roots are
// considered equal.
const DefaultTolerance = 1e-9

// Mode selects between the exact solution and the literal scripted formulas.
type Mode int

const (
	ModeExact Mode = iota
	ModeLiteral
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeLiteral:
		return "literal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "exact" or "literal" (case-insensitive). Empty means exact.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return ModeExact, nil
	case "literal":
		return ModeLiteral, nil
	default:
		return ModeExact, fmt.Errorf("unknown mode: %s (available: exact, literal)", s)
	}
}

type Options struct {
	Mode      Mode
	Tolerance float64
}

func DefaultOptions() Options {
	return Options{
		Mode:      ModeExact,
		Tolerance: DefaultTolerance,
	}
}

func (o Options) normalize() (Options, error) {
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return o, fmt.Errorf("%w: tolerance %g", ErrParameterBounds, o.Tolerance)
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	return o, nil
}

// Triplet holds the coefficients of a·x'' + b·x' + c·x = k.
type Triplet struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
	K float64 `json:"k" yaml:"k"`
}

// Initial is the position and velocity at t = 0.
type Initial struct {
	X0 float64 `json:"x0" yaml:"x0"`
	V0 float64 `json:"v0" yaml:"v0"`
}

func (tr Triplet) Discriminant() float64 {
	return tr.B*tr.B - 4*tr.A*tr.C
}

func (tr Triplet) IsDegenerate() bool {
	return tr.A == 0 && tr.B == 0 && tr.C == 0
}

func (tr Triplet) Validate() error {
	for _, v := range []float64{tr.A, tr.B, tr.C, tr.K} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SolveError{Triplet: tr, Wrapped: ErrNonFinite}
		}
	}
	if tr.IsDegenerate() {
		return &SolveError{Triplet: tr, Wrapped: ErrDegenerateEquation}
	}
	return nil
}

// PseudoPeriod returns |2π / r_im| where r_im = i·√(b²−4ac)/(2a).
//
// The value is reported whenever the radical is below 1, not below 0, so
// slightly overdamped systems still get a period. Non-oscillatory or
// first-order equations report false.
func (tr Triplet) PseudoPeriod() (float64, bool) {
	if tr.A == 0 {
		return 0, false
	}
	radical := tr.Discriminant()
	if !(radical < 1) {
		return 0, false
	}
	rIm := cmplx.Sqrt(complex(radical, 0)) / complex(2*tr.A, 0) * 1i
	if rIm == 0 {
		return 0, false
	}
	period := cmplx.Abs(complex(2*math.Pi, 0) / rIm)
	if math.IsNaN(period) || math.IsInf(period, 0) {
		return 0, false
	}
	return period, true
}

// DecayConstant returns -b/a/2, the real part of the complex roots.
func (tr Triplet) DecayConstant() (float64, error) {
	if tr.A == 0 {
		return 0, &SolveError{Triplet: tr, Wrapped: ErrUndefinedDecay}
	}
	return -tr.B / tr.A / 2, nil
}

// Equation pairs a coefficient triplet with its initial condition.
type Equation struct {
	Triplet
	Initial
}

func NewEquation(a, b, c, k, x0, v0 float64) *Equation {
	return &Equation{
		Triplet: Triplet{A: a, B: b, C: c, K: k},
		Initial: Initial{X0: x0, V0: v0},
	}
}

func (e *Equation) Solve(opts Options) (*Solution, error) {
	return Build(e.Triplet, e.Initial, opts)
}
