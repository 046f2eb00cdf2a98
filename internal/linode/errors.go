package linode

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrDegenerateEquation indicates a = b = c = 0: no equation to solve.
	ErrDegenerateEquation = errors.New("linode: degenerate equation (a = b = c = 0)")

	// ErrSingularSystem indicates the amplitude system was solved with coincident roots.
	ErrSingularSystem = errors.New("linode: singular amplitude system (coincident roots)")

	// ErrUndefinedDecay indicates a decay constant was requested without a second-order term.
	ErrUndefinedDecay = errors.New("linode: decay constant undefined for a = 0")

	// ErrNonFinite indicates a coefficient, amplitude or sample is NaN or Inf.
	ErrNonFinite = errors.New("linode: non-finite value (NaN or Inf)")

	// ErrParameterBounds indicates an option value is outside its valid range.
	ErrParameterBounds = errors.New("linode: parameter out of valid bounds")
)

// SolveError wraps an error with the equation that produced it.
type SolveError struct {
	Triplet Triplet
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v [a=%g b=%g c=%g k=%g]", e.Wrapped, e.Triplet.A, e.Triplet.B, e.Triplet.C, e.Triplet.K)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
