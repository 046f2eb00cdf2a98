package linode

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Kind classifies the closed form an equation admits.
type Kind int

const (
	KindDistinct Kind = iota
	KindRepeated
	KindFirstOrder
	KindAlgebraic
)

func (k Kind) String() string {
	switch k {
	case KindDistinct:
		return "distinct"
	case KindRepeated:
		return "repeated"
	case KindFirstOrder:
		return "first-order"
	case KindAlgebraic:
		return "algebraic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Roots of the characteristic polynomial. First-order equations carry their
// single root in both R1 and R2; algebraic equations have none.
type Roots struct {
	Kind Kind
	R1   complex128
	R2   complex128
}

// Oscillatory reports whether the roots have a non-zero imaginary part.
func (r Roots) Oscillatory() bool {
	return r.Kind == KindDistinct && imag(r.R1) != 0
}

// CharacteristicRoots solves a·r² + b·r + c = 0.
//
// In exact mode r2 = (−b − √D)/(2a). In literal mode r2 = conj(r1), which
// collapses real distinct roots into the repeated case.
func CharacteristicRoots(tr Triplet, opts Options) (Roots, error) {
	if err := tr.Validate(); err != nil {
		return Roots{}, err
	}
	opts, err := opts.normalize()
	if err != nil {
		return Roots{}, err
	}

	switch {
	case tr.A != 0:
		sq := cmplx.Sqrt(complex(tr.Discriminant(), 0))
		twoA := complex(2*tr.A, 0)
		r1 := (complex(-tr.B, 0) + sq) / twoA

		var r2 complex128
		if opts.Mode == ModeLiteral {
			r2 = cmplx.Conj(r1)
		} else {
			r2 = (complex(-tr.B, 0) - sq) / twoA
		}

		if rootsEqual(r1, r2, opts.Tolerance) {
			return Roots{Kind: KindRepeated, R1: r1, R2: r1}, nil
		}
		return Roots{Kind: KindDistinct, R1: r1, R2: r2}, nil

	case tr.B != 0:
		r := -tr.C / tr.B
		if opts.Mode == ModeLiteral {
			r = -tr.A / tr.B
		}
		root := complex(r, 0)
		return Roots{Kind: KindFirstOrder, R1: root, R2: root}, nil

	default:
		return Roots{Kind: KindAlgebraic}, nil
	}
}

func rootsEqual(r1, r2 complex128, tol float64) bool {
	scale := math.Max(1, cmplx.Abs(r1))
	return cmplx.Abs(r1-r2) <= tol*scale
}
