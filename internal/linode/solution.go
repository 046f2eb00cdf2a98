package linode

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Sample is one point of a trajectory.
type Sample struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	V float64 `json:"v"`
}

// Solution is the closed form
//
//	x(t) = (A1 + B1·t)·e^(r1·t) + A2·e^(r2·t) + P0 + P1·t + P2·t²
//
// Every kind of equation is a special case: distinct roots leave B1 = 0,
// repeated roots leave A2 = 0, first-order and algebraic equations keep only
// the terms they need.
type Solution struct {
	Kind  Kind
	Roots Roots
	Mode  Mode

	A1, B1, A2 complex128
	P0, P1, P2 float64
}

// At evaluates x(t). Physical consumers take the real part.
func (s *Solution) At(t float64) complex128 {
	tc := complex(t, 0)
	x := complex(s.P0+s.P1*t+s.P2*t*t, 0)
	if s.A1 != 0 || s.B1 != 0 {
		x += (s.A1 + s.B1*tc) * cmplx.Exp(s.Roots.R1*tc)
	}
	if s.A2 != 0 {
		x += s.A2 * cmplx.Exp(s.Roots.R2*tc)
	}
	return x
}

// Rate evaluates x'(t).
func (s *Solution) Rate(t float64) complex128 {
	tc := complex(t, 0)
	r1, r2 := s.Roots.R1, s.Roots.R2
	v := complex(s.P1+2*s.P2*t, 0)
	if s.A1 != 0 || s.B1 != 0 {
		v += (s.B1 + r1*(s.A1+s.B1*tc)) * cmplx.Exp(r1*tc)
	}
	if s.A2 != 0 {
		v += r2 * s.A2 * cmplx.Exp(r2*tc)
	}
	return v
}

// Accel evaluates x''(t).
func (s *Solution) Accel(t float64) complex128 {
	tc := complex(t, 0)
	r1, r2 := s.Roots.R1, s.Roots.R2
	a := complex(2*s.P2, 0)
	if s.A1 != 0 || s.B1 != 0 {
		a += (2*r1*s.B1 + r1*r1*(s.A1+s.B1*tc)) * cmplx.Exp(r1*tc)
	}
	if s.A2 != 0 {
		a += r2 * r2 * s.A2 * cmplx.Exp(r2*tc)
	}
	return a
}

func (s *Solution) Position(t float64) float64 { return real(s.At(t)) }
func (s *Solution) Velocity(t float64) float64 { return real(s.Rate(t)) }

// Func returns x(t) as a plain function value.
func (s *Solution) Func() func(float64) complex128 {
	return s.At
}

// Sample evaluates n points starting at t0 spaced by dt. It stops at the
// first point whose position or velocity is not finite.
func (s *Solution) Sample(t0, dt float64, n int) ([]Sample, error) {
	if n <= 0 {
		return []Sample{}, nil
	}
	out := make([]Sample, n)
	for i := range out {
		t := t0 + float64(i)*dt
		x, v := s.Position(t), s.Velocity(t)
		if !finite(x) || !finite(v) {
			return nil, fmt.Errorf("%w: x(%g) = %g, x'(%g) = %g", ErrNonFinite, t, x, t, v)
		}
		out[i] = Sample{T: t, X: x, V: v}
	}
	return out, nil
}

// Build derives the closed-form solution of tr with initial condition ic.
func Build(tr Triplet, ic Initial, opts Options) (*Solution, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if !finite(ic.X0) || !finite(ic.V0) {
		return nil, &SolveError{Triplet: tr, Wrapped: ErrNonFinite}
	}

	roots, err := CharacteristicRoots(tr, opts)
	if err != nil {
		return nil, err
	}

	s := &Solution{Kind: roots.Kind, Roots: roots, Mode: opts.Mode}
	literal := opts.Mode == ModeLiteral

	switch roots.Kind {
	case KindDistinct:
		p := particularFor(tr, opts.Mode)
		a1, a2, err := Amplitudes(roots.R1, roots.R2, ic.X0-p.at(0), ic.V0-p.rate(0), opts.Tolerance)
		if err != nil {
			return nil, &SolveError{Triplet: tr, Wrapped: err}
		}
		s.A1, s.A2 = a1, a2
		s.setParticular(p)

	case KindRepeated:
		if literal {
			s.A1 = complex(ic.X0-tr.K, 0)
			s.P0 = tr.K
			break
		}
		p := particularFor(tr, opts.Mode)
		c1 := complex(ic.X0-p.at(0), 0)
		s.A1 = c1
		s.B1 = complex(ic.V0-p.rate(0), 0) - roots.R1*c1
		s.setParticular(p)

	case KindFirstOrder:
		if literal {
			s.A1 = complex(ic.X0-tr.K, 0)
			break
		}
		p := particularFor(tr, opts.Mode)
		s.A1 = complex(ic.X0-p.at(0), 0)
		s.setParticular(p)

	case KindAlgebraic:
		if literal {
			s.P0 = tr.C / tr.K
		} else {
			s.P0 = tr.K / tr.C
		}
	}

	if !s.finite() {
		return nil, &SolveError{Triplet: tr, Wrapped: ErrNonFinite}
	}
	return s, nil
}

// Amplitudes solves A1 + A2 = x0, r1·A1 + r2·A2 = v0.
func Amplitudes(r1, r2 complex128, x0, v0, tol float64) (complex128, complex128, error) {
	if rootsEqual(r1, r2, tol) {
		return 0, 0, ErrSingularSystem
	}
	a1 := (complex(v0, 0) - r2*complex(x0, 0)) / (r1 - r2)
	a2 := complex(x0, 0) - a1
	return a1, a2, nil
}

// particular is a polynomial particular solution p0 + p1·t + p2·t².
type particular struct {
	p0, p1, p2 float64
}

func (p particular) at(t float64) float64   { return p.p0 + p.p1*t + p.p2*t*t }
func (p particular) rate(t float64) float64 { return p.p1 + 2*p.p2*t }

func particularFor(tr Triplet, mode Mode) particular {
	if mode == ModeLiteral {
		return particular{p0: tr.K}
	}
	switch {
	case tr.C != 0:
		return particular{p0: tr.K / tr.C}
	case tr.B != 0:
		return particular{p1: tr.K / tr.B}
	case tr.A != 0:
		return particular{p2: tr.K / (2 * tr.A)}
	}
	return particular{}
}

func (s *Solution) setParticular(p particular) {
	s.P0, s.P1, s.P2 = p.p0, p.p1, p.p2
}

func (s *Solution) finite() bool {
	for _, c := range []complex128{s.A1, s.B1, s.A2, s.Roots.R1, s.Roots.R2} {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return finite(s.P0) && finite(s.P1) && finite(s.P2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
