// Package linode solves second-order linear ODEs with constant coefficients
// in closed form.
//
// An equation is described by a [Triplet] (a, b, c, k) encoding
//
//	a·x'' + b·x' + c·x = k
//
// together with an [Initial] condition (x0, v0). The package provides:
//
//   - [CharacteristicRoots]: roots of a·r² + b·r + c = 0, classified by [Kind]
//   - [Build]: the closed-form [Solution], sampled as a function of time
//   - [Triplet.PseudoPeriod] and [Triplet.DecayConstant]: derived quantities
//   - [Cache]: memoized solutions keyed by their inputs
//
// # Modes
//
// [ModeExact] returns the true solution of the ODE. [ModeLiteral] reproduces
// the literal formulas of the animation scripts, including the first-order
// root -a/b, the algebraic constant c/k and the conjugate second root.
//
// # Example
//
//	eq := linode.NewEquation(1, 0.5, 4, 0, 1, 0)
//	sol, err := eq.Solve(linode.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	x := sol.Position(2.5)
//
// Solutions are immutable once built and safe for concurrent reads.
package linode
