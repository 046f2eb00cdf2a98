// Package physics maps physical parameters onto linear coefficient triplets.
//
// Each system implements [System], producing the (a, b, c, k) of
// a·x'' + b·x' + c·x = k that package linode solves in closed form:
//
//   - [Spring]: block on a spring, (k/m, friction, 1, k/m·xe) by default
//   - [Pendulum]: small-angle pendulum, (1, 0, g/L, 0)
//   - [Linear]: coefficients given directly
//
// All systems implement [dynamo.Configurable] for runtime parameter
// adjustment. [ODE] exposes any triplet with a ≠ 0 as a [dynamo.System] so
// it can be stepped numerically and checked against the closed form.
//
// # Example
//
//	p := physics.NewPendulum()
//	p.Length = 3
//	sol, err := physics.Solve(p, linode.Initial{X0: 0.5}, linode.DefaultOptions())
//	period, _ := p.Triplet().PseudoPeriod()
package physics
