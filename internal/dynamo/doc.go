// Package dynamo provides the state-space primitives used by the numerical
// reference path.
//
// Closed-form solutions are produced by package linode. The types here let
// the same equations be stepped numerically so the two can be compared:
//
//   - [State]: vector representing system state
//   - [System]: interface for first-order systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Metric]: scalar observer over a trajectory
//
// # Example
//
//	sys := physics.NewODE(linode.Triplet{A: 1, B: 0.5, C: 4})
//	integ := integrators.NewRK4()
//	x := dynamo.State{1, 0}
//	for i := 0; i < 1000; i++ {
//	    x = integ.Step(sys, x, float64(i)*dt, dt)
//	}
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Create one integrator per goroutine.
package dynamo
