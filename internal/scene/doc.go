// Package scene holds the drawable primitives and the per-frame actors that
// turn closed-form solutions into motion.
//
// An actor owns a group of drawables and a clock {t, x}. Each call to
// Advance samples x(t), applies the change since the previous frame as a
// geometric transform and moves the clock forward:
//
//	sol, _ := physics.Solve(pendulum, linode.Initial{X0: 0.5}, linode.DefaultOptions())
//	a := scene.NewPendulumActor("p1", sol, pendulum.Length, 0.5)
//	s := scene.New("demo", logging.Nop())
//	s.Add(a)
//	for i := 0; i < 60; i++ {
//	    _ = s.Tick(1.0 / 60)
//	}
//
// Actors move through Initialized, Running and Detached. A detached actor
// rejects further frames with [ErrDetached].
package scene
