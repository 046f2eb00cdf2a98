package scene_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/physics"
	"github.com/san-kum/exactsim/internal/scene"
)

func pendulumSolution(length, theta0 float64) *linode.Solution {
	p := &physics.Pendulum{Length: length, Gravity: 9.81}
	sol, err := physics.Solve(p, linode.Initial{X0: theta0}, linode.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return sol
}

var _ = Describe("PendulumActor", func() {
	var (
		sol   *linode.Solution
		actor *scene.PendulumActor
	)

	BeforeEach(func() {
		sol = pendulumSolution(1, 0.5)
		actor = scene.NewPendulumActor("p", sol, 1, 0.5)
	})

	It("starts initialized at the initial angle", func() {
		Expect(actor.State()).To(Equal(scene.StateInitialized))
		Expect(actor.Time()).To(Equal(0.0))
		Expect(actor.Value()).To(Equal(0.5))
		Expect(actor.Bob.Center.X).To(BeNumerically("~", math.Sin(0.5), 1e-12))
		Expect(actor.Bob.Center.Y).To(BeNumerically("~", -math.Cos(0.5), 1e-12))
		Expect(actor.ID().String()).NotTo(BeEmpty())
	})

	It("samples before moving the clock", func() {
		Expect(actor.Advance(0.1)).To(Succeed())
		Expect(actor.State()).To(Equal(scene.StateRunning))
		Expect(actor.Time()).To(BeNumerically("~", 0.1, 1e-15))
		Expect(actor.Value()).To(BeNumerically("~", 0.5, 1e-12))

		Expect(actor.Advance(0.1)).To(Succeed())
		Expect(actor.Value()).To(BeNumerically("~", sol.Position(0.1), 1e-12))
	})

	It("accumulates time as the sum of frame intervals", func() {
		dts := []float64{0.1, 0.25, 0, 0.4, 1.0 / 60}
		sum := 0.0
		for _, dt := range dts {
			Expect(actor.Advance(dt)).To(Succeed())
			sum += dt
		}
		Expect(actor.Time()).To(BeNumerically("~", sum, 1e-12))
	})

	It("keeps the bob on the arc at the sampled angle", func() {
		for i := 0; i < 200; i++ {
			Expect(actor.Advance(1.0 / 60)).To(Succeed())
		}
		theta := actor.Value()
		Expect(actor.Bob.Center.X).To(BeNumerically("~", math.Sin(theta), 1e-9))
		Expect(actor.Bob.Center.Y).To(BeNumerically("~", -math.Cos(theta), 1e-9))
		Expect(actor.Rod.A).To(Equal(scene.Point{}))
		Expect(actor.Rod.B.X).To(BeNumerically("~", actor.Bob.Center.X, 1e-12))
	})

	It("rotates about an offset pivot", func() {
		pivot := scene.Point{X: 2, Y: 3}
		a := scene.NewPendulumActorAt("q", pendulumSolution(3, 0.5), pivot, 3, 0.5)
		for i := 0; i < 90; i++ {
			Expect(a.Advance(1.0 / 60)).To(Succeed())
		}
		d := a.Bob.Center.Sub(pivot)
		Expect(math.Hypot(d.X, d.Y)).To(BeNumerically("~", 3, 1e-9))
		Expect(a.Rod.A).To(Equal(pivot))
	})

	It("rejects negative intervals without changing state", func() {
		Expect(actor.Advance(0.2)).To(Succeed())
		err := actor.Advance(-0.1)
		Expect(err).To(MatchError(scene.ErrNonMonotonic))
		Expect(actor.Time()).To(BeNumerically("~", 0.2, 1e-15))
		Expect(actor.Advance(math.NaN())).To(MatchError(scene.ErrNonMonotonic))
	})

	It("refuses frames once detached", func() {
		actor.Detach()
		Expect(actor.State()).To(Equal(scene.StateDetached))
		Expect(actor.Advance(0.1)).To(MatchError(scene.ErrDetached))
		Expect(actor.Time()).To(Equal(0.0))
	})
})

var _ = Describe("SpringActor", func() {
	var actor *scene.SpringActor

	BeforeEach(func() {
		s := &physics.Spring{Stiffness: 10, Mass: 1, Equilibrium: 2, Friction: 1, Newtonian: true}
		sol, err := physics.Solve(s, linode.Initial{X0: 0.5}, linode.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		actor = scene.NewSpringActor("s", sol, 0.5, scene.DefaultCoilGeometry())
	})

	It("builds the coil out to the block", func() {
		lo, hi := scene.Bounds(actor.Coil)
		Expect(lo.X).To(BeNumerically("~", 0, 1e-12))
		Expect(hi.X).To(BeNumerically("~", 0.5, 1e-12))
		blo, _ := scene.Bounds(actor.Block)
		Expect(blo.X).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("stretches the coil with its left edge anchored", func() {
		for i := 0; i < 120; i++ {
			Expect(actor.Advance(1.0 / 60)).To(Succeed())

			lo, hi := scene.Bounds(actor.Coil)
			Expect(lo.X).To(BeNumerically("~", 0, 1e-9))
			Expect(hi.X).To(BeNumerically("~", actor.Value(), 1e-9))

			blo, _ := scene.Bounds(actor.Block)
			Expect(blo.X).To(BeNumerically("~", actor.Value(), 1e-9))
		}
		Expect(actor.Value()).To(BeNumerically(">", 0.5))
	})

	It("groups coil and block in one drawable", func() {
		Expect(actor.Drawable().Segments()).To(HaveLen(scene.DefaultCoilGeometry().Zags + 4))
	})
})

var _ = Describe("SpringActor without friction", func() {
	var (
		sol   *linode.Solution
		actor *scene.SpringActor
	)

	BeforeEach(func() {
		s := &physics.Spring{Stiffness: 10, Mass: 1, Equilibrium: 2, Friction: 0}
		var err error
		sol, err = physics.Solve(s, linode.Initial{X0: 0.5, V0: 0}, linode.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		actor = scene.NewSpringActor("s", sol, 0.5, scene.DefaultCoilGeometry())
	})

	It("starts at the initial position", func() {
		Expect(sol.Position(0)).To(BeNumerically("~", 0.5, 1e-9))
		Expect(actor.Value()).To(Equal(0.5))
	})

	It("accumulates time as the sum of frame intervals", func() {
		dts := []float64{1.0 / 60, 0.2, 0, 0.05, 1.0 / 30}
		sum := 0.0
		for _, dt := range dts {
			Expect(actor.Advance(dt)).To(Succeed())
			sum += dt
		}
		Expect(actor.Time()).To(BeNumerically("~", sum, 1e-12))
		Expect(actor.State()).To(Equal(scene.StateRunning))
	})
})

var _ = Describe("SpringActor with a runaway solution", func() {
	var actor *scene.SpringActor

	BeforeEach(func() {
		s := &physics.Spring{Stiffness: 10, Mass: 1e-6, Friction: -1, Equilibrium: 2, Newtonian: true}
		sol, err := physics.Solve(s, linode.Initial{X0: 0.5}, linode.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		actor = scene.NewSpringActor("s", sol, 0.5, scene.DefaultCoilGeometry())
	})

	It("fails instead of drawing non-finite positions", func() {
		Expect(actor.Advance(1.0 / 60)).To(Succeed())
		blo, bhi := scene.Bounds(actor.Block)

		err := actor.Advance(1.0 / 60)
		Expect(err).To(MatchError(linode.ErrNonFinite))
		Expect(actor.Check(1.0 / 60)).To(MatchError(linode.ErrNonFinite))

		Expect(actor.Time()).To(BeNumerically("~", 1.0/60, 1e-15))
		Expect(math.IsNaN(actor.Value())).To(BeFalse())
		lo, hi := scene.Bounds(actor.Block)
		Expect(lo).To(Equal(blo))
		Expect(hi).To(Equal(bhi))
	})
})
