package linode_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/exactsim/internal/linode"
)

func numericRate(sol *linode.Solution, t float64) float64 {
	h := 1e-5
	return (sol.Position(t+h) - sol.Position(t-h)) / (2 * h)
}

func mustSolve(eq *linode.Equation, opts linode.Options) *linode.Solution {
	sol, err := eq.Solve(opts)
	Expect(err).NotTo(HaveOccurred())
	return sol
}

var _ = Describe("Build", func() {
	exact := linode.DefaultOptions()
	literal := linode.Options{Mode: linode.ModeLiteral}

	DescribeTable("matches the initial condition for distinct roots",
		func(a, b, c, k, x0, v0 float64) {
			sol := mustSolve(linode.NewEquation(a, b, c, k, x0, v0), exact)
			Expect(sol.Kind).To(Equal(linode.KindDistinct))
			Expect(sol.Position(0)).To(BeNumerically("~", x0, 1e-6))
			Expect(numericRate(sol, 0)).To(BeNumerically("~", v0, 1e-6))
			Expect(sol.Velocity(0)).To(BeNumerically("~", v0, 1e-9))
		},
		Entry("underdamped", 1.0, 1.0, 2.0, 0.0, 1.0, 0.0),
		Entry("undamped with velocity", 1.0, 0.0, 4.0, 0.0, 0.0, 2.0),
		Entry("overdamped", 1.0, 5.0, 4.0, 0.0, 1.0, 0.0),
		Entry("forced", 2.0, 3.0, 5.0, 10.0, 0.0, 1.0),
		Entry("spring coefficients", 10.0, 0.0, 1.0, 20.0, 0.5, 0.0),
		Entry("no restoring force", 1.0, 2.0, 0.0, 3.0, 1.0, -1.0),
		Entry("negative leading coefficient", -1.0, 0.5, 3.0, 1.0, 0.2, 0.3),
	)

	DescribeTable("satisfies the differential equation in exact mode",
		func(a, b, c, k, x0, v0 float64) {
			sol := mustSolve(linode.NewEquation(a, b, c, k, x0, v0), exact)
			for _, t := range []float64{0, 0.3, 1.1, 2.5} {
				residual := a*real(sol.Accel(t)) + b*sol.Velocity(t) + c*sol.Position(t) - k
				Expect(residual).To(BeNumerically("~", 0, 1e-8))
			}
		},
		Entry("underdamped", 1.0, 1.0, 2.0, 0.0, 1.0, 0.0),
		Entry("forced", 2.0, 3.0, 5.0, 10.0, 0.0, 1.0),
		Entry("critically damped", 1.0, 2.0, 1.0, 4.0, 3.0, 1.0),
		Entry("no restoring force", 1.0, 2.0, 0.0, 3.0, 1.0, -1.0),
		Entry("pure forcing", 1.0, 0.0, 0.0, 2.0, 1.0, 0.5),
	)

	It("evaluates the overdamped closed form", func() {
		sol := mustSolve(linode.NewEquation(1, 5, 4, 0, 1, 0), exact)
		Expect(sol.Position(1)).To(BeNumerically("~", 0.4844007085990117, 1e-9))
		Expect(imag(sol.At(1))).To(BeNumerically("~", 0, 1e-12))
	})

	Context("with a repeated root", func() {
		It("follows (x0-k)e^(rt)+k in literal mode", func() {
			sol := mustSolve(linode.NewEquation(1, 2, 1, 1, 3, 0.7), literal)
			Expect(sol.Kind).To(Equal(linode.KindRepeated))
			for _, t := range []float64{0, 0.5, 1, 2} {
				want := (3-1)*math.Exp(-t) + 1
				Expect(sol.Position(t)).To(BeNumerically("~", want, 1e-9))
			}
		})

		It("agrees with the literal form when v0 = r(x0-k)", func() {
			sol := mustSolve(linode.NewEquation(1, 2, 1, 1, 3, -2), exact)
			for _, t := range []float64{0, 0.5, 1, 2} {
				want := (3-1)*math.Exp(-t) + 1
				Expect(sol.Position(t)).To(BeNumerically("~", want, 1e-9))
			}
		})

		It("honours the initial velocity in exact mode", func() {
			sol := mustSolve(linode.NewEquation(1, 2, 1, 1, 3, 0.7), exact)
			Expect(sol.Position(0)).To(BeNumerically("~", 3, 1e-9))
			Expect(numericRate(sol, 0)).To(BeNumerically("~", 0.7, 1e-6))
		})
	})

	Context("with a first-order equation", func() {
		It("uses -c/b and the static offset in exact mode", func() {
			sol := mustSolve(linode.NewEquation(0, 2, 4, 8, 5, 0), exact)
			Expect(sol.Kind).To(Equal(linode.KindFirstOrder))
			Expect(real(sol.Roots.R1)).To(BeNumerically("~", -2, 1e-12))
			Expect(sol.Position(0)).To(BeNumerically("~", 5, 1e-12))
			Expect(sol.Position(0.7)).To(BeNumerically("~", 2.7397908918248195, 1e-9))
		})

		It("keeps the scripted -a/b root in literal mode", func() {
			sol := mustSolve(linode.NewEquation(0, 2, 4, 8, 5, 0), literal)
			Expect(real(sol.Roots.R1)).To(BeNumerically("==", 0))
			Expect(sol.Position(0)).To(BeNumerically("~", -3, 1e-12))
			Expect(sol.Position(10)).To(BeNumerically("~", -3, 1e-12))
		})

		It("drifts linearly without a restoring term", func() {
			sol := mustSolve(linode.NewEquation(0, 2, 0, 4, 1, 0), exact)
			Expect(sol.Position(3)).To(BeNumerically("~", 7, 1e-12))
		})
	})

	Context("with an algebraic equation", func() {
		It("is the constant k/c", func() {
			sol := mustSolve(linode.NewEquation(0, 0, 2, 4, 9, 9), exact)
			Expect(sol.Kind).To(Equal(linode.KindAlgebraic))
			for _, t := range []float64{0, 1, 100} {
				Expect(sol.Position(t)).To(Equal(2.0))
			}
		})

		It("is the scripted c/k in literal mode", func() {
			sol := mustSolve(linode.NewEquation(0, 0, 2, 4, 0, 0), literal)
			Expect(sol.Position(5)).To(Equal(0.5))
		})

		It("fails fast instead of returning Inf", func() {
			_, err := linode.NewEquation(0, 0, 2, 0, 0, 0).Solve(literal)
			Expect(err).To(MatchError(linode.ErrNonFinite))
		})
	})

	It("rejects the degenerate equation", func() {
		_, err := linode.NewEquation(0, 0, 0, 1, 1, 1).Solve(exact)
		Expect(err).To(MatchError(linode.ErrDegenerateEquation))

		var solveErr *linode.SolveError
		Expect(err).To(BeAssignableToTypeOf(solveErr))
	})

	It("rejects non-finite inputs", func() {
		_, err := linode.NewEquation(1, math.NaN(), 1, 0, 0, 0).Solve(exact)
		Expect(err).To(MatchError(linode.ErrNonFinite))

		_, err = linode.NewEquation(1, 0, 1, 0, math.Inf(1), 0).Solve(exact)
		Expect(err).To(MatchError(linode.ErrNonFinite))
	})

	It("rejects a negative tolerance", func() {
		_, err := linode.NewEquation(1, 0, 1, 0, 1, 0).Solve(linode.Options{Tolerance: -1})
		Expect(err).To(MatchError(linode.ErrParameterBounds))
	})

	It("samples position and velocity on a uniform grid", func() {
		sol := mustSolve(linode.NewEquation(1, 0, 1, 0, 1, 0), exact)
		samples, err := sol.Sample(0, math.Pi/2, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(3))
		Expect(samples[1].T).To(BeNumerically("~", math.Pi/2, 1e-12))
		Expect(samples[1].X).To(BeNumerically("~", 0, 1e-9))
		Expect(samples[1].V).To(BeNumerically("~", -1, 1e-9))
		Expect(samples[2].X).To(BeNumerically("~", -1, 1e-9))
		empty, err := sol.Sample(0, 1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(empty).To(BeEmpty())
	})

	It("refuses to sample past the point where the solution overflows", func() {
		sol := mustSolve(linode.NewEquation(1, -1e6, 1, 0, 1, 0), exact)
		samples, err := sol.Sample(0, 0.01, 100)
		Expect(err).To(MatchError(linode.ErrNonFinite))
		Expect(samples).To(BeNil())
	})

	It("exposes the closed form as a function value", func() {
		sol := mustSolve(linode.NewEquation(1, 1, 2, 0, 1, 0), exact)
		f := sol.Func()
		Expect(f(0.4)).To(Equal(sol.At(0.4)))
	})
})

var _ = Describe("Amplitudes", func() {
	It("solves the two-by-two system", func() {
		a1, a2, err := linode.Amplitudes(-1, -4, 1, 0, linode.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(real(a1)).To(BeNumerically("~", 4.0/3, 1e-12))
		Expect(real(a2)).To(BeNumerically("~", -1.0/3, 1e-12))
	})

	It("refuses coincident roots", func() {
		_, _, err := linode.Amplitudes(complex(-1, 2), complex(-1, 2+1e-12), 1, 0, linode.DefaultTolerance)
		Expect(err).To(MatchError(linode.ErrSingularSystem))
	})
})

var _ = Describe("ModeGap", func() {
	opts := linode.DefaultOptions()

	It("is zero when both modes agree", func() {
		gap, err := linode.ModeGap(linode.Triplet{A: 1, C: 1}, linode.Initial{X0: 1}, opts, 0.01, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(gap).To(BeNumerically("<", 1e-9))
	})

	It("measures the repeated-root difference", func() {
		// exact (1 + t)·e^(−t) against literal e^(−t): the gap peaks at t = 1
		gap, err := linode.ModeGap(linode.Triplet{A: 1, B: 2, C: 1}, linode.Initial{X0: 1}, opts, 0.01, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(gap).To(BeNumerically("~", math.Exp(-1), 1e-6))
	})

	It("reports a mode that cannot be built", func() {
		_, err := linode.ModeGap(linode.Triplet{C: 2}, linode.Initial{}, opts, 0.01, 10)
		Expect(err).To(MatchError(linode.ErrNonFinite))
	})
})
