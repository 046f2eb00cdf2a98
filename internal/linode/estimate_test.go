package linode_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/exactsim/internal/linode"
)

var _ = Describe("Estimators", func() {
	DescribeTable("pseudo-period",
		func(tr linode.Triplet, want float64, ok bool) {
			got, defined := tr.PseudoPeriod()
			Expect(defined).To(Equal(ok))
			if ok {
				Expect(got).To(BeNumerically("~", want, 1e-9))
			}
		},
		Entry("unit oscillator", linode.Triplet{A: 1, C: 1}, 2*math.Pi, true),
		Entry("pendulum L=1", linode.Triplet{A: 1, C: 9.81}, 2.006066680710647, true),
		Entry("pendulum L=3", linode.Triplet{A: 1, C: 9.81 / 3}, 3.4746094143618937, true),
		Entry("radical between 0 and 1", linode.Triplet{A: 1, B: 0.9}, 13.962634015954636, true),
		Entry("zero radical", linode.Triplet{A: 1, B: 2, C: 1}, 0.0, false),
		Entry("overdamped", linode.Triplet{A: 1, B: 5, C: 4}, 0.0, false),
		Entry("first order", linode.Triplet{B: 1, C: 1}, 0.0, false),
	)

	It("computes the decay constant", func() {
		d, err := linode.Triplet{A: 2, B: 4}.DecayConstant()
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(-1.0))
	})

	It("has no decay constant without a second-order term", func() {
		_, err := linode.Triplet{B: 4, C: 1}.DecayConstant()
		Expect(err).To(MatchError(linode.ErrUndefinedDecay))
	})
})
