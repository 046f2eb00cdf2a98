package metrics

import (
	"math"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

// ReferenceError tracks the largest |x(t) − ref(t)| against a closed form.
type ReferenceError struct {
	name    string
	ref     *linode.Solution
	maxErr  float64
	sumSq   float64
	samples int
}

func NewReferenceError(ref *linode.Solution) *ReferenceError {
	return &ReferenceError{
		name: "max_error",
		ref:  ref,
	}
}

func (r *ReferenceError) Name() string { return r.name }

func (r *ReferenceError) Observe(x dynamo.State, t float64) {
	d := math.Abs(x[0] - r.ref.Position(t))
	r.maxErr = math.Max(r.maxErr, d)
	r.sumSq += d * d
	r.samples++
}

func (r *ReferenceError) Value() float64 { return r.maxErr }

// RMS is the root-mean-square error over all observations.
func (r *ReferenceError) RMS() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *ReferenceError) Reset() {
	r.maxErr = 0
	r.sumSq = 0
	r.samples = 0
}
