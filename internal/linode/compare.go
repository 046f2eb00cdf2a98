package linode

import "math"

// ModeGap builds tr in both modes and returns the largest difference in
// position over n samples starting at t = 0 spaced by dt. A gap that is not
// finite is reported as +Inf.
func ModeGap(tr Triplet, ic Initial, opts Options, dt float64, n int) (float64, error) {
	var sols [2]*Solution
	for i, m := range []Mode{ModeExact, ModeLiteral} {
		o := opts
		o.Mode = m
		s, err := Build(tr, ic, o)
		if err != nil {
			return 0, err
		}
		sols[i] = s
	}

	gap := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		d := math.Abs(sols[0].Position(t) - sols[1].Position(t))
		if !finite(d) {
			return math.Inf(1), nil
		}
		gap = math.Max(gap, d)
	}
	return gap, nil
}
