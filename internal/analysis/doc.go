// Package analysis inspects sampled trajectories independently of the
// closed form that produced them.
//
//   - [DominantPeriod]: period of the strongest spectral peak
//   - [CrossingPeriod]: mean spacing of upward crossings of the equilibrium
//   - [PhaseFromSamples], [GeneratePhasePortrait]: (x, v) portraits
//   - [PhasePortraitToASCII]: terminal rendering of a portrait
//
// The estimates serve as cross-checks for the analytic pseudo-period:
//
//	fft, _ := analysis.DominantPeriod(samples)
//	period, _ := triplet.PseudoPeriod()
package analysis
