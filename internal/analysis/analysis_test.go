package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/integrators"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/physics"
)

func sine(period, dt float64, n int) []linode.Sample {
	out := make([]linode.Sample, n)
	for i := range out {
		t := float64(i) * dt
		out[i] = linode.Sample{T: t, X: 3 + math.Sin(2*math.Pi*t/period)}
	}
	return out
}

func TestDominantPeriodPureSine(t *testing.T) {
	tests := []struct {
		period, dt float64
		n          int
	}{
		{2, 0.01, 2048},
		{0.5, 0.005, 3000},
		{7, 0.05, 1024},
	}
	for _, tt := range tests {
		got, err := DominantPeriod(sine(tt.period, tt.dt, tt.n))
		if err != nil {
			t.Fatalf("DominantPeriod: %v", err)
		}
		if math.Abs(got-tt.period)/tt.period > 0.05 {
			t.Errorf("period %g: got %g", tt.period, got)
		}
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod(sine(1, 0.1, 8)); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("err = %v, want ErrTooFewSamples", err)
	}
	flat := make([]linode.Sample, 64)
	for i := range flat {
		flat[i] = linode.Sample{T: float64(i), X: 2}
	}
	if _, err := DominantPeriod(flat); !errors.Is(err, ErrNoPeak) {
		t.Errorf("err = %v, want ErrNoPeak", err)
	}
	if _, err := FFT(make([]float64, 6)); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("err = %v, want ErrNotPowerOfTwo", err)
	}
}

func TestCrossingPeriodMatchesPseudoPeriod(t *testing.T) {
	tr := linode.Triplet{A: 1, B: 0.4, C: 4, K: 2}
	sol, err := linode.Build(tr, linode.Initial{X0: 1}, linode.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want, ok := tr.PseudoPeriod()
	if !ok {
		t.Fatal("expected a pseudo-period")
	}

	long, err := sol.Sample(0, 0.001, 20000)
	if err != nil {
		t.Fatal(err)
	}
	short, err := sol.Sample(0, 0.001, 100)
	if err != nil {
		t.Fatal(err)
	}

	got, err := CrossingPeriod(long, tr.K/tr.C)
	if err != nil {
		t.Fatalf("CrossingPeriod: %v", err)
	}
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("CrossingPeriod = %g, want %g", got, want)
	}

	if _, err := CrossingPeriod(short, tr.K/tr.C); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("short trajectory err = %v", err)
	}
}

func TestPhasePortraits(t *testing.T) {
	tr := linode.Triplet{A: 1, B: 0.2, C: 1}
	sol, err := linode.Build(tr, linode.Initial{X0: 1}, linode.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	samples, err := sol.Sample(0.01, 0.01, 500)
	if err != nil {
		t.Fatal(err)
	}
	exact := PhaseFromSamples(samples)

	dyn, err := physics.NewODE(tr)
	if err != nil {
		t.Fatal(err)
	}
	numeric := GeneratePhasePortrait(dyn, integrators.NewRK4(), dynamo.State{1, 0}, 0, 1, 0.01, 5)
	if numeric == nil || len(numeric.Points) != 500 {
		t.Fatalf("numeric portrait: %+v", numeric)
	}
	dev, err := MaxDeviation(exact, numeric)
	if err != nil {
		t.Fatal(err)
	}
	if dev > 1e-6 {
		t.Errorf("rk4 portrait deviates by %g", dev)
	}
	if _, err := MaxDeviation(exact, &PhasePortrait2D{}); !errors.Is(err, ErrMismatch) {
		t.Errorf("length mismatch err = %v", err)
	}

	if GeneratePhasePortrait(dyn, integrators.NewRK4(), dynamo.State{1, 0}, 0, 2, 0.01, 1) != nil {
		t.Error("out-of-range index should yield nil")
	}

	art := PhasePortraitToASCII(exact, 40, 12)
	if lines := strings.Count(art, "\n"); lines != 12 {
		t.Errorf("ascii lines = %d, want 12", lines)
	}
	if !strings.ContainsRune(art, '•') {
		t.Error("ascii portrait has no points")
	}
}

func TestSpectrumBinWidth(t *testing.T) {
	ps, df, err := Spectrum(sine(2, 0.01, 1500))
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 512 {
		t.Errorf("bins = %d, want 512", len(ps))
	}
	if math.Abs(df-1/10.24) > 1e-12 {
		t.Errorf("df = %g", df)
	}
}
