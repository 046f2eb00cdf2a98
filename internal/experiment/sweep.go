package experiment

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/physics"
)

var (
	ErrEmptySweep   = errors.New("experiment: sweep has no values")
	ErrUnknownParam = errors.New("experiment: unknown sweep parameter")
)

// SweepPoint is the outcome for one parameter value. Err holds a per-point
// solve failure; the sweep itself keeps going.
type SweepPoint struct {
	Value     float64
	Triplet   linode.Triplet
	Kind      string
	Period    float64
	HasPeriod bool
	Decay     float64
	HasDecay  bool
	Err       error
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Sweep solves the configured system once per value of param concurrently.
// Results come back in the order of values. param is any name accepted by
// the system's SetParam, or "x0"/"v0" for the initial condition.
func (e *Experiment) Sweep(ctx context.Context, param string, values []float64) ([]SweepPoint, error) {
	if len(values) == 0 {
		return nil, ErrEmptySweep
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := e.checkParam(param); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points[i] = e.sweepPoint(ctx, param, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.Info("sweep complete",
		logging.String("param", param),
		logging.Int("points", len(points)),
	)
	return points, nil
}

func (e *Experiment) sweepPoint(ctx context.Context, param string, v float64) SweepPoint {
	pt := SweepPoint{Value: v}
	sys, err := e.apply(param, v)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Triplet = sys.Triplet()
	pt.Period, pt.HasPeriod = pt.Triplet.PseudoPeriod()
	if d, err := pt.Triplet.DecayConstant(); err == nil {
		pt.Decay, pt.HasDecay = d, true
	}

	ic := e.cfg.Initial()
	switch param {
	case "x0":
		ic.X0 = v
	case "v0":
		ic.V0 = v
	}
	opts, err := e.cfg.Options()
	if err != nil {
		pt.Err = err
		return pt
	}
	sol, err := e.reg.cache.Solve(pt.Triplet, ic, opts)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Kind = sol.Kind.String()
	return pt
}

func (e *Experiment) checkParam(param string) error {
	if param == "x0" || param == "v0" {
		return nil
	}
	sys, err := physics.FromConfig(e.cfg)
	if err != nil {
		return err
	}
	if _, ok := sys.GetParams()[param]; !ok {
		return fmt.Errorf("%w: %s has no %q", ErrUnknownParam, sys.Name(), param)
	}
	return nil
}

// apply builds a fresh system from the config with param set to v.
func (e *Experiment) apply(param string, v float64) (physics.System, error) {
	sys, err := physics.FromConfig(e.cfg)
	if err != nil {
		return nil, err
	}
	if param == "x0" || param == "v0" {
		return sys, nil
	}
	if err := sys.SetParam(param, v); err != nil {
		return nil, fmt.Errorf("sweep %s: %w", sys.Name(), err)
	}
	return sys, nil
}
