package experiment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/exactsim/internal/analysis"
	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/metrics"
	"github.com/san-kum/exactsim/internal/physics"
	"github.com/san-kum/exactsim/internal/storage"
)

// Result is one solved and sampled configuration.
type Result struct {
	System   string
	Triplet  linode.Triplet
	Initial  linode.Initial
	Solution *linode.Solution
	Samples  []linode.Sample

	Period    float64
	HasPeriod bool
	Decay     float64
	HasDecay  bool

	// FFTPeriod is 0 when the spectrum has no usable peak.
	FFTPeriod float64
	Metrics   map[string]float64
	Elapsed   time.Duration
}

type Experiment struct {
	cfg *config.Config
	reg *Registry
	log *logging.Logger
}

func New(cfg *config.Config, reg *Registry) *Experiment {
	if reg == nil {
		reg = NewRegistry(nil)
	}
	return &Experiment{cfg: cfg, reg: reg, log: reg.log.Named("experiment")}
}

// Run solves the configured system and samples it over [0, Duration].
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	sys, err := physics.FromConfig(e.cfg)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, sys, e.cfg.Initial())
}

// RunParams is Run with system parameters overridden by name, applied in
// sorted order.
func (e *Experiment) RunParams(ctx context.Context, params map[string]float64) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	sys, err := physics.FromConfig(e.cfg)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := sys.SetParam(name, params[name]); err != nil {
			return nil, fmt.Errorf("%s: %w", sys.Name(), err)
		}
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return e.run(ctx, sys, e.cfg.Initial())
}

func (e *Experiment) run(ctx context.Context, sys physics.System, ic linode.Initial) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, err := e.cfg.Options()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tr := sys.Triplet()
	sol, err := e.reg.cache.Solve(tr, ic, opts)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", sys.Name(), err)
	}

	samples, err := sol.Sample(0, e.cfg.Dt, e.cfg.Steps()+1)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", sys.Name(), err)
	}

	res := &Result{
		System:   sys.Name(),
		Triplet:  tr,
		Initial:  ic,
		Solution: sol,
		Samples:  samples,
	}
	res.Period, res.HasPeriod = tr.PseudoPeriod()
	if decay, err := tr.DecayConstant(); err == nil {
		res.Decay, res.HasDecay = decay, true
	}
	if p, err := analysis.DominantPeriod(res.Samples); err == nil {
		res.FFTPeriod = p
	} else if !errors.Is(err, analysis.ErrNoPeak) && !errors.Is(err, analysis.ErrTooFewSamples) {
		return nil, err
	}

	ms := e.reg.DefaultMetrics(tr, ic)
	metrics.ObserveSamples(res.Samples, ms...)
	res.Metrics = metrics.Collect(ms...)
	res.Elapsed = time.Since(start)

	e.log.Debug("run complete",
		logging.String("system", res.System),
		logging.String("kind", sol.Kind.String()),
		logging.Int("samples", len(res.Samples)),
		logging.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// ToRun converts the result into a storable run.
func (r *Result) ToRun(cfg *config.Config, params map[string]float64) *storage.Run {
	meta := storage.RunMetadata{
		System:   r.System,
		Mode:     cfg.Mode,
		Kind:     r.Solution.Kind.String(),
		Triplet:  r.Triplet,
		Initial:  r.Initial,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Params:   params,
		Metrics:  r.Metrics,
	}
	if r.HasPeriod {
		p := r.Period
		meta.Period = &p
	}
	if r.HasDecay {
		d := r.Decay
		meta.Decay = &d
	}
	return &storage.Run{Meta: meta, Samples: r.Samples}
}
