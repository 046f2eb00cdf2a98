package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/physics"
)

type builder func(cfg *config.Config, cache *linode.Cache, log *logging.Logger) (*Scene, error)

var builtins = map[string]builder{
	"pendulums": buildPendulums,
	"pendulum":  buildPendulum,
	"spring":    buildSpring,
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build assembles a named scene from cfg. cache may be nil.
func Build(name string, cfg *config.Config, cache *linode.Cache, log *logging.Logger) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", name, Names())
	}
	if cache == nil {
		cache = linode.NewCache()
	}
	return b(cfg, cache, log)
}

func solve(sys physics.System, ic linode.Initial, cfg *config.Config, cache *linode.Cache) (*linode.Solution, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return cache.Solve(sys.Triplet(), ic, opts)
}

// buildPendulums places a short and a long pendulum side by side, each
// labelled with its period.
func buildPendulums(cfg *config.Config, cache *linode.Cache, log *logging.Logger) (*Scene, error) {
	s := New("pendulums", log)
	ic := linode.Initial{X0: cfg.InitState.X0, V0: cfg.InitState.V0}
	pivots := []Point{{-2.5, 2}, {2.5, 2}}

	for i, length := range []float64{1, 3} {
		p := &physics.Pendulum{Length: length, Gravity: cfg.Pendulum.Gravity}
		sol, err := solve(p, ic, cfg, cache)
		if err != nil {
			return nil, fmt.Errorf("pendulum L=%g: %w", length, err)
		}
		a := NewPendulumActorAt(fmt.Sprintf("pendulum_%d", i+1), sol, pivots[i], length, ic.X0)
		s.Add(a)
		s.AddStatic(NewLine(pivots[i].Add(Point{-0.5, 0}), pivots[i].Add(Point{0.5, 0})))

		if period, ok := p.Triplet().PseudoPeriod(); ok {
			l := NewLabel(Point{}, PeriodLabel(i+1, period))
			l.NextTo(a.Drawable(), 0.25)
			s.AddLabel(l)
		}
	}
	return s, nil
}

func buildPendulum(cfg *config.Config, cache *linode.Cache, log *logging.Logger) (*Scene, error) {
	s := New("pendulum", log)
	p := &physics.Pendulum{Length: cfg.Pendulum.Length, Gravity: cfg.Pendulum.Gravity}
	ic := cfg.Initial()
	sol, err := solve(p, ic, cfg, cache)
	if err != nil {
		return nil, err
	}
	pivot := Point{0, p.Length / 2}
	a := NewPendulumActorAt("pendulum", sol, pivot, p.Length, ic.X0)
	s.Add(a)
	s.AddStatic(NewLine(pivot.Add(Point{-0.5, 0}), pivot.Add(Point{0.5, 0})))
	if period, ok := p.Triplet().PseudoPeriod(); ok {
		l := NewLabel(Point{}, PeriodLabel(1, period))
		l.NextTo(a.Drawable(), 0.25)
		s.AddLabel(l)
	}
	return s, nil
}

func buildSpring(cfg *config.Config, cache *linode.Cache, log *logging.Logger) (*Scene, error) {
	s := New("spring", log)
	sp := &physics.Spring{
		Stiffness:   cfg.Spring.Stiffness,
		Mass:        cfg.Spring.Mass,
		Friction:    cfg.Spring.Friction,
		Equilibrium: cfg.Spring.Equilibrium,
		Newtonian:   cfg.Spring.Newtonian,
	}
	ic := cfg.Initial()
	sol, err := solve(sp, ic, cfg, cache)
	if err != nil {
		return nil, err
	}
	geom := DefaultCoilGeometry()
	a := NewSpringActor("spring", sol, ic.X0, geom)
	s.Add(a)
	s.AddStatic(
		NewLine(Point{0, -0.25}, Point{0, geom.Height + 0.25}),
		NewLine(Point{0, -0.25}, Point{sp.Equilibrium + 2*geom.Block, -0.25}),
	)
	if period, ok := sp.Triplet().PseudoPeriod(); ok {
		s.AddLabel(NewLabel(Point{0, geom.Height + 0.75}, PeriodLabel(1, period)))
	}
	return s, nil
}
