package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

type System interface {
	dynamo.Configurable
	Name() string
	Triplet() linode.Triplet
	Validate() error
}

var constructors = map[string]func() System{
	"spring":   func() System { return NewSpring() },
	"pendulum": func() System { return NewPendulum() },
	"triplet":  func() System { return NewLinear(linode.Triplet{A: 1, B: 1, C: 2}) },
}

func New(name string) (System, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromConfig builds the system selected by cfg.System with its parameters.
func FromConfig(cfg *config.Config) (System, error) {
	var sys System
	switch cfg.System {
	case "spring":
		sys = &Spring{
			Stiffness:   cfg.Spring.Stiffness,
			Mass:        cfg.Spring.Mass,
			Friction:    cfg.Spring.Friction,
			Equilibrium: cfg.Spring.Equilibrium,
			Newtonian:   cfg.Spring.Newtonian,
		}
	case "pendulum":
		sys = &Pendulum{Length: cfg.Pendulum.Length, Gravity: cfg.Pendulum.Gravity}
	case "triplet":
		sys = NewLinear(cfg.Triplet)
	default:
		return nil, fmt.Errorf("unknown system: %s (available: %v)", cfg.System, Names())
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

// Solve validates sys and builds the closed form of its triplet.
func Solve(sys System, ic linode.Initial, opts linode.Options) (*linode.Solution, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return linode.Build(sys.Triplet(), ic, opts)
}

func requirePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrParameterBounds, name, v)
	}
	return nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", dynamo.ErrParameterBounds, name, v)
	}
	return nil
}
