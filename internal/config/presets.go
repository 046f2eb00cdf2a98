package config

import (
	"sort"

	"github.com/san-kum/exactsim/internal/linode"
)

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"short": {
			System: "pendulum", Dt: DefaultDt, Duration: 20.0, FPS: DefaultFPS,
			Pendulum:  PendulumConfig{Length: 1, Gravity: DefaultGravity},
			InitState: InitStateConfig{X0: 0.5},
		},
		"long": {
			System: "pendulum", Dt: DefaultDt, Duration: 20.0, FPS: DefaultFPS,
			Pendulum:  PendulumConfig{Length: 3, Gravity: DefaultGravity},
			InitState: InitStateConfig{X0: 0.5},
		},
		"lunar": {
			System: "pendulum", Dt: DefaultDt, Duration: 30.0, FPS: DefaultFPS,
			Pendulum:  PendulumConfig{Length: 1, Gravity: 1.62},
			InitState: InitStateConfig{X0: 0.3},
		},
	},
	"spring": {
		"undamped": {
			System: "spring", Dt: DefaultDt, Duration: 10.0, FPS: DefaultFPS,
			Spring:    SpringConfig{Stiffness: 10, Mass: 1, Equilibrium: 2},
			InitState: InitStateConfig{X0: 0.5},
		},
		"damped": {
			System: "spring", Dt: DefaultDt, Duration: 10.0, FPS: DefaultFPS,
			Spring:    SpringConfig{Stiffness: 10, Mass: 1, Equilibrium: 2, Friction: 1},
			InitState: InitStateConfig{X0: 0.5},
		},
		"newtonian": {
			System: "spring", Dt: DefaultDt, Duration: 10.0, FPS: DefaultFPS,
			Spring:    SpringConfig{Stiffness: 10, Mass: 1, Equilibrium: 2, Friction: 0.5, Newtonian: true},
			InitState: InitStateConfig{X0: 0.5},
		},
	},
	"triplet": {
		"underdamped": {
			System: "triplet", Dt: 0.01, Duration: 10.0, FPS: DefaultFPS,
			Triplet:   linode.Triplet{A: 1, B: 1, C: 2},
			InitState: InitStateConfig{X0: 1},
		},
		"overdamped": {
			System: "triplet", Dt: 0.01, Duration: 10.0, FPS: DefaultFPS,
			Triplet:   linode.Triplet{A: 1, B: 5, C: 4},
			InitState: InitStateConfig{X0: 1},
		},
		"critical": {
			System: "triplet", Dt: 0.01, Duration: 10.0, FPS: DefaultFPS,
			Triplet:   linode.Triplet{A: 1, B: 2, C: 1},
			InitState: InitStateConfig{X0: 1},
		},
		"forced": {
			System: "triplet", Dt: 0.01, Duration: 10.0, FPS: DefaultFPS,
			Triplet:   linode.Triplet{A: 1, B: 0.4, C: 4, K: 8},
			InitState: InitStateConfig{X0: 0},
		},
	},
}

// GetPreset returns a copy of the named preset laid over the defaults, or
// nil if it does not exist.
func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	p, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.System = p.System
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	cfg.FPS = p.FPS
	cfg.InitState = p.InitState
	switch p.System {
	case "spring":
		cfg.Spring = p.Spring
	case "pendulum":
		cfg.Pendulum = p.Pendulum
	case "triplet":
		cfg.Triplet = p.Triplet
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListSystems() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
