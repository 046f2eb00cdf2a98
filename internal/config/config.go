package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/exactsim/internal/linode"
)

const (
	DefaultFPS      = 60
	DefaultDt       = 1.0 / DefaultFPS
	DefaultDuration = 20.0
	DefaultTheta    = 0.5
	DefaultLength   = 1.0
	DefaultGravity  = 9.81
	DefaultK        = 10.0
	DefaultMass     = 1.0
	DefaultXe       = 2.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	System    string          `yaml:"system"`
	Mode      string          `yaml:"mode"`
	Tolerance float64         `yaml:"tolerance"`
	Dt        float64         `yaml:"dt"`
	Duration  float64         `yaml:"duration"`
	FPS       int             `yaml:"fps"`
	Spring    SpringConfig    `yaml:"spring"`
	Pendulum  PendulumConfig  `yaml:"pendulum"`
	Triplet   linode.Triplet  `yaml:"triplet"`
	InitState InitStateConfig `yaml:"init_state"`
	Render    RenderConfig    `yaml:"render"`
	LogLevel  string          `yaml:"log_level"`
	DataDir   string          `yaml:"data_dir"`
}

type SpringConfig struct {
	Stiffness   float64 `yaml:"stiffness"`
	Mass        float64 `yaml:"mass"`
	Friction    float64 `yaml:"friction"`
	Equilibrium float64 `yaml:"equilibrium"`
	Newtonian   bool    `yaml:"newtonian"`
}

type PendulumConfig struct {
	Length  float64 `yaml:"length"`
	Gravity float64 `yaml:"gravity"`
}

// InitStateConfig holds x0 and v0. For a pendulum they are θ0 and ω0.
type InitStateConfig struct {
	X0 float64 `yaml:"x0"`
	V0 float64 `yaml:"v0"`
}

type RenderConfig struct {
	Theme  string `yaml:"theme"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Trail  int    `yaml:"trail"`
}

func DefaultConfig() *Config {
	return &Config{
		System:   "pendulum",
		Mode:     linode.ModeExact.String(),
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Spring: SpringConfig{
			Stiffness:   DefaultK,
			Mass:        DefaultMass,
			Equilibrium: DefaultXe,
		},
		Pendulum: PendulumConfig{
			Length:  DefaultLength,
			Gravity: DefaultGravity,
		},
		Triplet: linode.Triplet{A: 1, B: 1, C: 2},
		InitState: InitStateConfig{
			X0: DefaultTheta,
		},
		Render: RenderConfig{
			Theme:  "cyberpunk",
			Width:  80,
			Height: 24,
			Trail:  100,
		},
		LogLevel: "info",
		DataDir:  "runs",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.System {
	case "spring", "pendulum", "triplet":
	default:
		return fmt.Errorf("%w: unknown system %q", ErrInvalidConfig, c.System)
	}
	if _, err := linode.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// Options returns the solver options selected by Mode and Tolerance.
func (c *Config) Options() (linode.Options, error) {
	mode, err := linode.ParseMode(c.Mode)
	if err != nil {
		return linode.Options{}, err
	}
	return linode.Options{Mode: mode, Tolerance: c.Tolerance}, nil
}

func (c *Config) Initial() linode.Initial {
	return linode.Initial{X0: c.InitState.X0, V0: c.InitState.V0}
}

// Steps is the number of dt intervals covering Duration.
func (c *Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration/c.Dt + 0.5)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
