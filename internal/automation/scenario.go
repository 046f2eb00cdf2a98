// Package automation runs scripted sequences of solves described in YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/experiment"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Zero fields fall back to the preset, or to the
// defaults when no preset is named.
type ScenarioStep struct {
	System   string             `yaml:"system"`
	Preset   string             `yaml:"preset"`
	Mode     string             `yaml:"mode"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	X0       *float64           `yaml:"x0"`
	V0       *float64           `yaml:"v0"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

// Outcome pairs a step's result with the id it was stored under, if any.
type Outcome struct {
	Step   int
	RunID  string
	Result *experiment.Result
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	for i, step := range scenario.Steps {
		if step.SaveAs == "" {
			continue
		}
		if err := storage.ValidateRunID(step.SaveAs); err != nil {
			return nil, fmt.Errorf("step %d: save_as: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// Config resolves the step into a validated configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	system := s.System
	if system == "" {
		system = cfg.System
	}
	if s.Preset != "" {
		cfg = config.GetPreset(system, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(system))
		}
	}
	cfg.System = system
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.X0 != nil {
		cfg.InitState.X0 = *s.X0
	}
	if s.V0 != nil {
		cfg.InitState.V0 = *s.V0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes the steps in order, stopping at the first failure.
// Steps with SaveAs are written to st, which may be nil when none are.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, st *storage.Store, log *logging.Logger) ([]Outcome, error) {
	if log == nil {
		log = logging.Nop()
	}
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step",
			logging.String("scenario", scenario.Name),
			logging.Int("step", i+1),
			logging.Int("of", len(scenario.Steps)),
			logging.String("system", step.System),
		)

		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := experiment.New(cfg, reg).RunParams(ctx, step.Params)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := Outcome{Step: i + 1, Result: res}
		if step.SaveAs != "" {
			if st == nil {
				return outcomes, fmt.Errorf("step %d: save_as %q needs a store", i+1, step.SaveAs)
			}
			run := res.ToRun(cfg, step.Params)
			run.Meta.ID = step.SaveAs
			if out.RunID, err = st.Save(run); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
