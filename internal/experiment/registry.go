package experiment

import (
	"math"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/integrators"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/metrics"
	"github.com/san-kum/exactsim/internal/physics"
	"github.com/san-kum/exactsim/internal/scene"
)

// SettlingFraction sizes the settling band relative to the initial offset.
const SettlingFraction = 0.02

// Registry resolves systems, steppers and scenes by name and shares one
// solution cache between them.
type Registry struct {
	cache *linode.Cache
	log   *logging.Logger
}

func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{cache: linode.NewCache(), log: log}
}

func (r *Registry) Cache() *linode.Cache { return r.cache }

func (r *Registry) GetSystem(name string) (physics.System, error) {
	return physics.New(name)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	return integrators.New(name)
}

func (r *Registry) GetScene(name string, cfg *config.Config) (*scene.Scene, error) {
	return scene.Build(name, cfg, r.cache, r.log.Named("scene"))
}

func (r *Registry) ListSystems() []string     { return physics.Names() }
func (r *Registry) ListIntegrators() []string { return integrators.Names() }
func (r *Registry) ListScenes() []string      { return scene.Names() }

// DefaultMetrics picks the metrics that are defined for tr: energy terms
// need a second-order equation, settling needs an equilibrium.
func (r *Registry) DefaultMetrics(tr linode.Triplet, ic linode.Initial) []dynamo.Metric {
	var ms []dynamo.Metric
	if ode, err := physics.NewODE(tr); err == nil {
		ms = append(ms, metrics.NewEnergy(ode), metrics.NewEnergyDrift(ode))
	}
	if tr.C != 0 {
		center := tr.K / tr.C
		band := math.Max(SettlingFraction*math.Abs(ic.X0-center), 1e-6)
		ms = append(ms, metrics.NewSettling(center, band))
	}
	return ms
}
