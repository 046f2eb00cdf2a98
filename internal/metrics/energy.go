package metrics

import (
	"math"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

// Energy averages the energy of a Hamiltonian system over observed states.
type Energy struct {
	name        string
	ham         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(ham dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		ham:  ham,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	e.totalEnergy += e.ham.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure from the first observed
// energy. Systems that are not Hamiltonian report 0.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// ObserveSamples feeds closed-form samples through metrics as (x, v) states.
func ObserveSamples(samples []linode.Sample, metrics ...dynamo.Metric) {
	x := make(dynamo.State, 2)
	for _, s := range samples {
		x[0], x[1] = s.X, s.V
		for _, m := range metrics {
			m.Observe(x, s.T)
		}
	}
}

// Collect returns metric values keyed by name.
func Collect(metrics ...dynamo.Metric) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
