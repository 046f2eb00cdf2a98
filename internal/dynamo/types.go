package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Integrate steps dyn from x0 for n steps of size dt and returns the n+1
// visited states, x0 included.
func Integrate(integ Integrator, dyn System, x0 State, dt float64, n int, metrics ...Metric) ([]State, error) {
	if len(x0) != dyn.StateDim() {
		return nil, &SimulationError{State: x0, Wrapped: fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x0), dyn.StateDim())}
	}

	states := make([]State, 0, n+1)
	x := x0.Clone()
	states = append(states, x)
	for _, m := range metrics {
		m.Observe(x, 0)
	}

	for i := 0; i < n; i++ {
		t := float64(i) * dt
		x = integ.Step(dyn, x, t, dt)
		if !x.IsValid() {
			return states, &SimulationError{Step: i + 1, Time: t + dt, State: x, Wrapped: ErrInvalidState}
		}
		states = append(states, x)
		for _, m := range metrics {
			m.Observe(x, t+dt)
		}
	}
	return states, nil
}
