package metrics

import (
	"math"

	"github.com/san-kum/exactsim/internal/dynamo"
)

// Settling reports the last time |x − center| exceeded band. A trajectory
// that never leaves the band settles at its first observed time.
type Settling struct {
	name     string
	center   float64
	band     float64
	last     float64
	observed bool
}

func NewSettling(center, band float64) *Settling {
	return &Settling{
		name:   "settling_time",
		center: center,
		band:   band,
	}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(x dynamo.State, t float64) {
	if !s.observed {
		s.last = t
		s.observed = true
	}
	if math.Abs(x[0]-s.center) > s.band {
		s.last = t
	}
}

func (s *Settling) Value() float64 { return s.last }

func (s *Settling) Reset() {
	s.last = 0
	s.observed = false
}
