// Package audio renders trajectories as sound: pitch follows position and
// stereo pan follows velocity.
package audio

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/san-kum/exactsim/internal/linode"
)

const (
	SampleRate = beep.SampleRate(44100)

	DefaultBaseFreq = 220.0
	DefaultOctaves  = 1.0
	DefaultSpeed    = 1.0
	DefaultVolume   = 0.5
	DefaultCutoff   = 1200.0
)

var (
	ErrEmptyTrajectory = errors.New("audio: trajectory needs at least two samples")
	ErrInvalidOptions  = errors.New("audio: invalid options")
)

// Options controls the mapping from trajectory to sound. Speed is simulated
// seconds per audio second.
type Options struct {
	Rate     beep.SampleRate
	BaseFreq float64
	Octaves  float64
	Speed    float64
	Volume   float64
	Cutoff   float64
}

func DefaultOptions() Options {
	return Options{
		Rate:     SampleRate,
		BaseFreq: DefaultBaseFreq,
		Octaves:  DefaultOctaves,
		Speed:    DefaultSpeed,
		Volume:   DefaultVolume,
		Cutoff:   DefaultCutoff,
	}
}

func (o Options) validate() error {
	if o.Rate <= 0 || o.BaseFreq <= 0 || o.Speed <= 0 || o.Cutoff <= 0 {
		return ErrInvalidOptions
	}
	if o.Volume < 0 || o.Volume > 1 || o.Octaves < 0 {
		return ErrInvalidOptions
	}
	return nil
}

// Sonifier is a beep.Streamer over a sampled trajectory. Position is
// normalized to [-1, 1] around its midrange and mapped to a triangle-wave
// pitch of BaseFreq·2^(Octaves·x); normalized velocity pans left and right.
type Sonifier struct {
	samples []linode.Sample
	opts    Options

	mid, halfX float64
	maxV       float64

	position int
	total    int
	phase    float64
	filter   [2]float64
}

func NewSonifier(samples []linode.Sample, opts Options) (*Sonifier, error) {
	if len(samples) < 2 {
		return nil, ErrEmptyTrajectory
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	lo, hi := samples[0].X, samples[0].X
	maxV := 0.0
	for _, s := range samples {
		lo = math.Min(lo, s.X)
		hi = math.Max(hi, s.X)
		maxV = math.Max(maxV, math.Abs(s.V))
	}

	span := samples[len(samples)-1].T - samples[0].T
	total := opts.Rate.N(time.Duration(span / opts.Speed * float64(time.Second)))

	return &Sonifier{
		samples: samples,
		opts:    opts,
		mid:     (lo + hi) / 2,
		halfX:   (hi - lo) / 2,
		maxV:    maxV,
		total:   total,
	}, nil
}

// Len is the stream length in audio samples.
func (s *Sonifier) Len() int { return s.total }

// at interpolates the trajectory at simulated time t.
func (s *Sonifier) at(t float64) (x, v float64) {
	smp := s.samples
	if t <= smp[0].T {
		return smp[0].X, smp[0].V
	}
	last := smp[len(smp)-1]
	if t >= last.T {
		return last.X, last.V
	}
	dt := smp[1].T - smp[0].T
	i := int((t - smp[0].T) / dt)
	if i >= len(smp)-1 {
		i = len(smp) - 2
	}
	frac := (t - smp[i].T) / dt
	a, b := smp[i], smp[i+1]
	return a.X + frac*(b.X-a.X), a.V + frac*(b.V-a.V)
}

func (s *Sonifier) normalize(x, v float64) (xn, vn float64) {
	if s.halfX > 0 {
		xn = clamp((x - s.mid) / s.halfX)
	}
	if s.maxV > 0 {
		vn = clamp(v / s.maxV)
	}
	return xn, vn
}

func (s *Sonifier) Stream(samples [][2]float64) (n int, ok bool) {
	rate := float64(s.opts.Rate)
	dt := 1 / rate
	t0 := s.samples[0].T

	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		simT := t0 + float64(s.position)*dt*s.opts.Speed
		xn, vn := s.normalize(s.at(simT))

		freq := s.opts.BaseFreq * math.Pow(2, s.opts.Octaves*xn)
		val := triangle(s.phase)

		var outL, outR float64
		outL, s.filter[0] = lpf(val, s.opts.Cutoff, dt, s.filter[0])
		outR, s.filter[1] = lpf(val, s.opts.Cutoff, dt, s.filter[1])

		pan := (vn + 1) / 2
		samples[i][0] = outL * (1 - pan)
		samples[i][1] = outR * pan

		s.phase += freq / rate
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *Sonifier) Err() error { return nil }

// Streamer wraps the sonifier with the master volume.
func (s *Sonifier) Streamer() beep.Streamer {
	return newVolume(s, s.opts.Volume)
}

// WriteWAV encodes the trajectory as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, samples []linode.Sample, opts Options) error {
	son, err := NewSonifier(samples, opts)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: opts.Rate, NumChannels: 2, Precision: 2}
	return wav.Encode(w, son.Streamer(), format)
}

// triangle is smooth enough that the one-pole filter leaves a near-sine.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low-pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
