package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/san-kum/exactsim/internal/linode"
)

var (
	ErrTooFewSamples = errors.New("analysis: too few samples")
	ErrNoPeak        = errors.New("analysis: no spectral peak")
	ErrNotPowerOfTwo = errors.New("analysis: fft length must be a power of two")
	ErrMismatch      = errors.New("analysis: portraits differ in length")
)

// MinSpectrumSamples is the shortest trajectory DominantPeriod accepts.
const MinSpectrumSamples = 16

func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	return fft(data), nil
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func PowerSpectrum(data []float64) ([]float64, error) {
	spec, err := FFT(data)
	if err != nil {
		return nil, err
	}
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps, nil
}

// Spectrum returns the magnitude spectrum of x(t) and its bin width in Hz.
// Samples must be evenly spaced. The series is truncated to the largest
// power of two and its mean removed.
func Spectrum(samples []linode.Sample) (ps []float64, df float64, err error) {
	if len(samples) < MinSpectrumSamples {
		return nil, 0, ErrTooFewSamples
	}
	n := 1
	for n*2 <= len(samples) {
		n *= 2
	}
	dt := samples[1].T - samples[0].T
	if dt <= 0 {
		return nil, 0, ErrTooFewSamples
	}

	data := make([]float64, n)
	mean := 0.0
	for i := 0; i < n; i++ {
		data[i] = samples[i].X
		mean += data[i]
	}
	mean /= float64(n)
	for i := range data {
		data[i] -= mean
	}

	ps, err = PowerSpectrum(data)
	if err != nil {
		return nil, 0, err
	}
	return ps, 1 / (float64(n) * dt), nil
}

// DominantPeriod estimates the period of the strongest non-DC component of
// x(t). The peak bin is refined by parabolic interpolation.
func DominantPeriod(samples []linode.Sample) (float64, error) {
	ps, df, err := Spectrum(samples)
	if err != nil {
		return 0, err
	}

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak == 0 || ps[peak] < 1e-12 {
		return 0, ErrNoPeak
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		l, c, r := ps[peak-1], ps[peak], ps[peak+1]
		if den := l - 2*c + r; den != 0 {
			bin += 0.5 * (l - r) / den
		}
	}
	return 1 / (bin * df), nil
}
