package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/exactsim/internal/linode"
)

func trajectory(t *testing.T, duration float64) []linode.Sample {
	t.Helper()
	sol, err := linode.Build(linode.Triplet{A: 1, B: 0.3, C: 4, K: 40}, linode.Initial{X0: 0, V0: 3}, linode.DefaultOptions())
	require.NoError(t, err)
	dt := 0.01
	samples, err := sol.Sample(0, dt, int(duration/dt)+1)
	require.NoError(t, err)
	return samples
}

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestSonifierBounded(t *testing.T) {
	opts := DefaultOptions()
	opts.Rate = beep.SampleRate(8000)
	opts.Speed = 4

	son, err := NewSonifier(trajectory(t, 8), opts)
	require.NoError(t, err)
	require.InDelta(t, 16000, son.Len(), 1)

	out := drain(son.Streamer())
	require.Len(t, out, son.Len())
	for i, frame := range out {
		for ch := 0; ch < 2; ch++ {
			require.GreaterOrEqual(t, frame[ch], -1.0, "sample %d", i)
			require.LessOrEqual(t, frame[ch], 1.0, "sample %d", i)
		}
	}
	require.NoError(t, son.Err())

	n, ok := son.Stream(make([][2]float64, 16))
	require.Zero(t, n)
	require.False(t, ok)
}

func TestSonifierNotSilent(t *testing.T) {
	opts := DefaultOptions()
	opts.Rate = beep.SampleRate(8000)

	son, err := NewSonifier(trajectory(t, 1), opts)
	require.NoError(t, err)

	peak := 0.0
	for _, frame := range drain(son) {
		peak = max(peak, frame[0], frame[1], -frame[0], -frame[1])
	}
	require.Greater(t, peak, 0.1)
}

func TestSonifierValidation(t *testing.T) {
	_, err := NewSonifier(trajectory(t, 1)[:1], DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyTrajectory)

	bad := DefaultOptions()
	bad.Volume = 2
	_, err = NewSonifier(trajectory(t, 1), bad)
	require.ErrorIs(t, err, ErrInvalidOptions)

	bad = DefaultOptions()
	bad.Speed = 0
	_, err = NewSonifier(trajectory(t, 1), bad)
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestConstantTrajectory(t *testing.T) {
	flat := []linode.Sample{{T: 0, X: 1}, {T: 0.5, X: 1}, {T: 1, X: 1}}
	opts := DefaultOptions()
	opts.Rate = beep.SampleRate(4000)

	son, err := NewSonifier(flat, opts)
	require.NoError(t, err)
	out := drain(son)
	require.Len(t, out, 4000)
	for _, frame := range out {
		require.InDelta(t, frame[0], frame[1], 1e-12)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spring.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Rate = beep.SampleRate(8000)
	require.NoError(t, WriteWAV(f, trajectory(t, 1), opts))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	stream, format, err := wav.Decode(in)
	require.NoError(t, err)
	defer stream.Close()
	require.Equal(t, opts.Rate, format.SampleRate)
	require.Equal(t, 2, format.NumChannels)
	require.Equal(t, 8000, stream.Len())
}
