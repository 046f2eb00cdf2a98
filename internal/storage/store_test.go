package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/exactsim/internal/linode"
)

func sampleRun(t *testing.T) *Run {
	t.Helper()
	sol, err := linode.NewEquation(1, 0.5, 4, 0, 1, 0).Solve(linode.DefaultOptions())
	require.NoError(t, err)

	samples, err := sol.Sample(0, 0.01, 101)
	require.NoError(t, err)

	p := 3.2
	return &Run{
		Meta: RunMetadata{
			System:   "triplet",
			Mode:     "exact",
			Kind:     sol.Kind.String(),
			Triplet:  linode.Triplet{A: 1, B: 0.5, C: 4},
			Initial:  linode.Initial{X0: 1},
			Dt:       0.01,
			Duration: 1,
			Period:   &p,
			Metrics:  map[string]float64{"energy": 1.5},
		},
		Samples: samples,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run := sampleRun(t)
	runID, err := st.Save(run)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(runID, "triplet_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	require.Equal(t, "triplet", meta.System)
	require.Equal(t, run.Meta.Triplet, meta.Triplet)
	require.NotNil(t, meta.Period)
	require.Equal(t, 3.2, *meta.Period)
	require.Nil(t, meta.Decay)
	require.Equal(t, 1.5, meta.Metrics["energy"])

	samples, err := st.LoadSamples(runID)
	require.NoError(t, err)
	require.Equal(t, run.Samples, samples)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	first := sampleRun(t)
	first.Meta.Timestamp = time.Now().Add(-time.Hour)
	_, err = st.Save(first)
	require.NoError(t, err)

	second := sampleRun(t)
	second.Meta.System = "spring"
	_, err = st.Save(second)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "triplet", runs[0].System)
	require.Equal(t, "spring", runs[1].System)
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
	_, err = st.LoadSamples("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreRejectsEscapingIDs(t *testing.T) {
	base := filepath.Join(t.TempDir(), "runs")
	st := New(base)
	require.NoError(t, st.Init())

	for _, id := range []string{"../x", "a/b", `a\b`, "..", "."} {
		run := sampleRun(t)
		run.Meta.ID = id
		_, err := st.Save(run)
		require.ErrorIs(t, err, ErrInvalidRunID, id)

		_, err = st.Load(id)
		require.ErrorIs(t, err, ErrInvalidRunID, id)
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(base), "x"))
	require.True(t, os.IsNotExist(err))
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	in := "time,x,v\n0,1,0\nbad,1,2\n0.1,0.9\n0.2,0.8,-1\n"
	samples, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []linode.Sample{{T: 0, X: 1, V: 0}, {T: 0.2, X: 0.8, V: -1}}, samples)
}

func TestExportJSON(t *testing.T) {
	run := sampleRun(t)
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, run))

	var decoded Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Samples, len(run.Samples))
	require.Equal(t, run.Meta.Triplet, decoded.Meta.Triplet)
}

func TestExportCSVFile(t *testing.T) {
	run := sampleRun(t)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSVFile(path, run))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	samples, err := ReadCSV(f)
	require.NoError(t, err)
	require.Equal(t, run.Samples, samples)
}
