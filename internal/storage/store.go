package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/exactsim/internal/linode"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrInvalidRunID indicates an id that is not a single path element.
	ErrInvalidRunID = errors.New("storage: invalid run id")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Mode      string             `json:"mode"`
	Kind      string             `json:"kind"`
	Triplet   linode.Triplet     `json:"triplet"`
	Initial   linode.Initial     `json:"initial"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Period    *float64           `json:"period,omitempty"`
	Decay     *float64           `json:"decay,omitempty"`
	Params    map[string]float64 `json:"params,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

type Run struct {
	Meta    RunMetadata     `json:"meta"`
	Samples []linode.Sample `json:"samples"`
}

// NewRunID returns "<system>_<8 hex chars>".
func NewRunID(system string) string {
	return fmt.Sprintf("%s_%s", system, uuid.NewString()[:8])
}

// ValidateRunID rejects ids that would resolve outside the store directory.
func ValidateRunID(runID string) error {
	if runID == "" || runID == "." || runID == ".." ||
		strings.ContainsAny(runID, `/\`) || strings.ContainsRune(runID, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return nil
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run id. An empty Meta.ID is filled in.
func (s *Store) Save(run *Run) (string, error) {
	if run.Meta.ID == "" {
		run.Meta.ID = NewRunID(run.Meta.System)
	}
	if run.Meta.Timestamp.IsZero() {
		run.Meta.Timestamp = time.Now()
	}
	if err := ValidateRunID(run.Meta.ID); err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, run.Meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run.Meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, run.Samples); err != nil {
		return "", err
	}
	return run.Meta.ID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := ValidateRunID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]linode.Sample, error) {
	if err := ValidateRunID(runID); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &Run{Meta: *meta, Samples: samples}, nil
}

func WriteCSV(w io.Writer, samples []linode.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "v"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.T, 'g', -1, 64),
			strconv.FormatFloat(smp.X, 'g', -1, 64),
			strconv.FormatFloat(smp.V, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Malformed rows are skipped.
func ReadCSV(r io.Reader) ([]linode.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []linode.Sample{}, nil
	}

	samples := make([]linode.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if ok {
			samples = append(samples, linode.Sample{T: vals[0], X: vals[1], V: vals[2]})
		}
	}
	return samples, nil
}
