package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes the run as indented JSON to w.
func ExportJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

// ExportJSONFile writes the run to path, or to stdout when path is "-".
func ExportJSONFile(path string, run *Run) error {
	if path == "-" || path == "" {
		return ExportJSON(os.Stdout, run)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, run)
}

// ExportCSVFile writes the samples to path, or to stdout when path is "-".
func ExportCSVFile(path string, run *Run) error {
	if path == "-" || path == "" {
		return WriteCSV(os.Stdout, run.Samples)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, run.Samples)
}
