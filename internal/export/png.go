package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrEmptySeries = errors.New("export: empty series")

// Series is one named line of a PNG plot.
type Series struct {
	Name   string
	Points []XY
}

// LinePlot describes a PNG line chart. Width and Height are in inches.
type LinePlot struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64
	Height float64
	Series []Series
}

func (lp LinePlot) build() (*plot.Plot, error) {
	if len(lp.Series) == 0 {
		return nil, ErrEmptySeries
	}

	p := plot.New()
	p.Title.Text = lp.Title
	p.X.Label.Text = lp.XLabel
	p.Y.Label.Text = lp.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range lp.Series {
		if len(s.Points) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptySeries, s.Name)
		}
		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j].X = pt.X
			pts[j].Y = pt.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("export: series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotter.DefaultLineStyle.Color
		if i > 0 {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	return p, nil
}

// SavePNG renders the plot to path, creating parent directories.
func (lp LinePlot) SavePNG(path string) error {
	p, err := lp.build()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: cannot create directory: %w", err)
		}
	}

	w, h := lp.Width, lp.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 5
	}
	return p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, path)
}
