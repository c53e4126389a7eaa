package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/TheFellow/fluidsim/pkg/fluid"
)

// saveHeatmap renders a scalar field as a heat map PNG. ScalarField
// satisfies the plotter grid contract directly.
func saveHeatmap(field fluid.ScalarField, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewHeatMap(field, moreland.SmoothBlueRed().Palette(255)))
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// saveResiduals plots the divergence left behind by each tick's
// projection, the quantity to watch when tuning the relaxation budget.
func saveResiduals(residuals []float64, dt float64, path string) error {
	pts := make(plotter.XYs, len(residuals))
	for i, r := range residuals {
		pts[i].X = float64(i+1) * dt
		pts[i].Y = r
	}

	p := plot.New()
	p.Title.Text = "Projection residual"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "max divergence"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Add(plotter.NewGrid())
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
