package sim

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePathPlot writes the driven path as an image; the format follows the file extension.
func SavePathPlot(result *Result, path string) error {
	xys := make(plotter.XYs, len(result.Steps))
	for i, step := range result.Steps {
		xys[i].X = step.Point.X
		xys[i].Y = step.Point.Y
	}
	p := plot.New()
	p.Title.Text = "Driven path"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return savePlot(p, xys, "path", path)
}

// SaveSpeedPlot writes speed over time as an image.
func SaveSpeedPlot(result *Result, path string) error {
	xys := make(plotter.XYs, len(result.Steps))
	for i, step := range result.Steps {
		xys[i].X = step.Time
		xys[i].Y = step.Speed
	}
	p := plot.New()
	p.Title.Text = "Speed"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "speed"
	return savePlot(p, xys, "speed", path)
}

func savePlot(p *plot.Plot, xys plotter.XYs, name, path string) error {
	if len(xys) == 0 {
		return errors.New("nothing to plot")
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)
	p.Legend.Add(name, line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
