package export

import (
	"fmt"

	"github.com/san-kum/boundstates/internal/well"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type PlotOptions struct {
	Width, Height vg.Length
	// Amplitude is the height in eV of a peak-normalized wavefunction drawn
	// on its energy level.
	Amplitude float64
	Title     string
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 8 * vg.Inch, Height: 5 * vg.Inch, Amplitude: 1}
}

// NewPlot draws the potential of w with each requested eigenstate offset to
// its energy. A nil states draws the whole spectrum.
func NewPlot(w well.Well, states []int, opts PlotOptions) (*plot.Plot, error) {
	if states == nil {
		states = AllStates(w)
	}
	minE, maxE := w.EnergyRange()

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = w.Name()
	}
	p.X.Label.Text = "x (nm)"
	p.Y.Label.Text = "E (eV)"
	p.Y.Min, p.Y.Max = minE, maxE
	p.Add(plotter.NewGrid())

	xs, vs := w.PotentialPoints(400)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		// Clip so the Coulomb singularity does not flatten the axis.
		pts[i].X, pts[i].Y = xs[i], max(minE, min(maxE, vs[i]))
	}
	potential, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	potential.LineStyle.Width = vg.Points(2)
	p.Add(potential)
	p.Legend.Add("V(x)", potential)

	for i, n := range states {
		e, err := w.NthEigenvalue(n)
		if err != nil {
			return nil, err
		}
		sx, ys, err := w.NthEigenstate(n)
		if err != nil {
			return nil, err
		}
		wave := make(plotter.XYs, len(sx))
		for j := range sx {
			wave[j].X, wave[j].Y = sx[j], e+opts.Amplitude*ys[j]
		}
		line, err := plotter.NewLine(wave)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = plotutil.Color(i + 1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("n=%d  %.4f eV", n, e), line)

		level, err := plotter.NewLine(plotter.XYs{{X: sx[0], Y: e}, {X: sx[len(sx)-1], Y: e}})
		if err != nil {
			return nil, err
		}
		level.LineStyle.Color = plotutil.Color(i + 1)
		level.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(level)
	}
	p.Legend.Top = true
	return p, nil
}

// SavePlot renders the plot to path. The format follows the extension: png,
// svg, pdf, eps, jpg or tiff.
func SavePlot(path string, w well.Well, states []int, opts PlotOptions) error {
	p, err := NewPlot(w, states, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}
