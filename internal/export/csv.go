package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// AllStates lists every quantum number of w's current spectrum.
func AllStates(w well.Well) []int {
	states := make([]int, w.NumberOfEigenstates())
	for i := range states {
		states[i] = w.GroundStateIndex() + i
	}
	return states
}

// WriteEigenstatesCSV writes one row per grid point with columns x,
// potential and psi_n for each requested state. A nil states writes the whole
// spectrum.
func WriteEigenstatesCSV(out io.Writer, w well.Well, states []int) error {
	if states == nil {
		states = AllStates(w)
	}

	var xs []float64
	columns := make([][]float64, len(states))
	for i, n := range states {
		sx, ys, err := w.NthEigenstate(n)
		if err != nil {
			return err
		}
		xs, columns[i] = sx, ys
	}
	if xs == nil {
		xs, _ = w.PotentialPoints(quantum.NumPoints)
	}

	cw := csv.NewWriter(out)
	header := []string{"x", "potential"}
	for _, n := range states {
		header = append(header, fmt.Sprintf("psi_%d", n))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, x := range xs {
		row := []string{formatFloat(x), formatFloat(w.PotentialValue(x))}
		for _, col := range columns {
			row = append(row, formatFloat(col[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Frame is one sample of the evolving superposition.
type Frame struct {
	Time               float64
	Xs, Real, Imag     []float64
	ProbabilityDensity []float64
}

// WriteFramesCSV writes frames in long format: time, x, real, imaginary,
// density.
func WriteFramesCSV(out io.Writer, frames []Frame) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"time", "x", "real", "imaginary", "density"}); err != nil {
		return err
	}
	for _, f := range frames {
		t := formatFloat(f.Time)
		for i, x := range f.Xs {
			row := []string{t, formatFloat(x), formatFloat(f.Real[i]), formatFloat(f.Imag[i]), formatFloat(f.ProbabilityDensity[i])}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
