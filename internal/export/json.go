package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/boundstates/internal/solver"
	"github.com/san-kum/boundstates/internal/well"
)

type Level struct {
	N      int     `json:"n"`
	Energy float64 `json:"energy"`
}

type SolverStats struct {
	Solves      int    `json:"solves"`
	Iterations  int    `json:"iterations"`
	Unconverged int    `json:"unconverged"`
	LastFailure string `json:"last_failure,omitempty"`
}

// Spectrum is the JSON form of a well's bound states.
type Spectrum struct {
	Potential   string             `json:"potential"`
	Mass        float64            `json:"mass"`
	Params      map[string]float64 `json:"params"`
	GroundState int                `json:"ground_state"`
	Domain      [2]float64         `json:"domain"`
	Levels      []Level            `json:"levels"`
	Nodes       []int              `json:"nodes,omitempty"`
	Solver      SolverStats        `json:"solver"`
}

// NewSpectrum solves w and collects its levels. With withNodes set, every
// eigenstate is also computed and its node count recorded.
func NewSpectrum(w well.Well, mass float64, withNodes bool) (Spectrum, error) {
	minX, maxX := w.Domain()
	s := Spectrum{
		Potential:   w.Name(),
		Mass:        mass,
		Params:      w.Params(),
		GroundState: w.GroundStateIndex(),
		Domain:      [2]float64{minX, maxX},
	}
	for i, e := range w.Eigenvalues() {
		n := w.GroundStateIndex() + i
		s.Levels = append(s.Levels, Level{N: n, Energy: e})
		if withNodes {
			_, ys, err := w.NthEigenstate(n)
			if err != nil {
				return Spectrum{}, err
			}
			s.Nodes = append(s.Nodes, solver.CountNodes(ys, 1e-6))
		}
	}

	d := w.Diagnostics()
	s.Solver = SolverStats{Solves: d.Solves, Iterations: d.Iterations, Unconverged: d.Unconverged}
	if d.LastFailure != nil {
		s.Solver.LastFailure = d.LastFailure.Error()
	}
	return s, nil
}

func WriteSpectrumJSON(out io.Writer, s Spectrum) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// ExportJSON writes s to path, or to stdout when path is "-".
func ExportJSON(path string, s Spectrum) error {
	if path == "-" {
		return WriteSpectrumJSON(os.Stdout, s)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSpectrumJSON(file, s)
}
