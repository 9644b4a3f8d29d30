package solver

import (
	"fmt"

	"github.com/san-kum/boundstates/internal/quantum"
)

// Phase identifies a stage of the eigenvalue search.
type Phase int

const (
	PhaseBracket Phase = iota
	PhaseBisect
	PhaseRefine
)

func (p Phase) String() string {
	switch p {
	case PhaseBracket:
		return "bracket"
	case PhaseBisect:
		return "bisect"
	case PhaseRefine:
		return "refine"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// EnergyTester is the outcome of a single shooting pass at one energy.
type EnergyTester struct {
	// Nodes is the number of sign changes of both passes combined.
	Nodes int
	// Mismatch is the left minus the right logarithmic derivative at the
	// matching point, in 1/nm.
	Mismatch float64
}

// Result reports an eigenvalue together with search diagnostics.
type Result struct {
	Value      float64
	Converged  bool
	Iterations int
	// Phase is the last phase entered. For unconverged results it is the
	// phase whose budget ran out.
	Phase Phase
	Nodes int
}

// Err returns nil for converged results and an error wrapping
// quantum.ErrNotConverged otherwise.
func (r Result) Err() error {
	if r.Converged {
		return nil
	}
	return fmt.Errorf("%w: %d nodes, %s phase after %d iterations (best estimate %.6g eV)",
		quantum.ErrNotConverged, r.Nodes, r.Phase, r.Iterations, r.Value)
}
