package well

import (
	"github.com/san-kum/boundstates/internal/solver"
)

// maxNumericStates stops the spectrum search for wells whose ceiling would
// otherwise admit an unbounded number of states.
const maxNumericStates = 64

// shooter returns the Numerov solver for the current parameters, building
// it after each invalidation.
func (b *base) shooter() (*solver.Solver, error) {
	if b.numerov != nil {
		return b.numerov, nil
	}
	s, err := solver.New(b.xs, b.potentialSamples(), b.mass(), b.solverCfg)
	if err != nil {
		return nil, err
	}
	b.numerov = s
	return s, nil
}

// numericSpectrum solves for successive node counts until an energy reaches
// ceiling.
func (b *base) numericSpectrum(ceiling float64) []float64 {
	s, err := b.shooter()
	if err != nil {
		b.logger.Error("cannot build solver", "well", b.kind.String(), "err", err)
		return nil
	}

	var out []float64
	for nodes := 0; nodes < maxNumericStates; nodes++ {
		n := b.bounds.ground + nodes
		res, err := s.Energy(nodes)
		if err != nil {
			b.logger.Error("eigenvalue search failed", "well", b.kind.String(), "n", n, "err", err)
			break
		}
		b.record(res, n)
		if res.Value >= ceiling {
			break
		}
		if len(out) > 0 && res.Value <= out[len(out)-1] {
			b.logger.Warn("spectrum not increasing, truncating",
				"well", b.kind.String(), "n", n, "energy", res.Value, "previous", out[len(out)-1])
			break
		}
		out = append(out, res.Value)
	}
	return out
}

// numericState integrates the wavefunction of state n at its cached energy.
func (b *base) numericState(n int) ([]float64, error) {
	s, err := b.shooter()
	if err != nil {
		return nil, err
	}
	return s.Wavefunction(b.eigenvalues[n-b.bounds.ground]), nil
}
