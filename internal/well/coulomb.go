package well

import (
	"math"

	"github.com/san-kum/boundstates/internal/coulomb"
	"github.com/san-kum/boundstates/internal/quantum"
)

// minCoulombRadius keeps the potential finite at the nucleus.
const minCoulombRadius = 1e-4

var coulombBounds = bounds{minX: -6, maxX: 6, minEnergy: -15, maxEnergy: 5, ground: 1}

// coulombWell holds what the 1D and 3D variants share: the attractive
// potential and the closed-form energies.
type coulombWell struct {
	*base
	solver *coulomb.Solver
}

func newCoulombWell(kind Kind, p *quantum.Particle, s *coulomb.Solver) *coulombWell {
	w := &coulombWell{base: newBase(kind, coulombBounds, p), solver: s}
	w.potential = w.PotentialValue
	w.spectrum = w.closedFormSpectrum
	return w
}

func (w *coulombWell) PotentialValue(x float64) float64 {
	r := math.Max(math.Abs(x), minCoulombRadius)
	return w.offset.Get() - quantum.KE2/r
}

// syncMass hands the particle's current mass to the closed-form solver. It
// runs before every computation so that a listener querying the well while
// the mass notification is still in flight never sees the previous mass.
func (w *coulombWell) syncMass() {
	// Particle.SetMass already rejected non-positive masses.
	_ = w.solver.SetMass(w.mass())
}

func (w *coulombWell) closedFormSpectrum() []float64 {
	w.syncMass()
	var out []float64
	for n := 1; n <= coulomb.MaxOneDStates; n++ {
		e := w.solver.Eigenvalue(n, w.offset.Get())
		if e >= w.bounds.maxEnergy {
			break
		}
		out = append(out, e)
	}
	return out
}

func (w *coulombWell) Params() map[string]float64 {
	return map[string]float64{"offset": w.offset.Get()}
}

func (w *coulombWell) SetParam(name string, v float64) error {
	if name != "offset" {
		return errNoParam(w.kind, name)
	}
	w.offset.Set(v)
	return nil
}

func (w *coulombWell) Reset() { w.offset.Reset() }

// BohrRadius returns the effective Bohr radius for the current mass.
func (w *coulombWell) BohrRadius() float64 {
	w.syncMass()
	return w.solver.BohrRadius()
}

// Coulomb1D is the odd-parity one-dimensional hydrogen-like atom.
type Coulomb1D struct {
	*coulombWell
	oned *coulomb.OneD
}

func NewCoulomb1D(p *quantum.Particle) *Coulomb1D {
	// The particle guarantees a positive mass.
	oned, _ := coulomb.NewOneD(p.MassValue())
	w := &Coulomb1D{coulombWell: newCoulombWell(KindCoulomb1D, p, oned.Solver), oned: oned}
	w.state = func(n int) ([]float64, error) {
		w.syncMass()
		ys, err := w.oned.Wavefunction(w.xs, n)
		if err != nil {
			return nil, err
		}
		return normalizePeak(ys), nil
	}
	return w
}

// Coulomb3D shows the s-states of the three-dimensional hydrogen-like atom
// along a line through the nucleus.
type Coulomb3D struct {
	*coulombWell
	threed *coulomb.ThreeD
}

func NewCoulomb3D(p *quantum.Particle) *Coulomb3D {
	threed, _ := coulomb.NewThreeD(p.MassValue())
	w := &Coulomb3D{coulombWell: newCoulombWell(KindCoulomb3D, p, threed.Solver), threed: threed}
	w.state = func(n int) ([]float64, error) {
		w.syncMass()
		ys, err := w.threed.Wavefunction(w.xs, n)
		if err != nil {
			return nil, err
		}
		return normalizePeak(ys), nil
	}
	return w
}
