// Package coulomb evaluates bound states of the Coulomb potential in closed
// form. The radial s-state polynomial is built from the hydrogen recurrence,
// so no numerical integration is involved.
package coulomb

import (
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

// Solver holds the Bohr-radius scale for one particle mass.
type Solver struct {
	mass float64
	ab   float64
}

func NewSolver(mass float64) (*Solver, error) {
	s := &Solver{}
	if err := s.SetMass(mass); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMass updates the mass and the Bohr radius ab = ħ²/(m·ke²).
func (s *Solver) SetMass(mass float64) error {
	if mass <= 0 {
		return fmt.Errorf("mass %g: %w", mass, quantum.ErrInvalidParameter)
	}
	s.mass = mass
	s.ab = quantum.Hbar * quantum.Hbar / (mass * quantum.KE2)
	return nil
}

func (s *Solver) Mass() float64 { return s.mass }

// BohrRadius returns ab in nm.
func (s *Solver) BohrRadius() float64 { return s.ab }

// Psi evaluates the s-state radial wavefunction of principal number n at
// distance |x|, including the 1/√(4π) angular factor.
func (s *Solver) Psi(n int, x float64) float64 {
	r := math.Abs(x)
	return 1 / math.Sqrt(4*math.Pi) * math.Exp(-r/(float64(n)*s.ab)) * s.bxSum(n, x)
}

// bxSum evaluates Σ b_j·|x|^j for j < n with
//
//	b_0 = 2·(n·ab)^(-3/2)
//	b_j = (2/(n·ab))·((j-n)/(j·(j+1)))·b_{j-1}
func (s *Solver) bxSum(n int, x float64) float64 {
	r := math.Abs(x)
	na := float64(n) * s.ab
	b := 2 * math.Pow(na, -1.5)
	sum := b
	rj := 1.0
	for j := 1; j < n; j++ {
		b = (2 / na) * (float64(j-n) / float64(j*(j+1))) * b
		rj *= r
		sum += b * rj
	}
	return sum
}

// Eigenvalue returns -m·ke⁴/(2·ħ²·n²) + offset.
func (s *Solver) Eigenvalue(n int, offset float64) float64 {
	nf := float64(n)
	return -s.mass*quantum.KE2*quantum.KE2/(2*quantum.Hbar*quantum.Hbar*nf*nf) + offset
}

func sample(xs []float64, f func(x float64) float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}
