package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

const (
	// seed is the amplitude of the first interior sample of each pass.
	seed = 1e-10
	// overflow triggers an in-place rescale of a pass.
	overflow = 1e100
)

// Solver integrates the Schrödinger equation for one sampled potential and
// one particle mass. It is not safe for concurrent use: passes share scratch
// buffers.
type Solver struct {
	xs, vs []float64
	mass   float64
	dx     float64
	hb     float64
	vmin   float64
	match  int
	cfg    Config

	k2          []float64
	left, right []float64
}

// New creates a solver for the potential vs sampled on the evenly spaced
// grid xs. The slices are copied.
func New(xs, vs []float64, mass float64, cfg Config) (*Solver, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	n := len(xs)
	if n != len(vs) {
		return nil, fmt.Errorf("grid has %d points but potential has %d: %w", n, len(vs), quantum.ErrInvalidParameter)
	}
	if n < 8 {
		return nil, fmt.Errorf("grid needs at least 8 points, got %d: %w", n, quantum.ErrInvalidParameter)
	}
	if mass <= 0 {
		return nil, fmt.Errorf("mass %g: %w", mass, quantum.ErrInvalidParameter)
	}
	dx := (xs[n-1] - xs[0]) / float64(n-1)
	if dx <= 0 {
		return nil, fmt.Errorf("grid must be increasing: %w", quantum.ErrInvalidParameter)
	}

	match := int(cfg.MatchFraction * float64(n-1))
	if match < 2 {
		match = 2
	}
	if match > n-3 {
		match = n - 3
	}

	s := &Solver{
		xs:    append([]float64(nil), xs...),
		vs:    append([]float64(nil), vs...),
		mass:  mass,
		dx:    dx,
		hb:    cfg.Hbar * cfg.Hbar / (2 * mass),
		vmin:  floats.Min(vs),
		match: match,
		cfg:   cfg,
	}
	s.ensureScratch(n)
	return s, nil
}

func (s *Solver) ensureScratch(n int) {
	if len(s.left) != n {
		s.k2 = make([]float64, n)
		s.left = make([]float64, n)
		s.right = make([]float64, n)
	}
}

// MatchIndex returns the grid index where the two passes meet.
func (s *Solver) MatchIndex() int { return s.match }

// Mass returns the particle mass the solver was built for.
func (s *Solver) Mass() float64 { return s.mass }

// fill computes the Numerov weights 1 + dx²·k²/12 for the given energy.
func (s *Solver) fill(energy float64) {
	h := s.dx * s.dx / 12
	for i, v := range s.vs {
		s.k2[i] = 1 + h*(energy-v)/s.hb
	}
}

// integrateLeft runs the forward recurrence from index 0 up to the matching
// point and returns the number of sign changes it crossed.
func (s *Solver) integrateLeft() int {
	f, psi := s.k2, s.left
	psi[0] = 0
	psi[1] = seed
	nodes := 0
	for i := 1; i < s.match; i++ {
		psi[i+1] = ((12-10*f[i])*psi[i] - f[i-1]*psi[i-1]) / f[i+1]
		if psi[i+1]*psi[i] < 0 {
			nodes++
		}
		if math.Abs(psi[i+1]) > overflow {
			floats.Scale(1/overflow, psi[:i+2])
		}
	}
	return nodes
}

// integrateRight runs the backward recurrence from the last index down to
// the matching point.
func (s *Solver) integrateRight() int {
	f, psi := s.k2, s.right
	n := len(psi)
	psi[n-1] = 0
	psi[n-2] = seed
	nodes := 0
	for i := n - 2; i > s.match; i-- {
		psi[i-1] = ((12-10*f[i])*psi[i] - f[i+1]*psi[i+1]) / f[i-1]
		if psi[i-1]*psi[i] < 0 {
			nodes++
		}
		if math.Abs(psi[i-1]) > overflow {
			floats.Scale(1/overflow, psi[i-1:])
		}
	}
	return nodes
}

// Test shoots both passes at energy and classifies the result.
//
// The mismatch is the residual of the Numerov recurrence at the matching
// point once both passes are scaled to the same value there, divided by
// dx·ψ(m). It approximates ψ'_left/ψ - ψ'_right/ψ and vanishes at the
// discrete eigenvalue.
func (s *Solver) Test(energy float64) EnergyTester {
	s.fill(energy)
	nodes := s.integrateLeft() + s.integrateRight()

	m, f := s.match, s.k2
	l0, r0 := s.left[m], s.right[m]
	if l0 == 0 {
		l0 = math.SmallestNonzeroFloat64
	}
	if r0 == 0 {
		r0 = math.SmallestNonzeroFloat64
	}
	residual := (12 - 10*f[m]) - f[m-1]*s.left[m-1]/l0 - f[m+1]*s.right[m+1]/r0
	return EnergyTester{Nodes: nodes, Mismatch: residual / s.dx}
}

// isUpper reports whether a tested energy lies above the eigenvalue with
// target nodes. Equal node counts are split by the sign of the mismatch.
func isUpper(t EnergyTester, target int) bool {
	return t.Nodes > target || (t.Nodes == target && t.Mismatch < 0)
}

// Wavefunction integrates both passes at energy, scales the right pass to
// meet the left one at the matching point and normalizes the stitched
// result so that its largest absolute sample is 1.
func (s *Solver) Wavefunction(energy float64) []float64 {
	s.fill(energy)
	s.integrateLeft()
	s.integrateRight()

	m := s.match
	ratio := 0.0
	if s.right[m] != 0 {
		ratio = s.left[m] / s.right[m]
	}

	psi := make([]float64, len(s.xs))
	copy(psi[:m+1], s.left[:m+1])
	for i := m + 1; i < len(psi); i++ {
		psi[i] = s.right[i] * ratio
	}
	normalizePeak(psi)
	return psi
}

func normalizePeak(psi []float64) {
	peak := 0.0
	for _, v := range psi {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		floats.Scale(1/peak, psi)
	}
}

// CountNodes counts sign changes in ys, skipping samples whose magnitude does
// not exceed threshold.
func CountNodes(ys []float64, threshold float64) int {
	nodes := 0
	prev := 0.0
	for _, y := range ys {
		if math.Abs(y) <= threshold {
			continue
		}
		if prev != 0 && (y > 0) != (prev > 0) {
			nodes++
		}
		prev = y
	}
	return nodes
}
