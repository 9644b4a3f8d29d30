package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Moments of a position-space probability density.
type Moments struct {
	Norm       float64
	Mean       float64
	MeanSquare float64
	Spread     float64
}

// Expectation integrates the density ψ² of the samples ys on the grid xs
// with the trapezoidal rule.
func Expectation(xs, ys []float64) (Moments, error) {
	if err := checkGrid(xs, ys); err != nil {
		return Moments{}, err
	}
	rho := make([]float64, len(ys))
	floats.MulTo(rho, ys, ys)

	norm := integrate.Trapezoidal(xs, rho)
	if norm == 0 {
		return Moments{}, fmt.Errorf("zero density: %w", quantum.ErrInvalidParameter)
	}

	weighted := make([]float64, len(xs))
	floats.MulTo(weighted, xs, rho)
	mean := integrate.Trapezoidal(xs, weighted) / norm
	floats.Mul(weighted, xs)
	meanSq := integrate.Trapezoidal(xs, weighted) / norm

	return Moments{
		Norm:       norm,
		Mean:       mean,
		MeanSquare: meanSq,
		Spread:     math.Sqrt(math.Max(0, meanSq-mean*mean)),
	}, nil
}

// Overlap returns Σ a·b·dx, the inner product of two real wavefunctions on
// an evenly spaced grid.
func Overlap(a, b []float64, dx float64) float64 {
	return floats.Dot(a, b) * dx
}

// ForbiddenFraction returns the share of the probability that lies where
// the potential vs exceeds energy.
func ForbiddenFraction(xs, ys, vs []float64, energy float64) (float64, error) {
	if err := checkGrid(xs, ys); err != nil {
		return 0, err
	}
	if len(vs) != len(xs) {
		return 0, fmt.Errorf("grid has %d points but potential has %d: %w", len(xs), len(vs), quantum.ErrInvalidParameter)
	}
	rho := make([]float64, len(ys))
	floats.MulTo(rho, ys, ys)
	total := integrate.Trapezoidal(xs, rho)
	if total == 0 {
		return 0, fmt.Errorf("zero density: %w", quantum.ErrInvalidParameter)
	}
	for i, v := range vs {
		if v <= energy {
			rho[i] = 0
		}
	}
	return integrate.Trapezoidal(xs, rho) / total, nil
}

// TurningPoints returns the positions, linearly interpolated, where the
// sampled potential crosses energy.
func TurningPoints(xs, vs []float64, energy float64) []float64 {
	var out []float64
	for i := 1; i < len(xs) && i < len(vs); i++ {
		a, b := vs[i-1]-energy, vs[i]-energy
		if a == 0 {
			out = append(out, xs[i-1])
			continue
		}
		if a*b < 0 {
			out = append(out, xs[i-1]+(xs[i]-xs[i-1])*a/(a-b))
		}
	}
	return out
}

func checkGrid(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("grid has %d points but wavefunction has %d: %w", len(xs), len(ys), quantum.ErrInvalidParameter)
	}
	if len(xs) < 2 {
		return fmt.Errorf("need at least 2 samples: %w", quantum.ErrInvalidParameter)
	}
	return nil
}
