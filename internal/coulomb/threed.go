package coulomb

import (
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

// ThreeD is the s-state radial solution of the 3D Coulomb potential plotted
// along a line through the nucleus.
type ThreeD struct {
	*Solver
}

func NewThreeD(mass float64) (*ThreeD, error) {
	s, err := NewSolver(mass)
	if err != nil {
		return nil, err
	}
	return &ThreeD{Solver: s}, nil
}

// PsiScaled returns √π·(n·ab)^1.5·Psi(n, x), which equals 1 at the nucleus.
func (t *ThreeD) PsiScaled(n int, x float64) (float64, error) {
	if n < 1 {
		return 0, &quantum.IndexError{N: n, Min: 1, Max: math.MaxInt}
	}
	return t.psiScaled(n, x), nil
}

func (t *ThreeD) psiScaled(n int, x float64) float64 {
	return math.Sqrt(math.Pi) * math.Pow(float64(n)*t.ab, 1.5) * t.Psi(n, x)
}

func (t *ThreeD) Wavefunction(xs []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, &quantum.IndexError{N: n, Min: 1, Max: math.MaxInt}
	}
	return sample(xs, func(x float64) float64 { return t.psiScaled(n, x) }), nil
}
