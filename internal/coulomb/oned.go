package coulomb

import (
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

// MaxOneDStates is the number of 1D states with a tabulated amplitude.
const MaxOneDStates = 10

// oneDScale holds, per state, the reciprocal of the peak of |x·Psi| at the
// electron mass. Together with the √(mₑ/m) factor it keeps the peak of every
// 1D state at 1 independently of the mass.
var oneDScale = tabulateOneD()

func tabulateOneD() [MaxOneDStates]float64 {
	var table [MaxOneDStates]float64
	ref := &Solver{}
	_ = ref.SetMass(quantum.ElectronMass)

	for i := range table {
		n := i + 1
		// The outermost lobe ends near 2n²·ab; sample well past it.
		rmax := 4 * float64(n*n) * ref.ab
		const samples = 20000
		peak := 0.0
		for k := 1; k <= samples; k++ {
			r := rmax * float64(k) / samples
			peak = math.Max(peak, math.Abs(r*ref.Psi(n, r)))
		}
		table[i] = 1 / peak
	}
	return table
}

// OneD is the odd-parity 1D Coulomb solution ψ(x) ∝ x·R(|x|).
type OneD struct {
	*Solver
}

func NewOneD(mass float64) (*OneD, error) {
	s, err := NewSolver(mass)
	if err != nil {
		return nil, err
	}
	return &OneD{Solver: s}, nil
}

// PsiScaled returns the peak-normalized amplitude of state n at x.
func (o *OneD) PsiScaled(n int, x float64) (float64, error) {
	if n < 1 || n > MaxOneDStates {
		return 0, &quantum.IndexError{N: n, Min: 1, Max: MaxOneDStates}
	}
	return o.psiScaled(n, x), nil
}

func (o *OneD) psiScaled(n int, x float64) float64 {
	return oneDScale[n-1] * math.Sqrt(quantum.ElectronMass/o.mass) * x * o.Psi(n, x)
}

// Wavefunction samples state n on xs.
func (o *OneD) Wavefunction(xs []float64, n int) ([]float64, error) {
	if n < 1 || n > MaxOneDStates {
		return nil, &quantum.IndexError{N: n, Min: 1, Max: MaxOneDStates}
	}
	return sample(xs, func(x float64) float64 { return o.psiScaled(n, x) }), nil
}
