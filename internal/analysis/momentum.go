package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// MomentumDensity returns the wavenumbers k (1/nm) in increasing order and
// |φ(k)|² of the real samples ys on a grid with spacing dx. The density is
// scaled so that it integrates to 1 over k.
func MomentumDensity(ys []float64, dx float64) ([]float64, []float64) {
	n := len(ys)
	if n == 0 || dx <= 0 {
		return nil, nil
	}
	spectrum := fft.FFTReal(ys)

	ks := make([]float64, n)
	density := make([]float64, n)
	dk := 2 * math.Pi / (float64(n) * dx)
	// Shift so that k = 0 sits in the middle.
	half := n / 2
	for i := range spectrum {
		bin := i - half
		ks[i] = float64(bin) * dk
		a := cmplx.Abs(spectrum[(bin+n)%n])
		density[i] = a * a
	}

	total := floats.Sum(density) * dk
	if total > 0 {
		floats.Scale(1/total, density)
	}
	return ks, density
}

// MeanMomentum returns ⟨k⟩ of a density from MomentumDensity.
func MeanMomentum(ks, density []float64) float64 {
	if len(ks) < 2 {
		return 0
	}
	return floats.Dot(ks, density) * (ks[1] - ks[0])
}
