package well

import (
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

// DefaultFrequency is the angular frequency ω in 1/fs.
const DefaultFrequency = 1.0

var harmonicBounds = bounds{minX: -3, maxX: 3, minEnergy: -5, maxEnergy: 15, ground: 0}

// minTailDecay is the smallest WKB exponent ∫κ dx between the outer turning
// point and the grid edge for which the closed-form energy is still an
// eigenvalue of the sampled problem. The edge shifts the energy by about
// exp(-2·minTailDecay) of the level spacing.
const minTailDecay = 4.0

// HarmonicOscillator has potential ½·m·(ω·x)² + offset. Its energies are
// known in closed form; its wavefunctions come from the Numerov solver.
type HarmonicOscillator struct {
	*base
	frequency *quantum.Value[float64]
}

func NewHarmonicOscillator(p *quantum.Particle) *HarmonicOscillator {
	w := &HarmonicOscillator{
		base:      newBase(KindHarmonic, harmonicBounds, p),
		frequency: quantum.NewValue(DefaultFrequency),
	}
	w.watch(w.frequency)
	w.potential = w.PotentialValue
	w.spectrum = w.closedFormSpectrum
	w.state = w.numericState
	return w
}

func (w *HarmonicOscillator) Frequency() *quantum.Value[float64] { return w.frequency }

func (w *HarmonicOscillator) PotentialValue(x float64) float64 {
	wx := w.frequency.Get() * x
	return 0.5*w.mass()*wx*wx + w.offset.Get()
}

// energy returns ħ·ω·(n + ½) + offset.
func (w *HarmonicOscillator) energy(n int) float64 {
	return quantum.Hbar*w.frequency.Get()*(float64(n)+0.5) + w.offset.Get()
}

// closedFormSpectrum lists ħω(n+½) + offset below the ceiling, stopping at
// the first excited state whose tail the grid would cut off. The ground
// state is always kept.
func (w *HarmonicOscillator) closedFormSpectrum() []float64 {
	var out []float64
	for n := w.bounds.ground; n < w.bounds.ground+maxNumericStates; n++ {
		e := w.energy(n)
		if e >= w.bounds.maxEnergy || (n > w.bounds.ground && w.tailDecay(n) < minTailDecay) {
			break
		}
		out = append(out, e)
	}
	return out
}

// tailDecay returns the WKB exponent of state n from its classical turning
// point to the nearer grid edge, in the dimensionless coordinate
// ξ = x·√(mω/ħ) where the turning point sits at ξ = √(2n+1).
func (w *HarmonicOscillator) tailDecay(n int) float64 {
	edge := math.Min(-w.bounds.minX, w.bounds.maxX)
	xm := edge * math.Sqrt(w.mass()*w.frequency.Get()/quantum.Hbar)
	xt := math.Sqrt(2*float64(n) + 1)
	if xm <= xt {
		return 0
	}
	r := math.Sqrt(xm*xm - xt*xt)
	return 0.5 * (xm*r - xt*xt*math.Log((xm+r)/xt))
}

func (w *HarmonicOscillator) Params() map[string]float64 {
	return map[string]float64{
		"offset":    w.offset.Get(),
		"frequency": w.frequency.Get(),
	}
}

func (w *HarmonicOscillator) SetParam(name string, v float64) error {
	switch name {
	case "offset":
		w.offset.Set(v)
	case "frequency":
		if v <= 0 {
			return fmt.Errorf("frequency %g: %w", v, quantum.ErrInvalidParameter)
		}
		w.frequency.Set(v)
	default:
		return errNoParam(w.kind, name)
	}
	return nil
}

func (w *HarmonicOscillator) Reset() {
	w.offset.Reset()
	w.frequency.Reset()
}
