package well

import (
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

// Asymmetric is a triangular well: the floor rises linearly from offset at
// the left edge to offset+height at the right edge, and the potential is
// offset+height outside.
type Asymmetric struct {
	*base
	width, height *quantum.Value[float64]
}

func NewAsymmetric(p *quantum.Particle) *Asymmetric {
	w := &Asymmetric{
		base:   newBase(KindAsymmetric, finiteWellBounds, p),
		width:  quantum.NewValue(DefaultWellWidth),
		height: quantum.NewValue(DefaultWellHeight),
	}
	w.watch(w.width)
	w.watch(w.height)
	w.potential = w.PotentialValue
	w.spectrum = func() []float64 { return w.numericSpectrum(w.offset.Get() + w.height.Get()) }
	w.state = w.numericState
	return w
}

func (w *Asymmetric) Width() *quantum.Value[float64]  { return w.width }
func (w *Asymmetric) Height() *quantum.Value[float64] { return w.height }

func (w *Asymmetric) PotentialValue(x float64) float64 {
	width, height := w.width.Get(), w.height.Get()
	if math.Abs(x) <= width/2 {
		return w.offset.Get() + height*(x+width/2)/width
	}
	return w.offset.Get() + height
}

func (w *Asymmetric) Params() map[string]float64 {
	return map[string]float64{
		"offset": w.offset.Get(),
		"width":  w.width.Get(),
		"height": w.height.Get(),
	}
}

func (w *Asymmetric) SetParam(name string, v float64) error {
	return setFiniteParam(w.base, w.width, w.height, name, v)
}

func (w *Asymmetric) Reset() {
	w.offset.Reset()
	w.width.Reset()
	w.height.Reset()
}
