package well

import (
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
)

const (
	DefaultWellWidth  = 1.0
	DefaultWellHeight = 10.0
)

var finiteWellBounds = bounds{minX: -3, maxX: 3, minEnergy: -5, maxEnergy: 15, ground: 1}

// SquareWell has potential offset for |x| ≤ width/2 and offset+height
// elsewhere.
type SquareWell struct {
	*base
	width, height *quantum.Value[float64]
}

func NewSquareWell(p *quantum.Particle) *SquareWell {
	w := &SquareWell{
		base:   newBase(KindSquare, finiteWellBounds, p),
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

func (w *SquareWell) Width() *quantum.Value[float64]  { return w.width }
func (w *SquareWell) Height() *quantum.Value[float64] { return w.height }

func (w *SquareWell) PotentialValue(x float64) float64 {
	if math.Abs(x) <= w.width.Get()/2 {
		return w.offset.Get()
	}
	return w.offset.Get() + w.height.Get()
}

func (w *SquareWell) Params() map[string]float64 {
	return map[string]float64{
		"offset": w.offset.Get(),
		"width":  w.width.Get(),
		"height": w.height.Get(),
	}
}

func (w *SquareWell) SetParam(name string, v float64) error {
	return setFiniteParam(w.base, w.width, w.height, name, v)
}

// Reset restores the default offset, width and height.
func (w *SquareWell) Reset() {
	w.offset.Reset()
	w.width.Reset()
	w.height.Reset()
}

// setFiniteParam is shared by the square and asymmetric wells.
func setFiniteParam(b *base, width, height *quantum.Value[float64], name string, v float64) error {
	switch name {
	case "offset":
		b.offset.Set(v)
	case "width":
		if v <= 0 {
			return fmt.Errorf("width %g: %w", v, quantum.ErrInvalidParameter)
		}
		width.Set(v)
	case "height":
		if v <= 0 {
			return fmt.Errorf("height %g: %w", v, quantum.ErrInvalidParameter)
		}
		height.Set(v)
	default:
		return errNoParam(b.kind, name)
	}
	return nil
}
