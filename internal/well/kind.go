package well

import (
	"fmt"

	"github.com/san-kum/boundstates/internal/quantum"
)

// Kind tags the closed set of potential variants.
type Kind int

const (
	KindSquare Kind = iota
	KindAsymmetric
	KindCoulomb1D
	KindCoulomb3D
	KindHarmonic
)

var kindNames = [...]string{
	KindSquare:     "square",
	KindAsymmetric: "asymmetric",
	KindCoulomb1D:  "coulomb_1d",
	KindCoulomb3D:  "coulomb_3d",
	KindHarmonic:   "harmonic",
}

// Kinds lists every variant in display order.
func Kinds() []Kind {
	return []Kind{KindSquare, KindAsymmetric, KindCoulomb1D, KindCoulomb3D, KindHarmonic}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a name such as "square" or "coulomb_3d" to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, quantum.ErrUnknownPotential)
}

