package model

import (
	"fmt"
	"sort"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

// Constructor builds a well bound to a particle.
type Constructor func(p *quantum.Particle) well.Well

// Registry maps potential names to constructors.
type Registry struct {
	potentials map[string]Constructor
}

func NewRegistry() *Registry {
	r := &Registry{potentials: make(map[string]Constructor)}

	r.potentials[well.KindSquare.String()] = func(p *quantum.Particle) well.Well { return well.NewSquareWell(p) }
	r.potentials[well.KindAsymmetric.String()] = func(p *quantum.Particle) well.Well { return well.NewAsymmetric(p) }
	r.potentials[well.KindCoulomb1D.String()] = func(p *quantum.Particle) well.Well { return well.NewCoulomb1D(p) }
	r.potentials[well.KindCoulomb3D.String()] = func(p *quantum.Particle) well.Well { return well.NewCoulomb3D(p) }
	r.potentials[well.KindHarmonic.String()] = func(p *quantum.Particle) well.Well { return well.NewHarmonicOscillator(p) }

	return r
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, fn Constructor) {
	r.potentials[name] = fn
}

func (r *Registry) Get(name string, p *quantum.Particle) (well.Well, error) {
	fn, ok := r.potentials[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, quantum.ErrUnknownPotential)
	}
	return fn(p), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.potentials))
	for name := range r.potentials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
