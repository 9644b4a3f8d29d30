package quantum

import "fmt"

// Particle is the bound particle. Its mass is observable so that potentials
// can drop cached eigenstates when it changes.
type Particle struct {
	mass *Value[float64]
}

func NewParticle(mass float64) *Particle {
	return &Particle{mass: NewValue(mass)}
}

// Mass exposes the observable mass for subscription.
func (p *Particle) Mass() *Value[float64] { return p.mass }

// MassValue returns the current mass in eV·fs²/nm².
func (p *Particle) MassValue() float64 { return p.mass.Get() }

func (p *Particle) SetMass(m float64) error {
	if m <= 0 {
		return fmt.Errorf("mass %g: %w", m, ErrInvalidParameter)
	}
	p.mass.Set(m)
	return nil
}

// Reset restores the construction-time mass.
func (p *Particle) Reset() { p.mass.Reset() }
