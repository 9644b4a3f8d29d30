// Package model ties a particle, the five potentials and a superposition
// together and evolves the superposition in time.
package model

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/superposition"
	"github.com/san-kum/boundstates/internal/well"
	"gonum.org/v1/gonum/floats"
)

// Part selects the real or imaginary component of the wavefunction.
type Part int

const (
	Real Part = iota
	Imaginary
)

func (p Part) String() string {
	if p == Imaginary {
		return "imaginary"
	}
	return "real"
}

const (
	DefaultPotential = well.KindSquare
	// DefaultTimeStep is the animation step in fs.
	DefaultTimeStep = 0.05
)

type Config struct {
	Mass      float64
	Potential well.Kind
	TimeStep  float64
	Logger    *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Mass:      quantum.ElectronMass,
		Potential: DefaultPotential,
		TimeStep:  DefaultTimeStep,
	}
}

// Model owns every well for the lifetime of a session. Only one is active at
// a time. It is not safe for concurrent use.
type Model struct {
	particle *quantum.Particle
	registry *Registry
	wells    map[well.Kind]well.Well
	active   well.Well
	coeffs   *superposition.Coefficients

	// seen is the active well's revision the coefficients were sized for.
	seen     int
	time     float64
	timeStep float64
	logger   *slog.Logger
}

func New(cfg Config) (*Model, error) {
	if cfg.Mass <= 0 {
		return nil, fmt.Errorf("mass %g: %w", cfg.Mass, quantum.ErrInvalidParameter)
	}
	if cfg.TimeStep <= 0 {
		return nil, fmt.Errorf("time step %g: %w", cfg.TimeStep, quantum.ErrInvalidParameter)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		particle: quantum.NewParticle(cfg.Mass),
		registry: NewRegistry(),
		wells:    make(map[well.Kind]well.Well),
		timeStep: cfg.TimeStep,
		logger:   logger,
	}
	for _, k := range well.Kinds() {
		w, err := m.registry.Get(k.String(), m.particle)
		if err != nil {
			m.Close()
			return nil, err
		}
		if l, ok := w.(interface{ SetLogger(*slog.Logger) }); ok {
			l.SetLogger(logger)
		}
		m.wells[k] = w
	}
	if err := m.SetPotential(cfg.Potential); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// SetPotential activates the well of kind k, solves its spectrum and selects
// its ground state.
func (m *Model) SetPotential(k well.Kind) error {
	w, ok := m.wells[k]
	if !ok {
		return fmt.Errorf("%s: %w", k, quantum.ErrUnknownPotential)
	}
	m.active = w
	count := w.NumberOfEigenstates()
	m.seen = w.Revision().Get()
	if m.coeffs == nil {
		m.coeffs = superposition.New(count)
	} else {
		m.coeffs.Resize(count)
	}
	m.logger.Debug("potential selected", "well", w.Name(), "states", count)
	return nil
}

// SetPotentialByName activates the well registered under name.
func (m *Model) SetPotentialByName(name string) error {
	k, err := well.ParseKind(name)
	if err != nil {
		return err
	}
	return m.SetPotential(k)
}

func (m *Model) Potential() well.Well       { return m.active }
func (m *Model) Particle() *quantum.Particle { return m.particle }
func (m *Model) Registry() *Registry         { return m.registry }
func (m *Model) Time() float64               { return m.time }
func (m *Model) TimeStep() float64           { return m.timeStep }
func (m *Model) SetTime(t float64)           { m.time = t }

// Well returns the well of kind k, active or not.
func (m *Model) Well(k well.Kind) well.Well { return m.wells[k] }

// Wells returns every well in display order.
func (m *Model) Wells() []well.Well {
	out := make([]well.Well, 0, len(m.wells))
	for _, k := range well.Kinds() {
		out = append(out, m.wells[k])
	}
	return out
}

// Advance moves the clock forward by dt fs.
func (m *Model) Advance(dt float64) { m.time += dt }

// Step advances the clock by the configured time step.
func (m *Model) Step() { m.Advance(m.timeStep) }

// Coefficients returns the superposition of the active well, resized first
// if the well's spectrum changed size since it was last read.
func (m *Model) Coefficients() *superposition.Coefficients {
	m.sync()
	return m.coeffs
}

// sync keeps the coefficient count equal to the active well's state count. A
// change that keeps the count keeps the selection.
func (m *Model) sync() {
	rev := m.active.Revision().Get()
	if rev == m.seen {
		return
	}
	m.seen = rev
	if count := m.active.NumberOfEigenstates(); count != m.coeffs.Len() {
		m.logger.Debug("state count changed, selecting ground state",
			"well", m.active.Name(), "from", m.coeffs.Len(), "to", count)
		m.coeffs.Resize(count)
	}
}

// WavefunctionPoints samples one component of the superposition at time t:
// the sum over selected states of c·ψ(x)·cos(-E·t/ħ) for Real or
// c·ψ(x)·sin(-E·t/ħ) for Imaginary.
func (m *Model) WavefunctionPoints(t float64, part Part) ([]float64, []float64, error) {
	m.sync()
	w := m.active
	ground := w.GroundStateIndex()
	selected := m.coeffs.Selected()

	if len(selected) == 0 {
		xs, _ := w.PotentialPoints(quantum.NumPoints)
		return xs, make([]float64, len(xs)), nil
	}

	if len(selected) == 1 {
		i := selected[0]
		xs, ys, err := w.NthEigenstate(ground + i)
		if err != nil {
			return nil, nil, err
		}
		e, _ := w.NthEigenvalue(ground + i)
		floats.Scale(m.coeffs.Get(i)*phase(e, t, part), ys)
		return xs, ys, nil
	}

	var xs, sum []float64
	for _, i := range selected {
		n := ground + i
		sx, psi, err := w.NthEigenstate(n)
		if err != nil {
			return nil, nil, err
		}
		if sum == nil {
			xs, sum = sx, make([]float64, len(psi))
		}
		e, _ := w.NthEigenvalue(n)
		floats.AddScaled(sum, m.coeffs.Get(i)*phase(e, t, part), psi)
	}
	return xs, sum, nil
}

func phase(energy, t float64, part Part) float64 {
	arg := -energy * t / quantum.Hbar
	if part == Imaginary {
		return math.Sin(arg)
	}
	return math.Cos(arg)
}

// ProbabilityDensity returns the pointwise square of the real part.
func (m *Model) ProbabilityDensity(t float64) ([]float64, []float64, error) {
	xs, re, err := m.WavefunctionPoints(t, Real)
	if err != nil {
		return nil, nil, err
	}
	floats.Mul(re, re)
	return xs, re, nil
}

// AbsoluteSquare returns |ψ|² = re² + im², which unlike ProbabilityDensity
// is stationary for a single eigenstate.
func (m *Model) AbsoluteSquare(t float64) ([]float64, []float64, error) {
	xs, re, err := m.WavefunctionPoints(t, Real)
	if err != nil {
		return nil, nil, err
	}
	_, im, err := m.WavefunctionPoints(t, Imaginary)
	if err != nil {
		return nil, nil, err
	}
	floats.Mul(re, re)
	floats.Mul(im, im)
	floats.Add(re, im)
	return xs, re, nil
}

// Reset restores the mass, every well's parameters and the clock, and
// selects the ground state of the active well.
func (m *Model) Reset() {
	m.particle.Reset()
	for _, w := range m.Wells() {
		w.Reset()
	}
	m.time = 0
	m.seen = m.active.Revision().Get()
	m.coeffs.Resize(m.active.NumberOfEigenstates())
}

// Close releases every well's subscriptions.
func (m *Model) Close() {
	for _, w := range m.wells {
		w.Close()
	}
}
