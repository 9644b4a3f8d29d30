package well

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/solver"
	"gonum.org/v1/gonum/floats"
)

// Well is a one-dimensional potential together with its bound states.
type Well interface {
	Kind() Kind
	Name() string
	Domain() (minX, maxX float64)
	EnergyRange() (minEnergy, maxEnergy float64)
	GroundStateIndex() int

	PotentialValue(x float64) float64
	PotentialPoints(n int) (xs, ys []float64)

	Eigenvalues() []float64
	NthEigenvalue(n int) (float64, error)
	NthEigenstate(n int) (xs, ys []float64, err error)
	NumberOfEigenstates() int

	Offset() *quantum.Value[float64]
	Params() map[string]float64
	SetParam(name string, v float64) error
	Reset()

	// Revision increases every time the cached states are invalidated.
	Revision() *quantum.Value[int]
	Diagnostics() Diagnostics
	Close()
}

// Diagnostics accumulates solver statistics since construction.
type Diagnostics struct {
	Solves      int
	Iterations  int
	Unconverged int
	LastFailure error
}

// bounds are the fixed geometry of a variant.
type bounds struct {
	minX, maxX           float64
	minEnergy, maxEnergy float64
	ground               int
}

// base carries what all variants share: geometry, the particle, the offset
// and the two caches.
type base struct {
	kind     Kind
	bounds   bounds
	particle *quantum.Particle
	offset   *quantum.Value[float64]
	revision *quantum.Value[int]

	// Set by each variant's constructor.
	potential func(x float64) float64
	spectrum  func() []float64
	state     func(n int) ([]float64, error)

	xs          []float64
	eigenvalues []float64
	solved      bool
	eigenstates map[int][]float64
	numerov     *solver.Solver
	solverCfg   solver.Config

	diag   Diagnostics
	logger *slog.Logger
	unsubs []func()
}

func newBase(kind Kind, b bounds, p *quantum.Particle) *base {
	w := &base{
		kind:        kind,
		bounds:      b,
		particle:    p,
		offset:      quantum.NewValue(0.0),
		revision:    quantum.NewValue(0),
		eigenstates: make(map[int][]float64),
		solverCfg:   solver.DefaultConfig(),
		logger:      slog.Default(),
	}
	w.xs = make([]float64, quantum.NumPoints)
	floats.Span(w.xs, b.minX, b.maxX)
	w.watch(w.offset)
	w.watch(p.Mass())
	return w
}

// watch invalidates the caches whenever v changes.
func (b *base) watch(v *quantum.Value[float64]) {
	b.unsubs = append(b.unsubs, v.Subscribe(func(float64) { b.invalidate() }))
}

func (b *base) invalidate() {
	b.eigenvalues = nil
	b.solved = false
	b.eigenstates = make(map[int][]float64)
	b.numerov = nil
	b.revision.Set(b.revision.Get() + 1)
}

// Close drops every subscription the well holds. The well must not be used
// afterwards.
func (b *base) Close() {
	for _, u := range b.unsubs {
		u()
	}
	b.unsubs = nil
}

func (b *base) Kind() Kind                      { return b.kind }
func (b *base) Name() string                    { return b.kind.String() }
func (b *base) Domain() (float64, float64)      { return b.bounds.minX, b.bounds.maxX }
func (b *base) EnergyRange() (float64, float64) { return b.bounds.minEnergy, b.bounds.maxEnergy }
func (b *base) GroundStateIndex() int           { return b.bounds.ground }
func (b *base) Offset() *quantum.Value[float64] { return b.offset }
func (b *base) Revision() *quantum.Value[int]   { return b.revision }
func (b *base) Diagnostics() Diagnostics        { return b.diag }
func (b *base) SetLogger(l *slog.Logger)        { b.logger = l }
func (b *base) Particle() *quantum.Particle     { return b.particle }
func (b *base) mass() float64                   { return b.particle.MassValue() }

// SetSolverConfig replaces the Numerov settings and clears the caches.
func (b *base) SetSolverConfig(cfg solver.Config) {
	b.solverCfg = cfg
	b.invalidate()
}

// PotentialPoints samples the potential on n evenly spaced points across the
// domain.
func (b *base) PotentialPoints(n int) ([]float64, []float64) {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	floats.Span(xs, b.bounds.minX, b.bounds.maxX)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = b.potential(x)
	}
	return xs, ys
}

func (b *base) ensureSpectrum() {
	if !b.solved {
		b.eigenvalues = b.spectrum()
		b.solved = true
	}
}

// Eigenvalues returns every bound-state energy below the variant's ceiling,
// starting at the ground state. The spectrum is computed once per parameter
// set.
func (b *base) Eigenvalues() []float64 {
	b.ensureSpectrum()
	out := make([]float64, len(b.eigenvalues))
	copy(out, b.eigenvalues)
	return out
}

func (b *base) NumberOfEigenstates() int {
	b.ensureSpectrum()
	return len(b.eigenvalues)
}

// checkIndex validates n against the cached spectrum.
func (b *base) checkIndex(n int) error {
	lo := b.bounds.ground
	hi := lo + len(b.eigenvalues) - 1
	if n < lo || n > hi {
		return &quantum.IndexError{N: n, Min: lo, Max: hi}
	}
	return nil
}

func (b *base) NthEigenvalue(n int) (float64, error) {
	b.ensureSpectrum()
	if err := b.checkIndex(n); err != nil {
		return 0, err
	}
	return b.eigenvalues[n-b.bounds.ground], nil
}

// NthEigenstate returns the sampled wavefunction of state n, normalized to a
// peak amplitude of 1. The returned slices are copies of the cache.
func (b *base) NthEigenstate(n int) ([]float64, []float64, error) {
	b.ensureSpectrum()
	if err := b.checkIndex(n); err != nil {
		return nil, nil, err
	}
	ys, ok := b.eigenstates[n]
	if !ok {
		var err error
		ys, err = b.state(n)
		if err != nil {
			return nil, nil, fmt.Errorf("%s eigenstate %d: %w", b.kind, n, err)
		}
		b.eigenstates[n] = ys
	}
	xs := make([]float64, len(b.xs))
	copy(xs, b.xs)
	out := make([]float64, len(ys))
	copy(out, ys)
	return xs, out, nil
}

func (b *base) potentialSamples() []float64 {
	vs := make([]float64, len(b.xs))
	for i, x := range b.xs {
		vs[i] = b.potential(x)
	}
	return vs
}

func (b *base) record(res solver.Result, n int) {
	b.diag.Solves++
	b.diag.Iterations += res.Iterations
	if res.Converged {
		return
	}
	b.diag.Unconverged++
	b.diag.LastFailure = res.Err()
	b.logger.Warn("eigenvalue search did not converge",
		"well", b.kind.String(),
		"n", n,
		"phase", res.Phase.String(),
		"iterations", res.Iterations,
		"estimate", res.Value,
	)
}

// ParamNames returns the adjustable parameter names of w in sorted order.
func ParamNames(w Well) []string {
	m := w.Params()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizePeak scales ys in place so that its largest magnitude is 1.
func normalizePeak(ys []float64) []float64 {
	if peak := floats.Norm(ys, math.Inf(1)); peak > 0 {
		floats.Scale(1/peak, ys)
	}
	return ys
}

func errNoParam(k Kind, name string) error {
	return fmt.Errorf("%s has no parameter %q: %w", k, name, quantum.ErrInvalidParameter)
}
