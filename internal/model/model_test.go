package model

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

func newModel(t *testing.T, k well.Kind) *Model {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Potential = k
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"zero mass", Config{Mass: 0, TimeStep: 0.1}, quantum.ErrInvalidParameter},
		{"zero step", Config{Mass: 1, TimeStep: 0}, quantum.ErrInvalidParameter},
		{"bad kind", Config{Mass: 1, TimeStep: 0.1, Potential: well.Kind(99)}, quantum.ErrUnknownPotential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestSingleStatePhase(t *testing.T) {
	m := newModel(t, well.KindHarmonic)
	e0, _ := m.Potential().NthEigenvalue(0)
	_, psi, _ := m.Potential().NthEigenstate(0)

	const tm = 1.7
	_, re, err := m.WavefunctionPoints(tm, Real)
	if err != nil {
		t.Fatal(err)
	}
	_, im, err := m.WavefunctionPoints(tm, Imaginary)
	if err != nil {
		t.Fatal(err)
	}
	c, s := math.Cos(-e0*tm/quantum.Hbar), math.Sin(-e0*tm/quantum.Hbar)
	for i := range psi {
		if math.Abs(re[i]-c*psi[i]) > 1e-12 || math.Abs(im[i]-s*psi[i]) > 1e-12 {
			t.Fatalf("sample %d: got (%f, %f), expected (%f, %f)", i, re[i], im[i], c*psi[i], s*psi[i])
		}
	}
}

func TestSuperpositionSum(t *testing.T) {
	m := newModel(t, well.KindSquare)
	c := m.Coefficients()
	_ = c.Set(0, 1)
	_ = c.Set(1, 1)
	if err := c.Normalize(); err != nil {
		t.Fatal(err)
	}

	_, got, err := m.WavefunctionPoints(0, Real)
	if err != nil {
		t.Fatal(err)
	}
	_, psi1, _ := m.Potential().NthEigenstate(1)
	_, psi2, _ := m.Potential().NthEigenstate(2)
	for i := range got {
		want := (psi1[i] + psi2[i]) / math.Sqrt2
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("sample %d: expected %f, got %f", i, want, got[i])
		}
	}
}

func TestProbabilityDensity(t *testing.T) {
	m := newModel(t, well.KindSquare)
	_, re, _ := m.WavefunctionPoints(0.4, Real)
	_, rho, err := m.ProbabilityDensity(0.4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range re {
		if math.Abs(rho[i]-re[i]*re[i]) > 1e-15 {
			t.Fatalf("sample %d: expected %f, got %f", i, re[i]*re[i], rho[i])
		}
	}
}

func TestAbsoluteSquareStationary(t *testing.T) {
	m := newModel(t, well.KindCoulomb3D)
	_, a, err := m.AbsoluteSquare(0)
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := m.AbsoluteSquare(3.3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Fatalf("sample %d changed over time: %f -> %f", i, a[i], b[i])
		}
	}
}

func TestSetPotentialResetsCoefficients(t *testing.T) {
	m := newModel(t, well.KindSquare)
	_ = m.Coefficients().Set(1, 0.5)

	if err := m.SetPotential(well.KindCoulomb1D); err != nil {
		t.Fatal(err)
	}
	c := m.Coefficients()
	if c.Len() != m.Potential().NumberOfEigenstates() {
		t.Errorf("expected %d coefficients, got %d", m.Potential().NumberOfEigenstates(), c.Len())
	}
	if c.IsSuperposition() || c.Get(0) != 1 {
		t.Errorf("expected ground state only, got %v", c.Values())
	}
}

func TestSetPotentialByName(t *testing.T) {
	m := newModel(t, well.KindSquare)
	if err := m.SetPotentialByName("harmonic"); err != nil {
		t.Fatal(err)
	}
	if m.Potential().Kind() != well.KindHarmonic {
		t.Errorf("expected harmonic, got %s", m.Potential().Name())
	}
	if err := m.SetPotentialByName("morse"); !errors.Is(err, quantum.ErrUnknownPotential) {
		t.Errorf("expected ErrUnknownPotential, got %v", err)
	}
}

func TestCoefficientsFollowStateCount(t *testing.T) {
	m := newModel(t, well.KindSquare)
	before := m.Coefficients().Len()

	if err := m.Potential().SetParam("height", 40); err != nil {
		t.Fatal(err)
	}
	after := m.Coefficients().Len()
	if after == before {
		t.Fatalf("expected more states in a deeper well, still %d", after)
	}
	if after != m.Potential().NumberOfEigenstates() {
		t.Errorf("expected %d coefficients, got %d", m.Potential().NumberOfEigenstates(), after)
	}
}

func TestClockAndReset(t *testing.T) {
	m := newModel(t, well.KindSquare)
	m.Step()
	m.Advance(1)
	if got, want := m.Time(), DefaultTimeStep+1; math.Abs(got-want) > 1e-15 {
		t.Errorf("expected time %f, got %f", want, got)
	}

	_ = m.Particle().SetMass(1)
	_ = m.Potential().SetParam("width", 2)
	m.Reset()

	if m.Time() != 0 {
		t.Errorf("expected time 0 after reset, got %f", m.Time())
	}
	if m.Particle().MassValue() != quantum.ElectronMass {
		t.Errorf("expected mass restored, got %f", m.Particle().MassValue())
	}
	if w := m.Potential().Params()["width"]; w != well.DefaultWellWidth {
		t.Errorf("expected width restored, got %f", w)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.List()
	if len(names) != len(well.Kinds()) {
		t.Fatalf("expected %d potentials, got %v", len(well.Kinds()), names)
	}
	p := quantum.NewParticle(quantum.ElectronMass)
	for _, name := range names {
		w, err := r.Get(name, p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if w.Name() != name {
			t.Errorf("expected %s, got %s", name, w.Name())
		}
		w.Close()
	}
	if _, err := r.Get("morse", p); !errors.Is(err, quantum.ErrUnknownPotential) {
		t.Errorf("expected ErrUnknownPotential, got %v", err)
	}
}
