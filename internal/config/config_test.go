package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/boundstates/internal/model"
	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Potential != "square" {
		t.Errorf("expected potential square, got %s", cfg.Potential)
	}
	if cfg.Mass != quantum.ElectronMass {
		t.Errorf("expected electron mass, got %f", cfg.Mass)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"unknown potential", func(c *Config) { c.Potential = "morse" }, quantum.ErrUnknownPotential},
		{"zero mass", func(c *Config) { c.Mass = 0 }, quantum.ErrInvalidParameter},
		{"negative width", func(c *Config) { c.Square.Width = -1 }, quantum.ErrInvalidParameter},
		{"zero frequency", func(c *Config) { c.Harmonic.Frequency = 0 }, quantum.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	cfg := DefaultConfig()
	cfg.Potential = "harmonic"
	cfg.Harmonic.Frequency = 0.75
	cfg.States = []float64{1, 0, 1}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Potential != "harmonic" || got.Harmonic.Frequency != 0.75 || len(got.States) != 3 {
		t.Errorf("loaded config differs: %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("square", "deep")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Square.Height != 40.0 {
		t.Errorf("expected height 40, got %f", cfg.Square.Height)
	}

	cfg.Square.Height = 1
	if Presets["square"]["deep"].Square.Height != 40.0 {
		t.Error("modifying a returned preset changed the table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("square", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "deep")
	if cfg != nil {
		t.Error("expected nil for nonexistent potential")
	}
}

func TestListPresets(t *testing.T) {
	for _, k := range well.Kinds() {
		if len(ListPresets(k.String())) == 0 {
			t.Errorf("expected presets for %s", k)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent potential")
	}
}

func TestPresetsValid(t *testing.T) {
	for potential, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Potential != potential {
				t.Errorf("%s/%s: potential is %s", potential, name, cfg.Potential)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", potential, name, err)
			}
		}
	}
}

func TestApply(t *testing.T) {
	m, err := model.New(model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	cfg := GetPreset("harmonic", "coherent")
	if err := cfg.Apply(m); err != nil {
		t.Fatal(err)
	}

	if m.Potential().Kind() != well.KindHarmonic {
		t.Errorf("expected harmonic, got %s", m.Potential().Name())
	}
	c := m.Coefficients()
	if !c.Normalized() || !c.IsSuperposition() {
		t.Errorf("expected a normalized superposition, got %v", c.Values())
	}
	sum := 0.0
	for _, v := range c.Values() {
		sum += v * v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("expected unit norm, got %f", sum)
	}
}

func TestApplyTooManyStates(t *testing.T) {
	m, err := model.New(model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	cfg := DefaultConfig()
	cfg.Square.Height = 2
	cfg.States = make([]float64, 50)
	if err := cfg.Apply(m); !errors.Is(err, quantum.ErrUnsupportedIndex) {
		t.Errorf("expected ErrUnsupportedIndex, got %v", err)
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("asymmetric", "height", 12); err != nil {
		t.Fatal(err)
	}
	if cfg.Asymmetric.Height != 12 || cfg.Square.Height != DefaultHeight {
		t.Errorf("expected only asymmetric height changed, got %+v / %+v", cfg.Asymmetric, cfg.Square)
	}
	if err := cfg.SetParam("coulomb_3d", "width", 1); !errors.Is(err, quantum.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
