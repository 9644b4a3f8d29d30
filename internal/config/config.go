package config

import (
	"fmt"
	"os"

	"github.com/san-kum/boundstates/internal/model"
	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPotential = "square"
	DefaultMass      = quantum.ElectronMass
	DefaultTimeStep  = model.DefaultTimeStep
	DefaultWidth     = well.DefaultWellWidth
	DefaultHeight    = well.DefaultWellHeight
	DefaultFrequency = well.DefaultFrequency
)

type Config struct {
	Potential  string           `yaml:"potential"`
	Mass       float64          `yaml:"mass"`
	TimeStep   float64          `yaml:"time_step"`
	States     []float64        `yaml:"states,omitempty"`
	Square     FiniteWellConfig `yaml:"square"`
	Asymmetric FiniteWellConfig `yaml:"asymmetric"`
	Harmonic   HarmonicConfig   `yaml:"harmonic"`
	Coulomb    CoulombConfig    `yaml:"coulomb"`
}

type FiniteWellConfig struct {
	Offset float64 `yaml:"offset"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type HarmonicConfig struct {
	Offset    float64 `yaml:"offset"`
	Frequency float64 `yaml:"frequency"`
}

// CoulombConfig applies to both the 1D and the 3D variant.
type CoulombConfig struct {
	Offset float64 `yaml:"offset"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential:  DefaultPotential,
		Mass:       DefaultMass,
		TimeStep:   DefaultTimeStep,
		Square:     FiniteWellConfig{Width: DefaultWidth, Height: DefaultHeight},
		Asymmetric: FiniteWellConfig{Width: DefaultWidth, Height: DefaultHeight},
		Harmonic:   HarmonicConfig{Frequency: DefaultFrequency},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every value that a well or particle setter would reject.
func (c *Config) Validate() error {
	if _, err := well.ParseKind(c.Potential); err != nil {
		return err
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"mass", c.Mass},
		{"time_step", c.TimeStep},
		{"square.width", c.Square.Width},
		{"square.height", c.Square.Height},
		{"asymmetric.width", c.Asymmetric.Width},
		{"asymmetric.height", c.Asymmetric.Height},
		{"harmonic.frequency", c.Harmonic.Frequency},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %g: %w", p.name, p.v, quantum.ErrInvalidParameter)
		}
	}
	return nil
}

// ModelConfig returns the settings a model is constructed with.
func (c *Config) ModelConfig() (model.Config, error) {
	k, err := well.ParseKind(c.Potential)
	if err != nil {
		return model.Config{}, err
	}
	mc := model.DefaultConfig()
	mc.Mass = c.Mass
	mc.Potential = k
	mc.TimeStep = c.TimeStep
	return mc, nil
}

// Apply pushes the well parameters, mass and initial superposition into m
// and activates the configured potential.
func (c *Config) Apply(m *model.Model) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := m.Particle().SetMass(c.Mass); err != nil {
		return err
	}

	params := map[well.Kind]map[string]float64{
		well.KindSquare:     {"offset": c.Square.Offset, "width": c.Square.Width, "height": c.Square.Height},
		well.KindAsymmetric: {"offset": c.Asymmetric.Offset, "width": c.Asymmetric.Width, "height": c.Asymmetric.Height},
		well.KindHarmonic:   {"offset": c.Harmonic.Offset, "frequency": c.Harmonic.Frequency},
		well.KindCoulomb1D:  {"offset": c.Coulomb.Offset},
		well.KindCoulomb3D:  {"offset": c.Coulomb.Offset},
	}
	for k, ps := range params {
		w := m.Well(k)
		for name, v := range ps {
			if err := w.SetParam(name, v); err != nil {
				return err
			}
		}
	}

	if err := m.SetPotentialByName(c.Potential); err != nil {
		return err
	}
	return c.applyStates(m)
}

func (c *Config) applyStates(m *model.Model) error {
	if len(c.States) == 0 {
		return nil
	}
	coeffs := m.Coefficients()
	if len(c.States) > coeffs.Len() {
		return fmt.Errorf("%d states requested but %s has %d: %w",
			len(c.States), c.Potential, coeffs.Len(), quantum.ErrUnsupportedIndex)
	}
	for i := 0; i < coeffs.Len(); i++ {
		v := 0.0
		if i < len(c.States) {
			v = c.States[i]
		}
		if err := coeffs.Set(i, v); err != nil {
			return err
		}
	}
	return coeffs.Normalize()
}

// SetParam overrides one parameter of the block for potential. It backs the
// CLI's per-parameter flags.
func (c *Config) SetParam(potential, name string, v float64) error {
	k, err := well.ParseKind(potential)
	if err != nil {
		return err
	}
	var target *float64
	switch k {
	case well.KindSquare, well.KindAsymmetric:
		block := &c.Square
		if k == well.KindAsymmetric {
			block = &c.Asymmetric
		}
		switch name {
		case "offset":
			target = &block.Offset
		case "width":
			target = &block.Width
		case "height":
			target = &block.Height
		}
	case well.KindHarmonic:
		switch name {
		case "offset":
			target = &c.Harmonic.Offset
		case "frequency":
			target = &c.Harmonic.Frequency
		}
	case well.KindCoulomb1D, well.KindCoulomb3D:
		if name == "offset" {
			target = &c.Coulomb.Offset
		}
	}
	if target == nil {
		return fmt.Errorf("%s has no parameter %q: %w", potential, name, quantum.ErrInvalidParameter)
	}
	*target = v
	return nil
}
