package config

import "sort"

// Presets are ready-made configurations, grouped by potential.
var Presets = map[string]map[string]*Config{
	"square": {
		"shallow": square(FiniteWellConfig{Width: 1.0, Height: 2.0}, nil),
		"deep":    square(FiniteWellConfig{Width: 1.0, Height: 40.0}, nil),
		"wide":    square(FiniteWellConfig{Width: 2.5, Height: 10.0}, nil),
		"beat":    square(FiniteWellConfig{Width: 1.0, Height: 10.0}, []float64{1, 1}),
	},
	"asymmetric": {
		"ramp":  asymmetric(FiniteWellConfig{Width: 1.0, Height: 10.0}, nil),
		"steep": asymmetric(FiniteWellConfig{Width: 0.6, Height: 14.0}, nil),
		"slosh": asymmetric(FiniteWellConfig{Width: 1.5, Height: 10.0}, []float64{1, 1}),
	},
	"harmonic": {
		"ground":   harmonic(1.0, nil),
		"soft":     harmonic(0.5, nil),
		"coherent": harmonic(1.0, []float64{0.61, 0.61, 0.43, 0.25}),
	},
	"coulomb_1d": {
		"hydrogen": coulomb("coulomb_1d", DefaultMass, nil),
		"heavy":    coulomb("coulomb_1d", 4*DefaultMass, nil),
	},
	"coulomb_3d": {
		"hydrogen":    coulomb("coulomb_3d", DefaultMass, nil),
		"breathing":   coulomb("coulomb_3d", DefaultMass, []float64{1, 1}),
		"positronium": coulomb("coulomb_3d", DefaultMass/2, nil),
	},
}

func square(w FiniteWellConfig, states []float64) *Config {
	cfg := DefaultConfig()
	cfg.Potential = "square"
	cfg.Square = w
	cfg.States = states
	return cfg
}

func asymmetric(w FiniteWellConfig, states []float64) *Config {
	cfg := DefaultConfig()
	cfg.Potential = "asymmetric"
	cfg.Asymmetric = w
	cfg.States = states
	return cfg
}

func harmonic(frequency float64, states []float64) *Config {
	cfg := DefaultConfig()
	cfg.Potential = "harmonic"
	cfg.Harmonic.Frequency = frequency
	cfg.States = states
	return cfg
}

func coulomb(potential string, mass float64, states []float64) *Config {
	cfg := DefaultConfig()
	cfg.Potential = potential
	cfg.Mass = mass
	cfg.States = states
	return cfg
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(potential, name string) *Config {
	if presets, ok := Presets[potential]; ok {
		if cfg, ok := presets[name]; ok {
			out := *cfg
			out.States = append([]float64(nil), cfg.States...)
			return &out
		}
	}
	return nil
}

func ListPresets(potential string) []string {
	presets, ok := Presets[potential]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
