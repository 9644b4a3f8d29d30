package solver

import (
	"fmt"

	"github.com/san-kum/boundstates/internal/quantum"
)

type Config struct {
	Hbar float64
	// MatchFraction places the matching point as a fraction of the grid.
	MatchFraction float64
	// Tolerance bounds |Mismatch| for the refinement phase.
	Tolerance float64
	// MaxIterations is the budget of each search phase.
	MaxIterations int
}

func DefaultConfig() Config {
	return Config{
		Hbar:          quantum.Hbar,
		MatchFraction: 0.53,
		Tolerance:     1e-10,
		MaxIterations: 100,
	}
}

func (c Config) validate() error {
	if c.Hbar <= 0 {
		return fmt.Errorf("hbar must be positive, got %g: %w", c.Hbar, quantum.ErrInvalidParameter)
	}
	if c.MatchFraction <= 0 || c.MatchFraction >= 1 {
		return fmt.Errorf("match fraction must be in (0, 1), got %g: %w", c.MatchFraction, quantum.ErrInvalidParameter)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g: %w", c.Tolerance, quantum.ErrInvalidParameter)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d: %w", c.MaxIterations, quantum.ErrInvalidParameter)
	}
	return nil
}
