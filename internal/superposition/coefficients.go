// Package superposition holds the real expansion coefficients of a
// superposition of bound states.
package superposition

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

// ErrZeroNorm is returned when normalizing a vector with no non-zero entry.
var ErrZeroNorm = errors.New("superposition: cannot normalize a zero vector")

// Coefficients are indexed by position in a well's spectrum: index 0 is the
// ground state whatever its quantum number.
type Coefficients struct {
	values     []float64
	normalized bool
	revision   *quantum.Value[int]
}

// New returns n coefficients selecting the ground state alone.
func New(n int) *Coefficients {
	c := &Coefficients{revision: quantum.NewValue(0)}
	c.Resize(n)
	return c
}

func (c *Coefficients) Len() int { return len(c.values) }

// Values returns a copy of the coefficients.
func (c *Coefficients) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

func (c *Coefficients) Get(i int) float64 {
	if i < 0 || i >= len(c.values) {
		return 0
	}
	return c.values[i]
}

// Normalized reports whether the squares of the coefficients sum to 1 since
// the last call to Normalize.
func (c *Coefficients) Normalized() bool { return c.normalized }

// Revision increases on every change to the coefficients.
func (c *Coefficients) Revision() *quantum.Value[int] { return c.revision }

func (c *Coefficients) changed() {
	c.revision.Set(c.revision.Get() + 1)
}

// Set stores v at index i and clears the normalized flag.
func (c *Coefficients) Set(i int, v float64) error {
	if i < 0 || i >= len(c.values) {
		return &quantum.IndexError{N: i, Min: 0, Max: len(c.values) - 1}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("coefficient %g: %w", v, quantum.ErrInvalidParameter)
	}
	c.values[i] = v
	c.normalized = false
	c.changed()
	return nil
}

// SetOne selects state i alone with coefficient 1.
func (c *Coefficients) SetOne(i int) error {
	if i < 0 || i >= len(c.values) {
		return &quantum.IndexError{N: i, Min: 0, Max: len(c.values) - 1}
	}
	for j := range c.values {
		c.values[j] = 0
	}
	c.values[i] = 1
	c.normalized = true
	c.changed()
	return nil
}

// Normalize scales the coefficients so that their squares sum to 1. A zero
// vector is left untouched and ErrZeroNorm is returned.
func (c *Coefficients) Normalize() error {
	norm := floats.Norm(c.values, 2)
	if norm == 0 {
		return ErrZeroNorm
	}
	floats.Scale(1/norm, c.values)
	c.normalized = true
	c.changed()
	return nil
}

// IsSuperposition reports whether more than one coefficient is non-zero.
func (c *Coefficients) IsSuperposition() bool {
	count := 0
	for _, v := range c.values {
		if v != 0 {
			count++
		}
	}
	return count > 1
}

// Selected returns the indices of the non-zero coefficients.
func (c *Coefficients) Selected() []int {
	var out []int
	for i, v := range c.values {
		if v != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Resize changes the number of coefficients and selects the ground state.
func (c *Coefficients) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.values = make([]float64, n)
	c.normalized = false
	if n > 0 {
		c.values[0] = 1
		c.normalized = true
	}
	c.changed()
}
