package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for eigenstate queries and parameter updates.
var (
	// ErrUnsupportedIndex indicates a quantum number outside the states a
	// potential can provide.
	ErrUnsupportedIndex = errors.New("quantum: unsupported eigenstate index")

	// ErrInvalidParameter indicates a parameter value outside its valid range.
	ErrInvalidParameter = errors.New("quantum: parameter out of valid bounds")

	// ErrUnknownPotential indicates a potential name or kind that is not registered.
	ErrUnknownPotential = errors.New("quantum: unknown potential")

	// ErrNotConverged indicates the eigenvalue search exhausted its iteration budget.
	ErrNotConverged = errors.New("quantum: eigenvalue search did not converge")
)

// IndexError wraps ErrUnsupportedIndex with the offending quantum number and
// the range that was available.
type IndexError struct {
	N        int
	Min, Max int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: n=%d (valid %d..%d)", ErrUnsupportedIndex, e.N, e.Min, e.Max)
}

func (e *IndexError) Unwrap() error {
	return ErrUnsupportedIndex
}
