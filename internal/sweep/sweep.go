// Package sweep varies well parameters: level diagrams over one parameter
// and grid searches for parameters that meet a target.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
	"gonum.org/v1/gonum/floats"
)

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	vs := make([]float64, n)
	floats.Span(vs, lo, hi)
	return vs
}

// Point is the spectrum at one parameter value.
type Point struct {
	Value    float64
	Energies []float64
}

// Levels solves w at each value of param and restores the original value
// afterwards.
func Levels(ctx context.Context, w well.Well, param string, values []float64) ([]Point, error) {
	orig, ok := w.Params()[param]
	if !ok {
		return nil, fmt.Errorf("%s has no parameter %q: %w", w.Name(), param, quantum.ErrInvalidParameter)
	}
	defer func() { _ = w.SetParam(param, orig) }()

	points := make([]Point, 0, len(values))
	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		if err := w.SetParam(param, v); err != nil {
			return points, err
		}
		points = append(points, Point{Value: v, Energies: w.Eigenvalues()})
	}
	return points, nil
}

// Objective scores the current parameters of a well; lower is better.
type Objective func(w well.Well) float64

// TargetEnergy scores the distance of state n's energy from target. A well
// without state n scores +Inf.
func TargetEnergy(n int, target float64) Objective {
	return func(w well.Well) float64 {
		e, err := w.NthEigenvalue(n)
		if err != nil {
			return math.Inf(1)
		}
		return math.Abs(e - target)
	}
}

// StateCount scores the distance of the number of bound states from count.
func StateCount(count int) Objective {
	return func(w well.Well) float64 {
		return math.Abs(float64(w.NumberOfEigenstates() - count))
	}
}

// GridSearch evaluates an objective on every combination of parameter
// values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best parameter combination and its score. The well's
// parameters are restored before returning.
func (g *GridSearch) Search(ctx context.Context, w well.Well, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges: %w", len(g.paramNames), len(g.ranges), quantum.ErrInvalidParameter)
	}
	orig := w.Params()
	for _, name := range g.paramNames {
		if _, ok := orig[name]; !ok {
			return nil, 0, fmt.Errorf("%s has no parameter %q: %w", w.Name(), name, quantum.ErrInvalidParameter)
		}
	}
	defer func() {
		for _, name := range g.paramNames {
			_ = w.SetParam(name, orig[name])
		}
	}()

	best := math.Inf(1)
	var bestParams map[string]float64
	err := g.searchRecursive(ctx, 0, make(map[string]float64), w, objective, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	w well.Well,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for name, v := range current {
			if err := w.SetParam(name, v); err != nil {
				// Out-of-range combinations are skipped.
				return nil
			}
		}
		if val := objective(w); val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, w, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
