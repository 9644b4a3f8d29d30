// Package solver finds bound states of arbitrary sampled one-dimensional
// potentials with the Numerov shooting method.
//
// The stationary Schrödinger equation
//
//	ψ''(x) = (V(x) - E)·ψ(x) / hb,   hb = ħ²/(2m)
//
// is integrated inward from both domain edges (where ψ = 0) to a fixed
// matching point. An energy is classified by the number of nodes of the two
// passes and by the jump in logarithmic derivative at the matching point:
//
//   - [Solver.Test] performs one shooting pass and returns an [EnergyTester]
//   - [Solver.Energy] brackets, bisects and refines the energy of the state
//     with a given node count and returns a [Result] with diagnostics
//   - [Solver.Wavefunction] stitches both passes at a given energy
//
// # Convergence
//
// Every search phase has an iteration budget. When a budget is exhausted the
// solver returns its best estimate with Result.Converged set to false rather
// than failing; callers decide whether to log, retry or surface
// [quantum.ErrNotConverged] via [Result.Err].
package solver
