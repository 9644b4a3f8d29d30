// Package analysis computes observables of sampled wavefunctions.
//
//   - [Expectation]: ⟨x⟩, ⟨x²⟩ and Δx of a probability density
//   - [Overlap]: inner product of two real wavefunctions
//   - [MomentumDensity]: |φ(k)|² via a discrete Fourier transform
//   - [ForbiddenFraction]: probability in the classically forbidden region
//   - [TurningPoints]: where a potential crosses an energy
//
// Densities need not be normalized; every result is divided by the total
// probability.
package analysis
