// Package well defines the potential wells of the lab and caches their bound
// states.
//
// Every variant implements [Well]:
//
//   - [SquareWell]: flat bottom of a given width and height
//   - [Asymmetric]: linear ramp across the well, flat outside
//   - [Coulomb1D], [Coulomb3D]: -ke²/|x|, solved in closed form
//   - [HarmonicOscillator]: ½·m·ω²·x²
//
// Eigenvalues and eigenstates are computed on first use and cached. The
// cache is keyed by the absolute quantum number n, which starts at
// [Well.GroundStateIndex] (1 for the square, asymmetric and Coulomb wells,
// 0 for the harmonic oscillator). Any change of a parameter or of the
// particle mass clears the cache and bumps [Well.Revision].
//
// # Example
//
//	p := quantum.NewParticle(quantum.ElectronMass)
//	w := well.NewSquareWell(p)
//	defer w.Close()
//	for i, e := range w.Eigenvalues() {
//	    n := w.GroundStateIndex() + i
//	    xs, ys, _ := w.NthEigenstate(n)
//	    plot(n, e, xs, ys)
//	}
package well
