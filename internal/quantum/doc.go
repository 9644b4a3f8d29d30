// Package quantum provides the shared primitives of the bound-state lab.
//
// The package defines the small set of types every other package builds on:
//
//   - physical constants in the nm / fs / eV unit system
//   - [Value]: an observable scalar with synchronous change notification
//   - [Particle]: the bound particle, whose mass is observable
//   - domain errors such as [ErrUnsupportedIndex]
//
// # Units
//
// Lengths are in nanometres, times in femtoseconds and energies in
// electron-volts. In these units the reduced Planck constant is 0.658 eV·fs
// and the electron mass is 5.68 eV·fs²/nm².
//
// # Example
//
//	p := quantum.NewParticle(quantum.ElectronMass)
//	unsubscribe := p.Mass().Subscribe(func(m float64) {
//	    fmt.Println("mass changed to", m)
//	})
//	defer unsubscribe()
//	_ = p.SetMass(2 * quantum.ElectronMass)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Listeners run on the
// goroutine that calls Set, before Set returns.
package quantum
