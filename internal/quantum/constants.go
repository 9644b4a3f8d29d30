package quantum

const (
	// Hbar is the reduced Planck constant in eV·fs.
	Hbar = 0.658

	// ElectronMass is the electron rest mass in eV·fs²/nm².
	ElectronMass = 5.68

	// KE2 is the Coulomb coupling k·e² in eV·nm.
	KE2 = 1.44
)

// NumPoints is the number of samples used for potentials and wavefunctions.
const NumPoints = 1350
