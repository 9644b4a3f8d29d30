// Package viz is the interactive terminal explorer, built on Bubble Tea.
//
// The [Explorer] draws the active potential, its energy levels and the
// evolving superposition on a braille [Canvas], with the spectrum and the
// parameters in a side panel and the probability density underneath.
//
// # Key Bindings
//
//	Tab      - Next potential
//	Up/Down  - Move the state cursor
//	Space    - Toggle the state under the cursor
//	N        - Normalize the coefficients
//	m/M      - Decrease/increase the mass
//	[ ]      - Lower/raise the offset
//	w/W h/H  - Width and height of the finite wells
//	f/F      - Oscillator frequency
//	P        - Pause/resume time evolution
//	R        - Reset
//	T        - Cycle color themes
//	?        - Toggle help
//	Q        - Quit
package viz
