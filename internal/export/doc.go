// Package export writes spectra and wavefunctions as CSV, JSON and plot
// images.
package export
