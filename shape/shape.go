// Package shape defines pulse envelope shapes: pure functions evaluated on
// x in [-1/2, 1/2] that the sampler multiplies against a pulse's amplitude
// and carrier.
package shape

import "github.com/cbegin/pulsegen/xerr"

// invalidShape builds a *xerr.Error of kind InvalidShape; NewInterp uses
// this for every construction-invariant violation.
func invalidShape(format string, args ...any) error {
	return xerr.New(xerr.InvalidShape, format, args...)
}

// Shape is a pulse envelope evaluated only on x in [-1/2, 1/2]. Callers
// (the sampler) must never evaluate it outside that domain.
type Shape interface {
	// Sample returns the envelope value at x.
	Sample(x float64) float64
	// Derivative returns the envelope's derivative at x, used for the DRAG
	// quadrature component.
	Derivative(x float64) float64
}
