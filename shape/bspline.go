package shape

import (
	"sort"
)

// Interp is a cubic (or arbitrary-degree) B-spline envelope, evaluated with
// de Boor's algorithm, compatible with the SciPy BSpline convention: a
// non-decreasing knot vector, a coefficient per (len(knots) - degree - 1)
// basis function.
type Interp struct {
	knots        []float64
	coefficients []float64
	degree       int
	deriv        *Interp // lazily-built degree-lowered derivative spline
}

// NewInterp validates and constructs a cubic-B-spline shape. It fails with
// an xerr.InvalidShape error if knots is not non-decreasing, degree is
// negative, or the coefficient count does not match len(knots) - degree - 1.
func NewInterp(knots, coefficients []float64, degree int) (*Interp, error) {
	if degree < 0 {
		return nil, invalidShape("negative degree %d", degree)
	}
	if !sort.Float64sAreSorted(knots) {
		return nil, invalidShape("knots must be non-decreasing")
	}
	want := len(knots) - degree - 1
	if want < 0 || len(coefficients) != want {
		return nil, invalidShape("expected %d coefficients for %d knots at degree %d, got %d",
			want, len(knots), degree, len(coefficients))
	}
	k := make([]float64, len(knots))
	copy(k, knots)
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return &Interp{knots: k, coefficients: c, degree: degree}, nil
}

// Sample implements Shape using de Boor's recurrence. x is expected in
// [-1/2, 1/2]; evaluation is clamped to the spline's own knot span to remain
// stable at ties.
func (s *Interp) Sample(x float64) float64 {
	return deBoor(s.knots, s.coefficients, s.degree, x)
}

// Derivative implements Shape via the degree-lowered derivative spline,
// built and cached on first use.
func (s *Interp) Derivative(x float64) float64 {
	if s.degree == 0 {
		return 0
	}
	if s.deriv == nil {
		s.deriv = s.buildDerivative()
	}
	return s.deriv.Sample(x)
}

// buildDerivative computes the standard B-spline derivative: a spline of
// degree p-1 on the interior knots, with control points
//
//	d_i = p * (c_{i+1} - c_i) / (t_{i+1+p} - t_{i+1})
func (s *Interp) buildDerivative() *Interp {
	p := s.degree
	n := len(s.coefficients)
	dc := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		denom := s.knots[i+1+p] - s.knots[i+1]
		if denom == 0 {
			dc[i] = 0
			continue
		}
		dc[i] = float64(p) * (s.coefficients[i+1] - s.coefficients[i]) / denom
	}
	dk := s.knots[1 : len(s.knots)-1]
	return &Interp{knots: dk, coefficients: dc, degree: p - 1}
}

// deBoor evaluates a B-spline at x using de Boor's algorithm. It is
// numerically stable at knot ties because it only ever interpolates between
// adjacent knot values, falling back to the left control point when a span
// has zero width.
func deBoor(knots, coeffs []float64, degree int, x float64) float64 {
	k := findKnotSpan(knots, degree, x)
	if k < 0 {
		return 0
	}
	d := make([]float64, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = coeffs[j+k-degree]
	}
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			left := knots[j+k-degree]
			right := knots[j+1+k-r]
			denom := right - left
			var alpha float64
			if denom == 0 {
				alpha = 0
			} else {
				alpha = (x - left) / denom
			}
			d[j] = (1-alpha)*d[j-1] + alpha*d[j]
		}
	}
	return d[degree]
}

// findKnotSpan returns the index k such that knots[k] <= x < knots[k+1],
// restricted to the valid span [degree, len(knots)-degree-2] for evaluation:
// an x outside the spline's support gets the first or last valid span. It
// returns -1 only when the knot vector is too short to have a valid span.
func findKnotSpan(knots []float64, degree int, x float64) int {
	n := len(knots) - degree - 2
	if n < degree {
		return -1
	}
	if x <= knots[degree] {
		return degree
	}
	if x >= knots[n+1] {
		return n
	}
	lo, hi := degree, n+1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if knots[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
