package shape

import (
	"math"
	"testing"

	"github.com/cbegin/pulsegen/xerr"
)

func TestNewInterpRejectsNonMonotonicKnots(t *testing.T) {
	_, err := NewInterp([]float64{0, 1, 0.5, 2}, []float64{1, 2}, 0)
	if !xerr.Is(err, xerr.InvalidShape) {
		t.Fatalf("expected an InvalidShape error, got %v", err)
	}
}

func TestNewInterpRejectsNegativeDegree(t *testing.T) {
	_, err := NewInterp([]float64{0, 1}, []float64{1}, -1)
	if !xerr.Is(err, xerr.InvalidShape) {
		t.Fatalf("expected an InvalidShape error, got %v", err)
	}
}

func TestNewInterpRejectsMismatchedCoefficientCount(t *testing.T) {
	_, err := NewInterp([]float64{0, 1, 2, 3}, []float64{1, 2, 3}, 1)
	if !xerr.Is(err, xerr.InvalidShape) {
		t.Fatalf("expected an InvalidShape error, got %v", err)
	}
}

// A clamped linear (degree-1) "tent" spline peaking at x=0: knots
// [-0.5,-0.5,0,0.5,0.5] with coefficients [0,1,0] should reduce to ordinary
// linear interpolation between control points.
func TestInterpLinearTent(t *testing.T) {
	s, err := NewInterp([]float64{-0.5, -0.5, 0, 0.5, 0.5}, []float64{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	cases := []struct {
		x    float64
		want float64
	}{
		{-0.5, 0},
		{-0.25, 0.5},
		{0, 1},
		{0.25, 0.5},
		{0.5, 0},
	}
	for _, c := range cases {
		if got := s.Sample(c.x); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Sample(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestInterpConstantDerivativeIsZero(t *testing.T) {
	s, err := NewInterp([]float64{-0.5, -0.5, 0.5, 0.5}, []float64{1, 1}, 1)
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	for _, x := range []float64{-0.4, 0, 0.4} {
		if got := s.Derivative(x); math.Abs(got) > 1e-9 {
			t.Errorf("Derivative(%v) = %v, want 0 for a constant spline", x, got)
		}
	}
}

func TestInterpDegreeZeroDerivativeIsZero(t *testing.T) {
	s, err := NewInterp([]float64{-0.5, 0.5}, []float64{3}, 0)
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	if got := s.Derivative(0.1); got != 0 {
		t.Errorf("degree-0 derivative should be exactly 0, got %v", got)
	}
}

func TestInterpLinearRampDerivativeIsSlope(t *testing.T) {
	// Ramp from 0 to 1 across the domain: constant derivative = 1/span.
	s, err := NewInterp([]float64{-0.5, -0.5, 0.5, 0.5}, []float64{0, 1}, 1)
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	want := 1.0
	for _, x := range []float64{-0.4, 0, 0.4} {
		if got := s.Derivative(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("Derivative(%v) = %v, want %v", x, got, want)
		}
	}
}
