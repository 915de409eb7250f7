// Package schedule implements the hierarchical layout model: an element
// tree is measured bottom-up, then arranged top-down into per-channel
// play and oscillator-instruction streams.
package schedule

import "math"

// Alignment controls how an element is positioned within its allotted
// slot when it is smaller than that slot (or, for Stretch, grows to
// fill it).
type Alignment int

const (
	AlignEnd Alignment = iota
	AlignStart
	AlignCenter
	AlignStretch
)

// Common holds the attributes shared by every element variant.
type Common struct {
	MarginLeft  float64
	MarginRight float64
	Alignment   Alignment
	Visibility  bool
	Duration    *float64
	MaxDuration float64
	MinDuration float64
}

// DefaultCommon returns the zero-value common attributes: no margin,
// end-aligned, visible, unconstrained duration.
func DefaultCommon() Common {
	return Common{
		Alignment:   AlignEnd,
		Visibility:  true,
		MaxDuration: math.Inf(1),
		MinDuration: 0,
	}
}

// clampDuration applies the min/max/duration-override priority described
// for the measure pass: min > max > duration.
func clampDuration(raw float64, c Common) float64 {
	v := raw
	if c.Duration != nil {
		v = *c.Duration
	}
	if v > c.MaxDuration {
		v = c.MaxDuration
	}
	if v < c.MinDuration {
		v = c.MinDuration
	}
	return v
}

// Direction controls which end of a Stack's timeline its children are
// laid out from.
type Direction int

const (
	Backwards Direction = iota
	Forwards
)
