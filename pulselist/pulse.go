// Package pulselist accumulates the pulses scheduled onto a single
// channel's timeline and merges ones that overlap exactly, the primary
// optimization for stacked overlapping plays.
package pulselist

import (
	"math"
	"math/cmplx"

	"github.com/cbegin/pulsegen/shape"
)

// Pulse is one entry scheduled onto a channel. Start/width/plateau are in
// seconds on the channel timeline (after channel delay is applied by the
// sampler, not here); freq/phase are the pulse's effective carrier
// (oscillator total_freq plus any per-instruction extra) and starting
// phase (cycles) computed at arrangement/execution time.
type Pulse struct {
	Shape     shape.Shape // nil means rectangular (no envelope, amplitude held flat)
	Start     float64
	Width     float64
	Plateau   float64
	Amplitude float64
	Drag      float64
	Freq      float64
	Phase     float64
}

// mergeKey identifies pulses that occupy the same temporal footprint and
// carrier, and so are candidates for complex-amplitude merging.
type mergeKey struct {
	shape         shape.Shape
	start, width  float64
	plateau, freq float64
	drag          float64
}

// complexAmplitude is amp*exp(i*2*pi*phase), the representation merged
// pulses are combined in.
func (p Pulse) complexAmplitude() complex128 {
	return complex(p.Amplitude, 0) * cmplx.Exp(complex(0, 2*math.Pi*p.Phase))
}

// fromComplexAmplitude splits a merged complex amplitude back into
// (amplitude, phase) with amplitude >= 0.
func fromComplexAmplitude(c complex128) (amplitude, phase float64) {
	amplitude = cmplx.Abs(c)
	if amplitude == 0 {
		return 0, 0
	}
	phase = cmplx.Phase(c) / (2 * math.Pi)
	return amplitude, phase
}

// key returns the grouping key used by merging, with start, width,
// plateau and freq rounded to the nearest multiple of epsT: values that
// round to the same multiple land in the same bucket (two values closer
// than epsT can still straddle a rounding boundary). Drag is compared
// exactly.
func (p Pulse) key(epsT float64) mergeKey {
	quant := func(v float64) float64 {
		if epsT <= 0 {
			return v
		}
		return math.Round(v/epsT) * epsT
	}
	return mergeKey{
		shape:   p.Shape,
		start:   quant(p.Start),
		width:   quant(p.Width),
		plateau: quant(p.Plateau),
		freq:    quant(p.Freq),
		drag:    p.Drag,
	}
}
