// Package channel describes the per-channel configuration that the
// sampler and postproc stages rasterize and filter against: carrier,
// sample rate, output length, snapping granularity, and the optional
// offset/filter/IQ settings applied after sampling.
package channel

import "github.com/cbegin/pulsegen/xerr"

// Config is one channel's immutable configuration.
type Config struct {
	BaseFreq   float64
	SampleRate float64
	Length     uint32
	Delay      float64
	AlignLevel int // pulse starts snap to 2^AlignLevel/SampleRate; the zero value is level 0 (whole samples), not DefaultAlignLevel

	IQMatrix *[2][2]float64 // optional 2x2 IQ-calibration mixer
	Offset   []float64      // optional, len 1 (is_real) or 2
	IIR      [][6]float64   // optional second-order sections b0,b1,b2,a0,a1,a2
	FIR      []float64      // optional FIR taps

	FilterOffset bool // apply offset before filters instead of after
	IsReal       bool
}

// DefaultAlignLevel matches the document default of snapping to 2^-10 of
// a sample period. config.ChannelDoc.Build applies it when a document
// omits align_level; a Config built in Go gets it only if set explicitly.
const DefaultAlignLevel = -10

// Validate checks the is_real / IQMatrix / offset-length invariant.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return xerr.New(xerr.InvalidInput, "channel sample_rate must be positive, got %v", c.SampleRate)
	}
	if c.IsReal {
		if c.IQMatrix != nil {
			return xerr.New(xerr.InvalidInput, "is_real channel must not set iq_matrix")
		}
		if c.Offset != nil && len(c.Offset) != 1 {
			return xerr.New(xerr.InvalidInput, "is_real channel offset must have length 1, got %d", len(c.Offset))
		}
	} else if c.Offset != nil && len(c.Offset) != 2 {
		return xerr.New(xerr.InvalidInput, "complex channel offset must have length 2, got %d", len(c.Offset))
	}
	return nil
}

// Delta returns the sample period 1/SampleRate.
func (c Config) Delta() float64 { return 1 / c.SampleRate }
