// Package postproc applies per-channel output shaping after sampling:
// offsets, an IIR biquad cascade, an FIR filter, a 2x2 IQ-calibration
// mixer, and a final real/complex projection for is_real channels. A
// separate crosstalk mix joins multiple channels' buffers before each
// channel's own postprocessing runs.
package postproc

import (
	"github.com/cbegin/pulsegen/channel"
	"github.com/cbegin/pulsegen/xerr"
)

// ApplyOffset adds a constant complex offset to every sample: a single
// real value for is_real channels, or an (I, Q) pair otherwise.
func ApplyOffset(buf []complex128, offset []float64) {
	var o complex128
	switch len(offset) {
	case 1:
		o = complex(offset[0], 0)
	case 2:
		o = complex(offset[0], offset[1])
	default:
		return
	}
	for i := range buf {
		buf[i] += o
	}
}

// ApplyIQ mixes each sample's (I, Q) = (real, imag) pair through a 2x2
// calibration matrix.
func ApplyIQ(buf []complex128, m [2][2]float64) {
	for i, v := range buf {
		re, im := real(v), imag(v)
		buf[i] = complex(m[0][0]*re+m[0][1]*im, m[1][0]*re+m[1][1]*im)
	}
}

// Project drops the imaginary rail for is_real channels.
func Project(buf []complex128, isReal bool) []complex128 {
	if !isReal {
		return buf
	}
	out := make([]complex128, len(buf))
	for i, v := range buf {
		out[i] = complex(real(v), 0)
	}
	return out
}

// Apply runs one channel's full postprocessing pipeline in order:
// offset (before or after filtering per cfg.FilterOffset), the IIR
// cascade, the FIR filter, the IQ mixer, then the is_real projection.
func Apply(buf []complex128, cfg channel.Config) []complex128 {
	filter := func(b []complex128) []complex128 {
		if len(cfg.IIR) > 0 {
			NewCascade(cfg.IIR).Apply(b)
		}
		if len(cfg.FIR) > 0 {
			b = ApplyFIR(b, cfg.FIR)
		}
		return b
	}

	if cfg.FilterOffset {
		if cfg.Offset != nil {
			ApplyOffset(buf, cfg.Offset)
		}
		buf = filter(buf)
	} else {
		buf = filter(buf)
		if cfg.Offset != nil {
			ApplyOffset(buf, cfg.Offset)
		}
	}
	if cfg.IQMatrix != nil {
		ApplyIQ(buf, *cfg.IQMatrix)
	}
	return Project(buf, cfg.IsReal)
}

// Crosstalk mixes a named subset of channel buffers through an NxN real
// matrix: output[i] = sum_j matrix[i][j] * input[j], sample by sample.
// All named buffers must already be the same length.
func Crosstalk(buffers map[string][]complex128, names []string, matrix [][]float64) error {
	n := len(names)
	if len(matrix) != n {
		return xerr.New(xerr.InvalidInput, "crosstalk matrix has %d rows, want %d", len(matrix), n)
	}
	for _, row := range matrix {
		if len(row) != n {
			return xerr.New(xerr.InvalidInput, "crosstalk matrix row has %d entries, want %d", len(row), n)
		}
	}
	var length int
	for i, name := range names {
		buf, ok := buffers[name]
		if !ok {
			return xerr.New(xerr.InvalidInput, "crosstalk references unknown channel %q", name)
		}
		if i == 0 {
			length = len(buf)
		} else if len(buf) != length {
			return xerr.New(xerr.Internal, "crosstalk channel %q has length %d, want %d", name, len(buf), length)
		}
	}

	in := make([]complex128, n)
	out := make([][]complex128, n)
	for i := range out {
		out[i] = make([]complex128, length)
	}
	for k := 0; k < length; k++ {
		for i, name := range names {
			in[i] = buffers[name][k]
		}
		for i := 0; i < n; i++ {
			var acc complex128
			for j := 0; j < n; j++ {
				acc += complex(matrix[i][j], 0) * in[j]
			}
			out[i][k] = acc
		}
	}
	for i, name := range names {
		buffers[name] = out[i]
	}
	return nil
}
