package postproc

// ApplyFIR convolves buf with taps, truncating the convolution tail so
// the output keeps buf's original length (a causal, same-length FIR).
func ApplyFIR(buf []complex128, taps []float64) []complex128 {
	if len(taps) == 0 {
		return buf
	}
	out := make([]complex128, len(buf))
	for n := range buf {
		var acc complex128
		for k, tap := range taps {
			if n-k < 0 {
				break
			}
			acc += complex(tap, 0) * buf[n-k]
		}
		out[n] = acc
	}
	return out
}
