package postproc

// Biquad is one direct-form-II-transposed second-order section (the
// standard SOS convention b0,b1,b2,a0,a1,a2), applied to a complex
// signal by filtering the real and imaginary rails with the same
// coefficients and state.
type Biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             complex128
}

// NewBiquad normalizes sos by a0 and builds a zero-state section.
func NewBiquad(sos [6]float64) Biquad {
	a0 := sos[3]
	return Biquad{
		b0: sos[0] / a0,
		b1: sos[1] / a0,
		b2: sos[2] / a0,
		a1: sos[4] / a0,
		a2: sos[5] / a0,
	}
}

// Process filters one sample.
func (bq *Biquad) Process(x complex128) complex128 {
	y := complex(bq.b0, 0)*x + bq.z1
	bq.z1 = complex(bq.b1, 0)*x - complex(bq.a1, 0)*y + bq.z2
	bq.z2 = complex(bq.b2, 0)*x - complex(bq.a2, 0)*y
	return y
}

// Reset clears the section's delay state.
func (bq *Biquad) Reset() { bq.z1, bq.z2 = 0, 0 }

// Cascade chains a sequence of SOS sections.
type Cascade struct {
	stages []Biquad
}

// NewCascade builds a cascade from a sequence of second-order sections.
func NewCascade(sos [][6]float64) *Cascade {
	c := &Cascade{stages: make([]Biquad, len(sos))}
	for i, s := range sos {
		c.stages[i] = NewBiquad(s)
	}
	return c
}

// Apply filters buf in place.
func (c *Cascade) Apply(buf []complex128) {
	for i, x := range buf {
		for s := range c.stages {
			x = c.stages[s].Process(x)
		}
		buf[i] = x
	}
}
