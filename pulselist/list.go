package pulselist

// List is the per-channel accumulator of scheduled pulses, built up
// during arrangement/execution and consumed by the sampler.
type List struct {
	pulses []Pulse
}

// Add appends a pulse in arrangement order.
func (l *List) Add(p Pulse) {
	l.pulses = append(l.pulses, p)
}

// Len reports the number of pulses currently held (after Merge, the
// number of merged pulses).
func (l *List) Len() int {
	return len(l.pulses)
}

// Pulses returns the accumulated pulses in insertion order.
func (l *List) Pulses() []Pulse {
	return l.pulses
}

// Merge coalesces pulses sharing the same (shape, start, width, plateau,
// freq, drag) footprint by complex-adding their amp*exp(i*2*pi*phase)
// representation, combining per spec.md §4.4. Merging is order-preserving:
// the merged pulse keeps the position of the first pulse in its group.
func (l *List) Merge(epsT float64) {
	if len(l.pulses) < 2 {
		return
	}
	order := make([]mergeKey, 0, len(l.pulses))
	groups := make(map[mergeKey][]int)
	for i, p := range l.pulses {
		k := p.key(epsT)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	merged := make([]Pulse, 0, len(order))
	for _, k := range order {
		idx := groups[k]
		if len(idx) == 1 {
			merged = append(merged, l.pulses[idx[0]])
			continue
		}
		acc := complex(0, 0)
		base := l.pulses[idx[0]]
		for _, i := range idx {
			acc += l.pulses[i].complexAmplitude()
		}
		amp, phase := fromComplexAmplitude(acc)
		base.Amplitude = amp
		base.Phase = phase
		merged = append(merged, base)
	}
	l.pulses = merged
}
