// Package osc models a channel's oscillator: a carrier frequency, a
// cumulative frequency offset, and an unwrapped phase. State is a plain
// value type — every transition returns a new State rather than mutating
// in place, so instruction execution can be tested by comparing
// before/after values directly.
package osc

// State holds a channel's oscillator parameters. Phase is kept in cycles
// (turns), not radians, and is never wrapped — long schedules can leave it
// far outside [0, 1).
type State struct {
	BaseFreq  float64
	DeltaFreq float64
	Phase     float64
}

// New returns the initial oscillator state for a channel carrier frequency.
func New(baseFreq float64) State {
	return State{BaseFreq: baseFreq}
}

// TotalFreq is the effective carrier: base plus any accumulated shift.
func (s State) TotalFreq() float64 {
	return s.BaseFreq + s.DeltaFreq
}

// PhaseAt returns the instantaneous phase (cycles) at time t.
func (s State) PhaseAt(t float64) float64 {
	return s.TotalFreq()*t + s.Phase
}

// WithTimeShift returns the state as observed dt seconds later, with the
// same base/delta frequency and a phase advanced by total_freq*dt.
func (s State) WithTimeShift(dt float64) State {
	s.Phase += s.TotalFreq() * dt
	return s
}

// ShiftPhase adds delta (cycles) to phase.
func (s State) ShiftPhase(delta float64) State {
	s.Phase += delta
	return s
}

// SetPhase solves for the phase offset such that PhaseAt(t) == target,
// preserving total_freq.
func (s State) SetPhase(t, target float64) State {
	s.Phase = target - s.TotalFreq()*t
	return s
}

// ShiftFreq adds delta to delta_freq at time t, re-solving phase so that
// PhaseAt(t) is unchanged across the jump (phase continuity).
func (s State) ShiftFreq(t, delta float64) State {
	p := s.PhaseAt(t)
	s.DeltaFreq += delta
	s.Phase = p - s.TotalFreq()*t
	return s
}

// SetFreq sets delta_freq so that TotalFreq() == target, re-solving phase
// for continuity at time t exactly as ShiftFreq does.
func (s State) SetFreq(t, target float64) State {
	p := s.PhaseAt(t)
	s.DeltaFreq = target - s.BaseFreq
	s.Phase = p - s.TotalFreq()*t
	return s
}

// SwapPhase exchanges the instantaneous phase of a and b at time t while
// leaving each channel's total_freq untouched. It is its own inverse:
// applying it twice at the same time restores the original states.
func SwapPhase(a, b State, t float64) (State, State) {
	pa, pb := a.PhaseAt(t), b.PhaseAt(t)
	a.Phase = pb - a.TotalFreq()*t
	b.Phase = pa - b.TotalFreq()*t
	return a, b
}
