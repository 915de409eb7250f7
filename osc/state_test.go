package osc

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalFreqIsBasePlusDelta(t *testing.T) {
	s := State{BaseFreq: 100e6, DeltaFreq: 5e6}
	if got := s.TotalFreq(); !almostEqual(got, 105e6) {
		t.Errorf("TotalFreq() = %v, want 105e6", got)
	}
}

func TestPhaseAtAccumulatesLinearly(t *testing.T) {
	s := State{BaseFreq: 10, Phase: 0.25}
	if got := s.PhaseAt(2); !almostEqual(got, 20.25) {
		t.Errorf("PhaseAt(2) = %v, want 20.25", got)
	}
}

func TestWithTimeShiftPreservesFrequency(t *testing.T) {
	s := State{BaseFreq: 50e6, DeltaFreq: 1e6, Phase: 0.1}
	shifted := s.WithTimeShift(100e-9)
	if shifted.BaseFreq != s.BaseFreq || shifted.DeltaFreq != s.DeltaFreq {
		t.Fatalf("WithTimeShift must not alter frequencies: %+v", shifted)
	}
	want := s.Phase + s.TotalFreq()*100e-9
	if !almostEqual(shifted.Phase, want) {
		t.Errorf("shifted.Phase = %v, want %v", shifted.Phase, want)
	}
}

func TestShiftPhaseIsAdditive(t *testing.T) {
	s := State{Phase: 0.3}
	got := s.ShiftPhase(0.2)
	if !almostEqual(got.Phase, 0.5) {
		t.Errorf("Phase = %v, want 0.5", got.Phase)
	}
}

func TestSetPhasePinsInstantaneousValue(t *testing.T) {
	s := State{BaseFreq: 50e6, Phase: 0}
	const t0 = 490e-9
	got := s.SetPhase(t0, 0.75)
	if !almostEqual(got.PhaseAt(t0), 0.75) {
		t.Errorf("PhaseAt(t0) = %v, want 0.75", got.PhaseAt(t0))
	}
}

// Phase continuity: after ShiftFreq(Δf) at time t, the phase computed from
// the post-shift oscillator at t must equal the phase computed from the
// pre-shift oscillator at t exactly.
func TestShiftFreqPreservesPhaseContinuity(t *testing.T) {
	s := State{BaseFreq: 50e6, DeltaFreq: 2e6, Phase: 0.4}
	const t0 = 123e-9
	before := s.PhaseAt(t0)
	after := s.ShiftFreq(t0, 10e6)
	if after.PhaseAt(t0) != before {
		t.Errorf("phase discontinuity across ShiftFreq: before=%v after=%v", before, after.PhaseAt(t0))
	}
	if !almostEqual(after.TotalFreq(), s.TotalFreq()+10e6) {
		t.Errorf("TotalFreq() = %v, want %v", after.TotalFreq(), s.TotalFreq()+10e6)
	}
}

func TestSetFreqSetsDeltaRelativeToBase(t *testing.T) {
	s := State{BaseFreq: 50e6, DeltaFreq: 0, Phase: 0}
	const t0 = 490e-9
	before := s.PhaseAt(t0)
	after := s.SetFreq(t0, 60e6)
	if !almostEqual(after.DeltaFreq, 10e6) {
		t.Errorf("DeltaFreq = %v, want 1e7", after.DeltaFreq)
	}
	if after.PhaseAt(t0) != before {
		t.Errorf("phase discontinuity across SetFreq: before=%v after=%v", before, after.PhaseAt(t0))
	}
}

// Swap involution: two SwapPhase at the same time cancel exactly.
func TestSwapPhaseIsInvolution(t *testing.T) {
	a := State{BaseFreq: 100e6, Phase: 0.1}
	b := State{BaseFreq: 50e6, DeltaFreq: 10e6, Phase: 0.7}
	const t0 = 77e-9

	a1, b1 := SwapPhase(a, b, t0)
	a2, b2 := SwapPhase(a1, b1, t0)

	if !almostEqual(a2.Phase, a.Phase) || !almostEqual(b2.Phase, b.Phase) {
		t.Fatalf("swap not involutive: got a=%+v b=%+v, want a=%+v b=%+v", a2, b2, a, b)
	}
}

func TestSwapPhaseExchangesInstantaneousValues(t *testing.T) {
	a := State{BaseFreq: 100e6, Phase: 0.1}
	b := State{BaseFreq: 50e6, Phase: 0.7}
	const t0 = 77e-9
	pa, pb := a.PhaseAt(t0), b.PhaseAt(t0)

	a1, b1 := SwapPhase(a, b, t0)

	if !almostEqual(a1.PhaseAt(t0), pb) {
		t.Errorf("a1.PhaseAt(t0) = %v, want %v", a1.PhaseAt(t0), pb)
	}
	if !almostEqual(b1.PhaseAt(t0), pa) {
		t.Errorf("b1.PhaseAt(t0) = %v, want %v", b1.PhaseAt(t0), pa)
	}
	if a1.TotalFreq() != a.TotalFreq() || b1.TotalFreq() != b.TotalFreq() {
		t.Errorf("SwapPhase must not alter total_freq")
	}
}
