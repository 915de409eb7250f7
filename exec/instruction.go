// Package exec walks a schedule's arranged, time-ordered instruction
// stream against each channel's oscillator state, producing per-channel
// pulse lists and the final oscillator states.
package exec

import (
	"github.com/cbegin/pulsegen/osc"
	"github.com/cbegin/pulsegen/pulselist"
	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/shape"
)

// applyPlay emits a pulse record from the current oscillator state
// without mutating it: the effective carrier is total_freq + extra_freq,
// the effective starting phase is phase_at(t) + extra_phase.
func applyPlay(state osc.State, t float64, p schedule.PlayInstruction, s shape.Shape) pulselist.Pulse {
	return pulselist.Pulse{
		Shape:     s,
		Start:     t,
		Width:     p.Width,
		Plateau:   p.Plateau,
		Amplitude: p.Amplitude,
		Drag:      p.Drag,
		Freq:      state.TotalFreq() + p.FreqOffset,
		Phase:     state.PhaseAt(t) + p.PhaseOffset,
	}
}

// applyInstruction advances state for a non-Play, non-swap instruction.
func applyInstruction(state osc.State, t float64, instr schedule.Instruction) osc.State {
	switch instr.Kind {
	case schedule.InstrShiftPhase:
		return state.ShiftPhase(instr.Value)
	case schedule.InstrSetPhase:
		return state.SetPhase(t, instr.Value)
	case schedule.InstrShiftFreq:
		return state.ShiftFreq(t, instr.Value)
	case schedule.InstrSetFreq:
		return state.SetFreq(t, instr.Value)
	default:
		return state
	}
}
