package pulsegen

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cbegin/pulsegen/channel"
	"github.com/cbegin/pulsegen/osc"
	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/shape"
)

// A channel's waveform always has the requested length, regardless of
// what the schedule placed on it.
func TestPropertyWaveformLengthMatchesChannelLength(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		length := rapid.Uint32Range(1, 2000).Draw(rt, "length")
		width := rapid.Float64Range(10e-9, 200e-9).Draw(rt, "width")
		amp := rapid.Float64Range(0.01, 1).Draw(rt, "amp")

		root := schedule.Play("xy", "hann", amp, width, 0)
		channels := map[string]channel.Config{
			"xy": {BaseFreq: 50e6, SampleRate: 1e9, Length: length, AlignLevel: channel.DefaultAlignLevel},
		}
		shapes := map[string]shape.Shape{"hann": shape.Hann{}}

		res, err := GenerateWaveforms(root, channels, shapes, Options{AllowOversize: true})
		require.NoError(rt, err)
		for _, rail := range res.Waveforms["xy"] {
			require.Len(rt, rail, int(length))
		}
	})
}

// Phase stays continuous across a ShiftFreq jump: PhaseAt(t) just before
// and just after the jump agree, and the delta frequency lands on the
// previous delta plus the jump.
func TestPropertyShiftFreqPreservesPhaseContinuity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(1e6, 500e6).Draw(rt, "base")
		delta := rapid.Float64Range(-100e6, 100e6).Draw(rt, "delta")
		jump := rapid.Float64Range(-50e6, 50e6).Draw(rt, "jump")
		t0 := rapid.Float64Range(0, 1e-6).Draw(rt, "t0")

		before := osc.State{BaseFreq: base, DeltaFreq: delta}
		after := before.ShiftFreq(t0, jump)

		require.InDelta(rt, before.PhaseAt(t0), after.PhaseAt(t0), 1e-9)
		require.InDelta(rt, after.DeltaFreq, delta+jump, 1e-9)
	})
}

// SwapPhase is its own inverse at the same instant.
func TestPropertySwapPhaseIsInvolution(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := osc.State{
			BaseFreq: rapid.Float64Range(1e6, 500e6).Draw(rt, "baseA"),
			Phase:    rapid.Float64Range(-10, 10).Draw(rt, "phaseA"),
		}
		b := osc.State{
			BaseFreq: rapid.Float64Range(1e6, 500e6).Draw(rt, "baseB"),
			Phase:    rapid.Float64Range(-10, 10).Draw(rt, "phaseB"),
		}
		tSwap := rapid.Float64Range(0, 1e-6).Draw(rt, "t")

		a1, b1 := osc.SwapPhase(a, b, tSwap)
		a2, b2 := osc.SwapPhase(a1, b1, tSwap)

		require.InDelta(rt, a.PhaseAt(tSwap), a2.PhaseAt(tSwap), 1e-9)
		require.InDelta(rt, b.PhaseAt(tSwap), b2.PhaseAt(tSwap), 1e-9)
	})
}

// Sampling two independently built, identical schedules against the same
// channel configuration gives bit-identical output: no hidden global state
// makes layout or sampling order-dependent.
func TestPropertySamplingIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		amp := rapid.Float64Range(0.01, 1).Draw(rt, "amp")
		width := rapid.Float64Range(10e-9, 150e-9).Draw(rt, "width")

		mkRoot := func() *schedule.Element { return schedule.Play("xy", "hann", amp, width, 0) }
		channels := map[string]channel.Config{
			"xy": {BaseFreq: 40e6, SampleRate: 1e9, Length: 256, AlignLevel: channel.DefaultAlignLevel},
		}
		shapes := map[string]shape.Shape{"hann": shape.Hann{}}

		r1, err := GenerateWaveforms(mkRoot(), channels, shapes, Options{})
		require.NoError(rt, err)
		r2, err := GenerateWaveforms(mkRoot(), channels, shapes, Options{})
		require.NoError(rt, err)
		require.Equal(rt, r1.Waveforms["xy"], r2.Waveforms["xy"])
	})
}

// Repeat(child, n, spacing) produces the same waveform as n copies of
// child stacked back to back with the same spacing.
func TestPropertyRepeatEqualsUnrolling(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 4).Draw(rt, "count")
		width := rapid.Float64Range(10e-9, 40e-9).Draw(rt, "width")
		spacing := rapid.Float64Range(0, 20e-9).Draw(rt, "spacing")

		mkPlay := func() *schedule.Element { return schedule.Play("xy", "hann", 0.5, width, 0) }

		repeated := schedule.Repeat(mkPlay(), count, spacing)

		unrolled := make([]*schedule.Element, count)
		for i := range unrolled {
			unrolled[i] = mkPlay()
			if i > 0 {
				unrolled[i].MarginLeft = spacing
			}
		}
		stacked := schedule.Stack(schedule.Forwards, unrolled...)
		stacked.MinDuration = float64(count)*width + float64(count-1)*spacing

		channels := map[string]channel.Config{
			"xy": {BaseFreq: 30e6, SampleRate: 1e9, Length: 4000, AlignLevel: channel.DefaultAlignLevel},
		}
		shapes := map[string]shape.Shape{"hann": shape.Hann{}}

		r1, err := GenerateWaveforms(repeated, channels, shapes, Options{})
		require.NoError(rt, err)
		r2, err := GenerateWaveforms(stacked, channels, shapes, Options{})
		require.NoError(rt, err)

		require.InDeltaSlice(rt, r1.Waveforms["xy"][0], r2.Waveforms["xy"][0], 1e-9)
		require.InDeltaSlice(rt, r1.Waveforms["xy"][1], r2.Waveforms["xy"][1], 1e-9)
	})
}

// Two overlapping pulses on the same channel add: the run with both
// equals the sum of the runs with each alone, and the merged buffer
// carries strictly positive energy (complex-amplitude addition rather
// than some form of replacement).
func TestPropertyOverlappingPulsesAreAdditive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a1 := rapid.Float64Range(0.05, 0.3).Draw(rt, "a1")
		a2 := rapid.Float64Range(0.05, 0.3).Draw(rt, "a2")
		width := rapid.Float64Range(10e-9, 40e-9).Draw(rt, "width")

		root := schedule.Absolute(
			schedule.At(0, schedule.Play("xy", "hann", a1, width, 0)),
			schedule.At(0, schedule.Play("xy", "hann", a2, width, 0)),
		)
		channels := map[string]channel.Config{
			"xy": {BaseFreq: 0, SampleRate: 1e9, Length: 200, AlignLevel: channel.DefaultAlignLevel},
		}
		shapes := map[string]shape.Shape{"hann": shape.Hann{}}

		res, err := GenerateWaveforms(root, channels, shapes, Options{AllowOversize: true})
		require.NoError(rt, err)
		rail := res.Waveforms["xy"]
		only1, err := GenerateWaveforms(schedule.Play("xy", "hann", a1, width, 0), channels, shapes, Options{AllowOversize: true})
		require.NoError(rt, err)
		only2, err := GenerateWaveforms(schedule.Play("xy", "hann", a2, width, 0), channels, shapes, Options{AllowOversize: true})
		require.NoError(rt, err)
		for r := range rail {
			for k := range rail[r] {
				require.InDelta(rt, only1.Waveforms["xy"][r][k]+only2.Waveforms["xy"][r][k], rail[r][k], 1e-9)
			}
		}
		var energy float64
		for i := range rail[0] {
			c := complex(rail[0][i], rail[1][i])
			energy += real(c * cmplx.Conj(c))
		}
		require.Greater(rt, energy, 0.0)
	})
}
