// Package sampler rasterizes a channel's pulse list into a complex
// sample buffer: sub-sample-aligned envelope evaluation, DRAG derivative
// in the quadrature, and mixing with the pulse's carrier.
package sampler

import (
	"math"
	"math/cmplx"

	"github.com/cbegin/pulsegen/channel"
	"github.com/cbegin/pulsegen/pulselist"
)

// DefaultAmpTolerance is the default magnitude below which a merged
// pulse is skipped entirely before rasterization.
const DefaultAmpTolerance = 0.1 / 65536

// snap rounds t to the nearest multiple of 2^alignLevel/sampleRate.
func snap(t, sampleRate float64, alignLevel int) float64 {
	grain := math.Ldexp(1, alignLevel) / sampleRate
	if grain <= 0 {
		return t
	}
	return math.Round(t/grain) * grain
}

// Sample rasterizes every pulse in list onto a buffer of cfg.Length
// complex samples, pruning any pulse whose amplitude is below
// ampTolerance. Pulse.Start is channel-local (channel.Delay is applied
// here, once, at snap time).
func Sample(list *pulselist.List, cfg channel.Config, ampTolerance float64) []complex128 {
	buf := make([]complex128, cfg.Length)
	dt := cfg.Delta()
	for _, p := range list.Pulses() {
		if math.Abs(p.Amplitude) < ampTolerance {
			continue
		}
		addPulse(buf, p, cfg, dt)
	}
	return buf
}

func addPulse(buf []complex128, p pulselist.Pulse, cfg channel.Config, dt float64) {
	t0 := snap(p.Start+cfg.Delay, cfg.SampleRate, cfg.AlignLevel)
	active := p.Width + p.Plateau
	iStart := int(math.Floor(t0 * cfg.SampleRate))
	iEnd := int(math.Ceil((t0 + active) * cfg.SampleRate))
	if iStart < 0 {
		iStart = 0
	}
	if iEnd > len(buf) {
		iEnd = len(buf)
	}
	if iStart >= iEnd {
		return
	}

	half := p.Width / 2
	carrierStep := 2 * math.Pi * p.Freq * dt
	phaseOffset := 2 * math.Pi * p.Phase
	for k := iStart; k < iEnd; k++ {
		tau := float64(k)*dt - t0
		env, denv := envelope(p, tau, half)
		quad := complex(env, 0)
		if p.Drag != 0 && p.Width != 0 {
			quad += complex(0, p.Drag*cfg.SampleRate*denv/p.Width)
		}
		carrier := cmplx.Exp(complex(0, carrierStep*float64(k)+phaseOffset))
		buf[k] += complex(p.Amplitude, 0) * quad * carrier
	}
}

// envelope evaluates the three-region shape: ramp-up on [0, width/2),
// flat plateau at x=0, ramp-down on [width/2+plateau, width+plateau].
func envelope(p pulselist.Pulse, tau, half float64) (env, denv float64) {
	if p.Shape == nil || p.Width == 0 {
		return 1, 0
	}
	var x float64
	switch {
	case tau < half:
		x = (tau - half) / p.Width
	case tau < half+p.Plateau:
		x = 0
	default:
		x = (tau - half - p.Plateau) / p.Width
	}
	return p.Shape.Sample(x), p.Shape.Derivative(x)
}
