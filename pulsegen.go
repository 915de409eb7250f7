// Package pulsegen compiles a hierarchical pulse schedule for
// superconducting-qubit control electronics into per-channel waveform
// buffers: measure/arrange the element tree, execute the resulting
// instruction stream against each channel's oscillator state, rasterize
// pulses to samples, then crosstalk-mix and post-process.
package pulsegen

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cbegin/pulsegen/channel"
	"github.com/cbegin/pulsegen/exec"
	"github.com/cbegin/pulsegen/osc"
	"github.com/cbegin/pulsegen/postproc"
	"github.com/cbegin/pulsegen/sampler"
	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/shape"
	"github.com/cbegin/pulsegen/xerr"
)

// Crosstalk describes a mixing matrix applied across a named subset of
// channels before their individual postprocessing runs.
type Crosstalk struct {
	Channels []string
	Matrix   [][]float64
}

// Options bundles generate_waveforms' optional parameters.
type Options struct {
	AllowOversize bool
	AmpTolerance  float64 // default sampler.DefaultAmpTolerance if zero
	TimeTolerance float64 // default schedule.DefaultTolerances().Time if zero
	Crosstalk     *Crosstalk
	InitialStates map[string]osc.State // per-channel starting oscillator state
}

// Result is what GenerateWaveforms returns.
type Result struct {
	// Waveforms holds each channel's samples: [][]float64{I} for is_real
	// channels, [][]float64{I, Q} otherwise.
	Waveforms map[string][][]float64
	// States holds each channel's final oscillator state.
	States map[string]osc.State
}

// GenerateWaveforms measures and arranges root against the given
// channels, executes the resulting instruction stream, rasterizes every
// channel's pulses, and applies crosstalk/postprocessing.
func GenerateWaveforms(root *schedule.Element, channels map[string]channel.Config, shapes map[string]shape.Shape, opts Options) (*Result, error) {
	if len(channels) == 0 {
		return nil, xerr.New(xerr.InvalidInput, "no channels given")
	}
	for name, cfg := range channels {
		if err := cfg.Validate(); err != nil {
			return nil, xerr.Wrap(xerr.InvalidInput, err, "channel %q", name)
		}
	}

	tol := schedule.DefaultTolerances()
	if opts.TimeTolerance > 0 {
		tol.Time = opts.TimeTolerance
	}
	ampTol := sampler.DefaultAmpTolerance
	if opts.AmpTolerance > 0 {
		ampTol = opts.AmpTolerance
	}

	duration, err := schedule.Measure(root, tol)
	if err != nil {
		return nil, err
	}
	arrangement, err := schedule.Arrange(root, duration, tol, opts.AllowOversize)
	if err != nil {
		return nil, err
	}

	if err := validateChannelReferences(arrangement, channels); err != nil {
		return nil, err
	}
	if err := validateShapeReferences(arrangement, shapes); err != nil {
		return nil, err
	}
	if opts.Crosstalk != nil {
		if err := validateCrosstalk(*opts.Crosstalk, channels); err != nil {
			return nil, err
		}
	}

	initial := make(map[string]osc.State, len(channels))
	for name, cfg := range channels {
		if s, ok := opts.InitialStates[name]; ok {
			initial[name] = s
		} else {
			initial[name] = osc.New(cfg.BaseFreq)
		}
	}

	execResult, err := exec.Run(arrangement, shapes, initial, tol.Time)
	if err != nil {
		return nil, err
	}

	buffers := make(map[string][]complex128, len(channels))
	var mu sync.Mutex
	var g errgroup.Group
	for name, cfg := range channels {
		name, cfg := name, cfg
		g.Go(func() error {
			list, ok := execResult.Pulses[name]
			var buf []complex128
			if ok {
				buf = sampler.Sample(list, cfg, ampTol)
			} else {
				buf = make([]complex128, cfg.Length)
			}
			mu.Lock()
			buffers[name] = buf
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Crosstalk != nil {
		if err := postproc.Crosstalk(buffers, opts.Crosstalk.Channels, opts.Crosstalk.Matrix); err != nil {
			return nil, err
		}
	}

	waveforms := make(map[string][][]float64, len(channels))
	var mu2 sync.Mutex
	var g2 errgroup.Group
	for name, cfg := range channels {
		name, cfg := name, cfg
		g2.Go(func() error {
			processed := postproc.Apply(buffers[name], cfg)
			mu2.Lock()
			waveforms[name] = splitRails(processed, cfg.IsReal)
			mu2.Unlock()
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	states := make(map[string]osc.State, len(channels))
	for name := range channels {
		if s, ok := execResult.States[name]; ok {
			states[name] = s
		} else {
			states[name] = initial[name]
		}
	}

	return &Result{Waveforms: waveforms, States: states}, nil
}

func splitRails(buf []complex128, isReal bool) [][]float64 {
	i := make([]float64, len(buf))
	if isReal {
		for k, v := range buf {
			i[k] = real(v)
		}
		return [][]float64{i}
	}
	q := make([]float64, len(buf))
	for k, v := range buf {
		i[k] = real(v)
		q[k] = imag(v)
	}
	return [][]float64{i, q}
}

func validateChannelReferences(arr *schedule.Arrangement, channels map[string]channel.Config) error {
	for name := range arr.Instructions {
		if _, ok := channels[name]; !ok {
			return xerr.New(xerr.InvalidInput, "schedule references unknown channel %q", name)
		}
	}
	for _, sw := range arr.Swaps {
		if _, ok := channels[sw.ChannelA]; !ok {
			return xerr.New(xerr.InvalidInput, "schedule references unknown channel %q", sw.ChannelA)
		}
		if _, ok := channels[sw.ChannelB]; !ok {
			return xerr.New(xerr.InvalidInput, "schedule references unknown channel %q", sw.ChannelB)
		}
	}
	return nil
}

func validateShapeReferences(arr *schedule.Arrangement, shapes map[string]shape.Shape) error {
	for _, instrs := range arr.Instructions {
		for _, in := range instrs {
			if in.Kind != schedule.InstrPlay || in.Play.Shape == "" {
				continue
			}
			if _, ok := shapes[in.Play.Shape]; !ok {
				return xerr.New(xerr.InvalidInput, "schedule references unknown shape %q", in.Play.Shape)
			}
		}
	}
	return nil
}

func validateCrosstalk(ct Crosstalk, channels map[string]channel.Config) error {
	n := len(ct.Channels)
	if len(ct.Matrix) != n {
		return xerr.New(xerr.InvalidInput, "crosstalk matrix has %d rows, want %d (one per named channel)", len(ct.Matrix), n)
	}
	for _, row := range ct.Matrix {
		if len(row) != n {
			return xerr.New(xerr.InvalidInput, "crosstalk matrix row has %d entries, want %d", len(row), n)
		}
	}
	for _, name := range ct.Channels {
		if _, ok := channels[name]; !ok {
			return xerr.New(xerr.InvalidInput, "crosstalk references unknown channel %q", name)
		}
	}
	return nil
}
