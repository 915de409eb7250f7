// Package audition lets a developer listen to one generated channel
// waveform through the system audio device while iterating on a
// schedule. It is a playback convenience only: GenerateWaveforms never
// calls into this package.
package audition

import (
	intaudio "github.com/cbegin/pulsegen/internal/audio"
)

// Source adapts a generated complex waveform (as produced by the
// sampler/postproc stages) into the stereo float32 SampleSource the
// audio backend expects: the real rail feeds the left channel, the
// imaginary rail (zero for is_real channels) feeds the right.
type Source struct {
	buf  []complex128
	pos  int
	gain float32
}

// NewSource wraps a channel's final waveform for playback at gain (1.0
// = unity).
func NewSource(buf []complex128, gain float32) *Source {
	return &Source{buf: buf, gain: gain}
}

// Process implements intaudio.SampleSource.
func (s *Source) Process(dst []float32) {
	frames := len(dst) / 2
	for i := 0; i < frames; i++ {
		var l, r float32
		if s.pos < len(s.buf) {
			v := s.buf[s.pos]
			l = float32(real(v)) * s.gain
			r = float32(imag(v)) * s.gain
			s.pos++
		}
		dst[i*2] = l
		dst[i*2+1] = r
	}
}

// Finished implements intaudio.FinishingSource.
func (s *Source) Finished() bool { return s.pos >= len(s.buf) }

// Play starts streaming buf through the shared audio context at
// sampleRate and returns the underlying player so the caller can Stop
// it; gain is a linear scale applied before playback.
func Play(sampleRate int, buf []complex128, gain float32) (*intaudio.Player, error) {
	src := NewSource(buf, gain)
	p, err := intaudio.NewPlayer(sampleRate, src)
	if err != nil {
		return nil, err
	}
	p.Play()
	return p, nil
}
