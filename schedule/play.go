package schedule

// Play constructs a fixed-plateau play element: a pulse of the named
// shape (empty for rectangular) on channel, with the given amplitude,
// width, and plateau.
func Play(channel, shapeName string, amplitude, width, plateau float64) *Element {
	return &Element{
		Common: DefaultCommon(),
		Kind:   KindPlay,
		PlayData: &PlayData{
			Channel:   channel,
			Shape:     shapeName,
			Amplitude: amplitude,
			Width:     width,
			Plateau:   plateau,
		},
	}
}

// FlexiblePlay constructs a play element whose plateau is computed by the
// arrange pass to fill whatever slot it is given (only effective when its
// alignment is Stretch).
func FlexiblePlay(channel, shapeName string, amplitude, width float64) *Element {
	e := Play(channel, shapeName, amplitude, width, 0)
	e.PlayData.Flexible = true
	e.Alignment = AlignStretch
	return e
}

// WithDrag returns e (a Play element) with its DRAG coefficient set.
func (e *Element) WithDrag(drag float64) *Element {
	e.PlayData.Drag = drag
	return e
}

// WithFreqPhaseOffset returns e (a Play element) with its per-pulse extra
// carrier frequency and starting phase set.
func (e *Element) WithFreqPhaseOffset(freq, phase float64) *Element {
	e.PlayData.FreqOffset = freq
	e.PlayData.PhaseOffset = phase
	return e
}
