package schedule

// ShiftPhase constructs a zero-duration phase-shift instruction.
func ShiftPhase(channel string, delta float64) *Element {
	return &Element{
		Common:         DefaultCommon(),
		Kind:           KindShiftPhase,
		ShiftPhaseData: &ShiftPhaseData{Channel: channel, Delta: delta},
	}
}

// SetPhase constructs a zero-duration absolute-phase instruction.
func SetPhase(channel string, target float64) *Element {
	return &Element{
		Common:       DefaultCommon(),
		Kind:         KindSetPhase,
		SetPhaseData: &SetPhaseData{Channel: channel, Target: target},
	}
}

// ShiftFreq constructs a zero-duration frequency-shift instruction.
func ShiftFreq(channel string, delta float64) *Element {
	return &Element{
		Common:        DefaultCommon(),
		Kind:          KindShiftFreq,
		ShiftFreqData: &ShiftFreqData{Channel: channel, Delta: delta},
	}
}

// SetFreq constructs a zero-duration absolute-frequency instruction.
func SetFreq(channel string, target float64) *Element {
	return &Element{
		Common:      DefaultCommon(),
		Kind:        KindSetFreq,
		SetFreqData: &SetFreqData{Channel: channel, Target: target},
	}
}

// SwapPhase constructs a zero-duration instruction that atomically
// exchanges the instantaneous phase of two channels.
func SwapPhase(channelA, channelB string) *Element {
	return &Element{
		Common:        DefaultCommon(),
		Kind:          KindSwapPhase,
		SwapPhaseData: &SwapPhaseData{ChannelA: channelA, ChannelB: channelB},
	}
}
