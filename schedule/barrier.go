package schedule

// Barrier constructs a synchronization marker across the given channels
// (all channels currently present in the enclosing stack's lane set, if
// channels is empty). duration, if non-negative, gives the barrier an
// explicit measured size; pass a negative value for the default
// zero-duration barrier.
func Barrier(duration float64, channels ...string) *Element {
	c := DefaultCommon()
	if duration >= 0 {
		d := duration
		c.Duration = &d
	}
	return &Element{
		Common:      c,
		Kind:        KindBarrier,
		BarrierData: &BarrierData{Channels: channels},
	}
}
