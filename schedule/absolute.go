package schedule

// Absolute constructs a container whose children are placed at explicit
// offsets from the container's own start, rather than being laid out
// sequentially. Whether an overflowing child is an error is a global
// option (Arrange's allowOversize, Options.AllowOversize on
// GenerateWaveforms), not a per-element setting.
func Absolute(entries ...AbsoluteEntry) *Element {
	return &Element{
		Common:       DefaultCommon(),
		Kind:         KindAbsolute,
		AbsoluteData: &AbsoluteData{Children: entries},
	}
}

// At builds one Absolute child entry.
func At(time float64, child *Element) AbsoluteEntry {
	return AbsoluteEntry{Time: time, Child: child}
}
