package schedule

// Repeat constructs a container that places count copies of child back
// to back, separated by spacing.
func Repeat(child *Element, count int, spacing float64) *Element {
	return &Element{
		Common:     DefaultCommon(),
		Kind:       KindRepeat,
		RepeatData: &RepeatData{Child: child, Count: count, Spacing: spacing},
	}
}
