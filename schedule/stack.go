package schedule

// Stack constructs a sequential layout container: each child is placed
// after the children that share any of its channels, per direction.
func Stack(direction Direction, children ...*Element) *Element {
	return &Element{
		Common:    DefaultCommon(),
		Kind:      KindStack,
		StackData: &StackData{Children: children, Direction: direction},
	}
}
