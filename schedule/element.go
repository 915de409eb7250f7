package schedule

// Kind is the tag of the Element sum type. A tagged variant is used
// instead of dynamic dispatch: the set of element shapes is small and
// closed, and a switch over Kind keeps measure/arrange exhaustive and
// inlinable.
type Kind int

const (
	KindPlay Kind = iota
	KindShiftPhase
	KindSetPhase
	KindShiftFreq
	KindSetFreq
	KindSwapPhase
	KindBarrier
	KindRepeat
	KindStack
	KindAbsolute
	KindGrid
)

// Element is a node in the schedule tree. Exactly one of the variant
// pointers is non-nil, selected by Kind. Children are held by pointer so
// identical subtrees may be shared by reference; every variant is treated
// as an immutable value once placed in a tree.
type Element struct {
	Common
	Kind Kind

	PlayData       *PlayData
	ShiftPhaseData *ShiftPhaseData
	SetPhaseData   *SetPhaseData
	ShiftFreqData  *ShiftFreqData
	SetFreqData    *SetFreqData
	SwapPhaseData  *SwapPhaseData
	BarrierData    *BarrierData
	RepeatData     *RepeatData
	StackData      *StackData
	AbsoluteData   *AbsoluteData
	GridData       *GridData
}

type PlayData struct {
	Channel     string
	Shape       string // shape library name; "" means rectangular
	Amplitude   float64
	Width       float64
	Plateau     float64
	Flexible    bool // plateau is computed by the arrange pass, not fixed
	Drag        float64
	FreqOffset  float64
	PhaseOffset float64
}

type ShiftPhaseData struct {
	Channel string
	Delta   float64
}

type SetPhaseData struct {
	Channel string
	Target  float64
}

type ShiftFreqData struct {
	Channel string
	Delta   float64
}

type SetFreqData struct {
	Channel string
	Target  float64
}

type SwapPhaseData struct {
	ChannelA string
	ChannelB string
}

// BarrierData holds the channel set a barrier synchronizes. An empty
// list means "every channel currently present in the enclosing stack's
// lane set".
type BarrierData struct {
	Channels []string
}

type RepeatData struct {
	Child   *Element
	Count   int
	Spacing float64
}

type StackData struct {
	Children  []*Element
	Direction Direction
}

type AbsoluteEntry struct {
	Time  float64
	Child *Element
}

type AbsoluteData struct {
	Children []AbsoluteEntry
}

type GridEntry struct {
	Column int
	Span   int
	Child  *Element
}

type GridData struct {
	Columns  []GridLength
	Children []GridEntry
}

// touchedChannels returns the set of channel names any descendant
// instruction of e addresses.
func touchedChannels(e *Element) map[string]bool {
	set := map[string]bool{}
	collectChannels(e, set)
	return set
}

func collectChannels(e *Element, set map[string]bool) {
	switch e.Kind {
	case KindPlay:
		set[e.PlayData.Channel] = true
	case KindShiftPhase:
		set[e.ShiftPhaseData.Channel] = true
	case KindSetPhase:
		set[e.SetPhaseData.Channel] = true
	case KindShiftFreq:
		set[e.ShiftFreqData.Channel] = true
	case KindSetFreq:
		set[e.SetFreqData.Channel] = true
	case KindSwapPhase:
		set[e.SwapPhaseData.ChannelA] = true
		set[e.SwapPhaseData.ChannelB] = true
	case KindBarrier:
		for _, c := range e.BarrierData.Channels {
			set[c] = true
		}
	case KindRepeat:
		collectChannels(e.RepeatData.Child, set)
	case KindStack:
		for _, c := range e.StackData.Children {
			collectChannels(c, set)
		}
	case KindAbsolute:
		for _, entry := range e.AbsoluteData.Children {
			collectChannels(entry.Child, set)
		}
	case KindGrid:
		for _, entry := range e.GridData.Children {
			collectChannels(entry.Child, set)
		}
	}
}
