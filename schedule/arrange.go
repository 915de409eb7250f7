package schedule

import (
	"sort"

	"github.com/cbegin/pulsegen/xerr"
)

// InstrKind tags the entries of a channel's instruction stream: a Play,
// which carries a PlayInstruction, or one of the zero-duration oscillator
// instructions. SwapPhase has no InstrKind; it is recorded separately as
// a SwapEvent since it couples two channels atomically.
type InstrKind int

const (
	InstrPlay InstrKind = iota
	InstrShiftPhase
	InstrSetPhase
	InstrShiftFreq
	InstrSetFreq
)

// PlayInstruction is the arranged form of a Play element: everything the
// exec/sampler stages need except the oscillator-dependent carrier and
// phase, which exec resolves against the channel's running OscState.
type PlayInstruction struct {
	Shape       string
	Width       float64
	Plateau     float64
	Amplitude   float64
	Drag        float64
	FreqOffset  float64
	PhaseOffset float64
}

// Instruction is one entry in a channel's time-ordered instruction
// stream. Time is on the root timeline; Order is the source pre-order
// traversal index, the stable tie-break for equal times.
type Instruction struct {
	Time  float64
	Order int
	Kind  InstrKind
	Value float64 // delta/target, for the non-Play kinds
	Play  PlayInstruction
}

// SwapEvent records a SwapPhase instruction. It is kept apart from the
// per-channel Instruction streams because it must be applied atomically
// against both channels' running state at execution time.
type SwapEvent struct {
	Time     float64
	Order    int
	ChannelA string
	ChannelB string
}

// Arrangement is the flat, per-channel output of the arrange pass.
type Arrangement struct {
	Instructions map[string][]Instruction
	Swaps        []SwapEvent
}

type arrangeCtx struct {
	tol           Tolerances
	allowOversize bool
	order         int
	result        *Arrangement
}

func (c *arrangeCtx) nextOrder() int {
	o := c.order
	c.order++
	return o
}

func (c *arrangeCtx) emit(channel string, instr Instruction) {
	instr.Order = c.nextOrder()
	c.result.Instructions[channel] = append(c.result.Instructions[channel], instr)
}

func (c *arrangeCtx) emitSwap(t float64, a, b string) {
	c.result.Swaps = append(c.result.Swaps, SwapEvent{Time: t, Order: c.nextOrder(), ChannelA: a, ChannelB: b})
}

// Arrange places root (and its whole subtree) into an inner-relative
// arrangement: root's own start is taken as time 0, given duration as
// its final outer size.
func Arrange(root *Element, duration float64, tol Tolerances, allowOversize bool) (*Arrangement, error) {
	ctx := &arrangeCtx{
		tol:           tol,
		allowOversize: allowOversize,
		result:        &Arrangement{Instructions: map[string][]Instruction{}},
	}
	if err := arrange(root, 0, duration, ctx); err != nil {
		return nil, err
	}
	ctx.result.sort()
	return ctx.result, nil
}

// sort orders every channel's instruction stream and the global swap
// list by (Time, Order): ties are broken by source pre-order traversal
// index, per the arrange pass's ordering guarantee.
func (a *Arrangement) sort() {
	for _, instrs := range a.Instructions {
		sort.SliceStable(instrs, func(i, j int) bool {
			if instrs[i].Time != instrs[j].Time {
				return instrs[i].Time < instrs[j].Time
			}
			return instrs[i].Order < instrs[j].Order
		})
	}
	sort.SliceStable(a.Swaps, func(i, j int) bool {
		if a.Swaps[i].Time != a.Swaps[j].Time {
			return a.Swaps[i].Time < a.Swaps[j].Time
		}
		return a.Swaps[i].Order < a.Swaps[j].Order
	})
}

func arrange(e *Element, start, duration float64, ctx *arrangeCtx) error {
	if !e.Visibility {
		return nil
	}
	innerStart := start + e.MarginLeft
	innerDuration := duration - e.MarginLeft - e.MarginRight
	if innerDuration < ctx.tol.Time {
		innerDuration = 0
	}
	switch e.Kind {
	case KindPlay:
		return arrangePlay(e, innerStart, innerDuration, ctx)

	case KindShiftPhase:
		pos := positionWithin(innerStart, innerDuration, 0, e.Alignment)
		ctx.emit(e.ShiftPhaseData.Channel, Instruction{Time: pos, Kind: InstrShiftPhase, Value: e.ShiftPhaseData.Delta})
		return nil

	case KindSetPhase:
		pos := positionWithin(innerStart, innerDuration, 0, e.Alignment)
		ctx.emit(e.SetPhaseData.Channel, Instruction{Time: pos, Kind: InstrSetPhase, Value: e.SetPhaseData.Target})
		return nil

	case KindShiftFreq:
		pos := positionWithin(innerStart, innerDuration, 0, e.Alignment)
		ctx.emit(e.ShiftFreqData.Channel, Instruction{Time: pos, Kind: InstrShiftFreq, Value: e.ShiftFreqData.Delta})
		return nil

	case KindSetFreq:
		pos := positionWithin(innerStart, innerDuration, 0, e.Alignment)
		ctx.emit(e.SetFreqData.Channel, Instruction{Time: pos, Kind: InstrSetFreq, Value: e.SetFreqData.Target})
		return nil

	case KindSwapPhase:
		pos := positionWithin(innerStart, innerDuration, 0, e.Alignment)
		ctx.emitSwap(pos, e.SwapPhaseData.ChannelA, e.SwapPhaseData.ChannelB)
		return nil

	case KindBarrier:
		return nil

	case KindRepeat:
		return arrangeRepeat(e.RepeatData, innerStart, innerDuration, ctx)

	case KindStack:
		return arrangeStack(e.StackData, innerStart, innerDuration, ctx)

	case KindAbsolute:
		return arrangeAbsolute(e.AbsoluteData, innerStart, innerDuration, ctx)

	case KindGrid:
		return arrangeGrid(e.GridData, innerStart, innerDuration, ctx)

	default:
		return xerr.New(xerr.Internal, "arrange: unknown element kind %d", e.Kind)
	}
}

// positionWithin locates an item of width itemWidth inside the slot
// [slotStart, slotStart+slotDuration) per alignment.
func positionWithin(slotStart, slotDuration, itemWidth float64, alignment Alignment) float64 {
	switch alignment {
	case AlignStart, AlignStretch:
		return slotStart
	case AlignCenter:
		return slotStart + (slotDuration-itemWidth)/2
	default: // AlignEnd
		return slotStart + slotDuration - itemWidth
	}
}

func arrangePlay(e *Element, innerStart, innerDuration float64, ctx *arrangeCtx) error {
	width := e.PlayData.Width
	plateau := e.PlayData.Plateau
	if e.PlayData.Flexible && e.Alignment == AlignStretch {
		plateau = innerDuration - width
		if plateau < 0 {
			plateau = 0
		}
	}
	total := width + plateau
	pos := positionWithin(innerStart, innerDuration, total, e.Alignment)
	ctx.emit(e.PlayData.Channel, Instruction{
		Time: pos,
		Kind: InstrPlay,
		Play: PlayInstruction{
			Shape:       e.PlayData.Shape,
			Width:       width,
			Plateau:     plateau,
			Amplitude:   e.PlayData.Amplitude,
			Drag:        e.PlayData.Drag,
			FreqOffset:  e.PlayData.FreqOffset,
			PhaseOffset: e.PlayData.PhaseOffset,
		},
	})
	return nil
}

func arrangeRepeat(r *RepeatData, innerStart, innerDuration float64, ctx *arrangeCtx) error {
	if r.Count < 1 {
		return nil
	}
	perReplica := (innerDuration - float64(r.Count-1)*r.Spacing) / float64(r.Count)
	for i := 0; i < r.Count; i++ {
		childStart := innerStart + float64(i)*(perReplica+r.Spacing)
		if err := arrange(r.Child, childStart, perReplica, ctx); err != nil {
			return err
		}
	}
	return nil
}

func arrangeStack(s *StackData, innerStart, innerDuration float64, ctx *arrangeCtx) error {
	cursor := map[string]float64{}
	init := 0.0
	if s.Direction == Backwards {
		init = innerDuration
	}
	get := func(lane string) float64 {
		if v, ok := cursor[lane]; ok {
			return v
		}
		return init
	}
	laneSet := func(touched map[string]bool) []string {
		if len(touched) > 0 {
			keys := make([]string, 0, len(touched))
			for k := range touched {
				keys = append(keys, k)
			}
			return keys
		}
		if len(cursor) == 0 {
			return []string{allChannelsLane}
		}
		return knownLanes(cursor)
	}

	// Barrier needs no special case: its touched-channel set already is
	// its explicit list (or every known lane, via laneSet's fallback),
	// and it measures to 0 unless given an explicit Duration, so the
	// generic per-child accumulation below reproduces "synchronize to
	// the max/min among listed channels" on its own.
	for _, child := range s.Children {
		touched := touchedChannels(child)
		lanes := laneSet(touched)
		boundary := get(lanes[0])
		for _, ln := range lanes[1:] {
			v := get(ln)
			if (s.Direction == Forwards && v > boundary) || (s.Direction == Backwards && v < boundary) {
				boundary = v
			}
		}
		d, err := Measure(child, ctx.tol)
		if err != nil {
			return err
		}
		var childStart float64
		var advance float64
		if s.Direction == Forwards {
			childStart = boundary
			advance = boundary + d
		} else {
			childStart = boundary - d
			advance = childStart
		}
		for _, ln := range lanes {
			cursor[ln] = advance
		}
		if err := arrange(child, innerStart+childStart, d, ctx); err != nil {
			return err
		}
	}
	return nil
}

func arrangeAbsolute(a *AbsoluteData, innerStart, innerDuration float64, ctx *arrangeCtx) error {
	for _, entry := range a.Children {
		d, err := Measure(entry.Child, ctx.tol)
		if err != nil {
			return err
		}
		if !ctx.allowOversize && entry.Time+d > innerDuration+ctx.tol.Time {
			return xerr.New(xerr.Oversize, "absolute child at t=%.12g extends to %.12g, past allocation %.12g",
				entry.Time, entry.Time+d, innerDuration)
		}
		if err := arrange(entry.Child, innerStart+entry.Time, d, ctx); err != nil {
			return err
		}
	}
	return nil
}

func arrangeGrid(g *GridData, innerStart, innerDuration float64, ctx *arrangeCtx) error {
	sizes, err := resolvedColumnSizes(g, ctx.tol)
	if err != nil {
		return err
	}
	n := len(g.Columns)
	fixedAutoSum := 0.0
	starWeight := 0.0
	for i, c := range g.Columns {
		if c.Unit == GridLengthStar {
			starWeight += c.Value
		} else {
			fixedAutoSum += sizes[i]
		}
	}
	remainder := innerDuration - fixedAutoSum
	if remainder < 0 {
		remainder = 0
	}
	for i, c := range g.Columns {
		if c.Unit == GridLengthStar {
			if starWeight > 0 {
				sizes[i] = remainder * c.Value / starWeight
			} else {
				sizes[i] = 0
			}
		}
	}
	starts := make([]float64, n+1)
	for i := 0; i < n; i++ {
		starts[i+1] = starts[i] + sizes[i]
	}
	for _, entry := range g.Children {
		end := entry.Column + entry.Span
		if end > n {
			end = n
		}
		colStart := starts[entry.Column]
		colEnd := starts[end]
		if err := arrange(entry.Child, innerStart+colStart, colEnd-colStart, ctx); err != nil {
			return err
		}
	}
	return nil
}
