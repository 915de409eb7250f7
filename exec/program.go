package exec

import (
	"sort"

	"github.com/cbegin/pulsegen/osc"
	"github.com/cbegin/pulsegen/pulselist"
	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/shape"
	"github.com/cbegin/pulsegen/xerr"
)

// Result is the product of walking an arrangement: every channel's
// accumulated pulse list and its final oscillator state.
type Result struct {
	Pulses map[string]*pulselist.List
	States map[string]osc.State
}

type eventKind int

const (
	eventInstr eventKind = iota
	eventSwap
)

type event struct {
	time    float64
	order   int
	kind    eventKind
	channel string
	instr   schedule.Instruction
	swap    schedule.SwapEvent
}

// Run walks arrangement's merged, time-ordered instruction/swap stream
// against the initial oscillator state of every touched channel, and
// merges adjacent identical pulses with the given time tolerance.
func Run(arrangement *schedule.Arrangement, shapes map[string]shape.Shape, initial map[string]osc.State, epsT float64) (*Result, error) {
	events := make([]event, 0, len(arrangement.Swaps))
	for ch, instrs := range arrangement.Instructions {
		for _, in := range instrs {
			events = append(events, event{time: in.Time, order: in.Order, kind: eventInstr, channel: ch, instr: in})
		}
	}
	for _, sw := range arrangement.Swaps {
		events = append(events, event{time: sw.Time, order: sw.Order, kind: eventSwap, swap: sw})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].time != events[j].time {
			return events[i].time < events[j].time
		}
		return events[i].order < events[j].order
	})

	states := make(map[string]osc.State, len(initial))
	for ch, s := range initial {
		states[ch] = s
	}
	pulses := make(map[string]*pulselist.List)
	ensure := func(ch string) {
		if _, ok := states[ch]; !ok {
			states[ch] = osc.New(0)
		}
		if _, ok := pulses[ch]; !ok {
			pulses[ch] = &pulselist.List{}
		}
	}

	for _, ev := range events {
		switch ev.kind {
		case eventInstr:
			ensure(ev.channel)
			if ev.instr.Kind == schedule.InstrPlay {
				var s shape.Shape
				if ev.instr.Play.Shape != "" {
					var ok bool
					s, ok = shapes[ev.instr.Play.Shape]
					if !ok {
						return nil, xerr.New(xerr.InvalidInput, "unknown shape %q", ev.instr.Play.Shape)
					}
				}
				p := applyPlay(states[ev.channel], ev.time, ev.instr.Play, s)
				pulses[ev.channel].Add(p)
			} else {
				states[ev.channel] = applyInstruction(states[ev.channel], ev.time, ev.instr)
			}
		case eventSwap:
			ensure(ev.swap.ChannelA)
			ensure(ev.swap.ChannelB)
			a, b := osc.SwapPhase(states[ev.swap.ChannelA], states[ev.swap.ChannelB], ev.time)
			states[ev.swap.ChannelA] = a
			states[ev.swap.ChannelB] = b
		}
	}

	for _, l := range pulses {
		l.Merge(epsT)
	}

	return &Result{Pulses: pulses, States: states}, nil
}
