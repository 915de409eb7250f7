package config

import (
	"math"

	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/xerr"
)

// CommonDoc is the on-disk form of schedule.Common, shared by every
// element kind.
type CommonDoc struct {
	MarginLeft  float64  `yaml:"margin_left,omitempty"`
	MarginRight float64  `yaml:"margin_right,omitempty"`
	Alignment   string   `yaml:"alignment,omitempty"` // end|start|center|stretch
	Hidden      bool     `yaml:"hidden,omitempty"`
	Duration    *float64 `yaml:"duration,omitempty"`
	MaxDuration *float64 `yaml:"max_duration,omitempty"`
	MinDuration float64  `yaml:"min_duration,omitempty"`
}

func (c CommonDoc) apply(common *schedule.Common) error {
	common.MarginLeft = c.MarginLeft
	common.MarginRight = c.MarginRight
	common.Visibility = !c.Hidden
	common.Duration = c.Duration
	common.MinDuration = c.MinDuration
	if c.MaxDuration != nil {
		common.MaxDuration = *c.MaxDuration
	} else {
		common.MaxDuration = math.Inf(1)
	}
	switch c.Alignment {
	case "", "end":
		common.Alignment = schedule.AlignEnd
	case "start":
		common.Alignment = schedule.AlignStart
	case "center":
		common.Alignment = schedule.AlignCenter
	case "stretch":
		common.Alignment = schedule.AlignStretch
	default:
		return xerr.New(xerr.InvalidInput, "unknown alignment %q", c.Alignment)
	}
	return nil
}

// ElementDoc is the recursive, tagged-union on-disk form of
// schedule.Element: exactly one payload field is populated, selected by
// Kind.
type ElementDoc struct {
	Kind   string    `yaml:"kind"`
	Common CommonDoc `yaml:"common,omitempty"`

	// play
	Channel   string  `yaml:"channel,omitempty"`
	Shape     string  `yaml:"shape,omitempty"`
	Amplitude float64 `yaml:"amplitude,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Plateau   float64 `yaml:"plateau,omitempty"`
	Flexible  bool    `yaml:"flexible,omitempty"`
	Drag      float64 `yaml:"drag,omitempty"`
	Freq      float64 `yaml:"freq,omitempty"`
	Phase     float64 `yaml:"phase,omitempty"`

	// shift_phase/set_phase/shift_freq/set_freq
	Value float64 `yaml:"value,omitempty"`

	// swap_phase
	ChannelA string `yaml:"channel_a,omitempty"`
	ChannelB string `yaml:"channel_b,omitempty"`

	// barrier
	Channels []string `yaml:"channels,omitempty"`

	// repeat
	Child   *ElementDoc `yaml:"child,omitempty"`
	Count   int         `yaml:"count,omitempty"`
	Spacing float64     `yaml:"spacing,omitempty"`

	// stack
	Direction string       `yaml:"direction,omitempty"` // forwards|backwards
	Children  []ElementDoc `yaml:"children,omitempty"`

	// absolute
	Entries []AbsoluteEntryDoc `yaml:"entries,omitempty"`

	// grid
	Columns []string    `yaml:"columns,omitempty"`
	Cells   []GridCellDoc `yaml:"cells,omitempty"`
}

// AbsoluteEntryDoc is one (time, child) pair inside an Absolute element.
type AbsoluteEntryDoc struct {
	Time  float64    `yaml:"time"`
	Child ElementDoc `yaml:"child"`
}

// GridCellDoc is one (column, span, child) placement inside a Grid.
type GridCellDoc struct {
	Column int        `yaml:"column"`
	Span   int        `yaml:"span"`
	Child  ElementDoc `yaml:"child"`
}

// Build recursively constructs the schedule.Element tree ed describes.
func (ed ElementDoc) Build() (*schedule.Element, error) {
	var e *schedule.Element
	var err error
	switch ed.Kind {
	case "play":
		e = schedule.Play(ed.Channel, ed.Shape, ed.Amplitude, ed.Width, ed.Plateau)
		if ed.Flexible {
			e.PlayData.Flexible = true
		}
		if ed.Drag != 0 {
			e.WithDrag(ed.Drag)
		}
		if ed.Freq != 0 || ed.Phase != 0 {
			e.WithFreqPhaseOffset(ed.Freq, ed.Phase)
		}
	case "shift_phase":
		e = schedule.ShiftPhase(ed.Channel, ed.Value)
	case "set_phase":
		e = schedule.SetPhase(ed.Channel, ed.Value)
	case "shift_freq":
		e = schedule.ShiftFreq(ed.Channel, ed.Value)
	case "set_freq":
		e = schedule.SetFreq(ed.Channel, ed.Value)
	case "swap_phase":
		e = schedule.SwapPhase(ed.ChannelA, ed.ChannelB)
	case "barrier":
		d := -1.0
		if ed.Common.Duration != nil {
			d = *ed.Common.Duration
		}
		e = schedule.Barrier(d, ed.Channels...)
	case "repeat":
		if ed.Child == nil {
			return nil, xerr.New(xerr.InvalidInput, "repeat element requires a child")
		}
		child, cerr := ed.Child.Build()
		if cerr != nil {
			return nil, cerr
		}
		e = schedule.Repeat(child, ed.Count, ed.Spacing)
	case "stack":
		dir := schedule.Backwards
		if ed.Direction == "forwards" {
			dir = schedule.Forwards
		}
		children := make([]*schedule.Element, len(ed.Children))
		for i, cd := range ed.Children {
			c, cerr := cd.Build()
			if cerr != nil {
				return nil, cerr
			}
			children[i] = c
		}
		e = schedule.Stack(dir, children...)
	case "absolute":
		entries := make([]schedule.AbsoluteEntry, len(ed.Entries))
		for i, ent := range ed.Entries {
			c, cerr := ent.Child.Build()
			if cerr != nil {
				return nil, cerr
			}
			entries[i] = schedule.At(ent.Time, c)
		}
		e = schedule.Absolute(entries...)
	case "grid":
		columns := make([]schedule.GridLength, len(ed.Columns))
		for i, col := range ed.Columns {
			gl, cerr := schedule.ParseGridLength(col)
			if cerr != nil {
				return nil, cerr
			}
			columns[i] = gl
		}
		cells := make([]schedule.GridEntry, len(ed.Cells))
		for i, cell := range ed.Cells {
			c, cerr := cell.Child.Build()
			if cerr != nil {
				return nil, cerr
			}
			span := cell.Span
			if span == 0 {
				span = 1
			}
			cells[i] = schedule.Cell(cell.Column, span, c)
		}
		e = schedule.Grid(columns, cells...)
	default:
		return nil, xerr.New(xerr.InvalidInput, "unknown element kind %q", ed.Kind)
	}
	if err = ed.Common.apply(&e.Common); err != nil {
		return nil, err
	}
	return e, nil
}
