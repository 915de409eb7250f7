package schedule

import "sort"

// PlotItem is one diagnostic overlay entry describing an arranged
// element: not consumed by waveform generation, only by external
// rendering helpers.
type PlotItem struct {
	Kind     Kind
	Depth    int
	Start    float64
	Span     float64
	Channels []string
	Label    string
}

// Plot re-runs the arrange traversal purely to describe the placed tree,
// for diagnostic rendering; it does not affect (and is not affected by)
// waveform generation.
func Plot(root *Element, duration float64, tol Tolerances, allowOversize bool) ([]PlotItem, error) {
	var items []PlotItem
	if err := plot(root, 0, duration, 0, tol, allowOversize, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func plot(e *Element, start, duration float64, depth int, tol Tolerances, allowOversize bool, out *[]PlotItem) error {
	if !e.Visibility {
		return nil
	}
	innerStart := start + e.MarginLeft
	innerDuration := duration - e.MarginLeft - e.MarginRight
	if innerDuration < tol.Time {
		innerDuration = 0
	}

	touched := touchedChannels(e)
	channels := make([]string, 0, len(touched))
	for c := range touched {
		channels = append(channels, c)
	}
	sort.Strings(channels)
	*out = append(*out, PlotItem{
		Kind:     e.Kind,
		Depth:    depth,
		Start:    start,
		Span:     duration,
		Channels: channels,
		Label:    label(e),
	})

	switch e.Kind {
	case KindRepeat:
		r := e.RepeatData
		if r.Count < 1 {
			return nil
		}
		perReplica := (innerDuration - float64(r.Count-1)*r.Spacing) / float64(r.Count)
		for i := 0; i < r.Count; i++ {
			childStart := innerStart + float64(i)*(perReplica+r.Spacing)
			if err := plot(r.Child, childStart, perReplica, depth+1, tol, allowOversize, out); err != nil {
				return err
			}
		}
	case KindStack:
		return plotStack(e.StackData, innerStart, innerDuration, depth, tol, allowOversize, out)
	case KindAbsolute:
		for _, entry := range e.AbsoluteData.Children {
			d, err := Measure(entry.Child, tol)
			if err != nil {
				return err
			}
			if err := plot(entry.Child, innerStart+entry.Time, d, depth+1, tol, allowOversize, out); err != nil {
				return err
			}
		}
	case KindGrid:
		sizes, err := resolvedColumnSizes(e.GridData, tol)
		if err != nil {
			return err
		}
		fixedAutoSum, starWeight := 0.0, 0.0
		for i, c := range e.GridData.Columns {
			if c.Unit == GridLengthStar {
				starWeight += c.Value
			} else {
				fixedAutoSum += sizes[i]
			}
		}
		remainder := innerDuration - fixedAutoSum
		for i, c := range e.GridData.Columns {
			if c.Unit == GridLengthStar && starWeight > 0 && remainder > 0 {
				sizes[i] = remainder * c.Value / starWeight
			}
		}
		n := len(e.GridData.Columns)
		starts := make([]float64, n+1)
		for i := 0; i < n; i++ {
			starts[i+1] = starts[i] + sizes[i]
		}
		for _, entry := range e.GridData.Children {
			end := entry.Column + entry.Span
			if end > n {
				end = n
			}
			if err := plot(entry.Child, innerStart+starts[entry.Column], starts[end]-starts[entry.Column], depth+1, tol, allowOversize, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// plotStack mirrors arrangeStack's placement decisions but emits
// PlotItems instead of instructions.
func plotStack(s *StackData, innerStart, innerDuration float64, depth int, tol Tolerances, allowOversize bool, out *[]PlotItem) error {
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
	for _, child := range s.Children {
		touched := touchedChannels(child)
		var lanes []string
		if len(touched) > 0 {
			for k := range touched {
				lanes = append(lanes, k)
			}
		} else if len(cursor) == 0 {
			lanes = []string{allChannelsLane}
		} else {
			lanes = knownLanes(cursor)
		}
		boundary := get(lanes[0])
		for _, ln := range lanes[1:] {
			v := get(ln)
			if (s.Direction == Forwards && v > boundary) || (s.Direction == Backwards && v < boundary) {
				boundary = v
			}
		}
		d, err := Measure(child, tol)
		if err != nil {
			return err
		}
		var childStart, advance float64
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
		if err := plot(child, innerStart+childStart, d, depth+1, tol, allowOversize, out); err != nil {
			return err
		}
	}
	return nil
}

func label(e *Element) string {
	switch e.Kind {
	case KindPlay:
		return "Play(" + e.PlayData.Channel + ")"
	case KindShiftPhase:
		return "ShiftPhase(" + e.ShiftPhaseData.Channel + ")"
	case KindSetPhase:
		return "SetPhase(" + e.SetPhaseData.Channel + ")"
	case KindShiftFreq:
		return "ShiftFreq(" + e.ShiftFreqData.Channel + ")"
	case KindSetFreq:
		return "SetFreq(" + e.SetFreqData.Channel + ")"
	case KindSwapPhase:
		return "SwapPhase(" + e.SwapPhaseData.ChannelA + "," + e.SwapPhaseData.ChannelB + ")"
	case KindBarrier:
		return "Barrier"
	case KindRepeat:
		return "Repeat"
	case KindStack:
		return "Stack"
	case KindAbsolute:
		return "Absolute"
	case KindGrid:
		return "Grid"
	default:
		return "?"
	}
}
