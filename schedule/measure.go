package schedule

import (
	"github.com/cbegin/pulsegen/xerr"
)

// Tolerances bundles the layout-wide numeric tolerances.
type Tolerances struct {
	// Time is epsilon_t: times within this of each other compare equal.
	Time float64
}

// DefaultTolerances matches the spec's defaults.
func DefaultTolerances() Tolerances {
	return Tolerances{Time: 1e-12}
}

// Measure computes e's desired outer duration (inner content size plus
// margins), given no external constraint. It is pure: the same element
// always measures to the same size, so shared subtrees may be measured
// repeatedly without caching.
func Measure(e *Element, tol Tolerances) (float64, error) {
	inner, err := measureInner(e, tol)
	if err != nil {
		return 0, err
	}
	inner = clampDuration(inner, e.Common)
	if inner < tol.Time {
		inner = 0
	}
	outer := inner + e.MarginLeft + e.MarginRight
	return outer, nil
}

func measureInner(e *Element, tol Tolerances) (float64, error) {
	switch e.Kind {
	case KindPlay:
		if e.PlayData.Flexible {
			return e.PlayData.Width, nil
		}
		return e.PlayData.Width + e.PlayData.Plateau, nil

	case KindShiftPhase, KindSetPhase, KindShiftFreq, KindSetFreq, KindSwapPhase:
		return 0, nil

	case KindBarrier:
		return 0, nil

	case KindRepeat:
		return measureRepeat(e.RepeatData, tol)

	case KindStack:
		return measureStack(e.StackData, tol)

	case KindAbsolute:
		return measureAbsolute(e.AbsoluteData, tol)

	case KindGrid:
		return measureGrid(e.GridData, e.Common, tol)

	default:
		return 0, xerr.New(xerr.Internal, "measure: unknown element kind %d", e.Kind)
	}
}

func measureRepeat(r *RepeatData, tol Tolerances) (float64, error) {
	if r.Count < 1 {
		return 0, nil
	}
	child, err := Measure(r.Child, tol)
	if err != nil {
		return 0, err
	}
	return float64(r.Count)*child + float64(r.Count-1)*r.Spacing, nil
}

const allChannelsLane = "\x00all"

func measureStack(s *StackData, tol Tolerances) (float64, error) {
	// Barrier needs no special case here: its touched-channel set is its
	// explicit channel list (or, if empty, every channel already known to
	// the stack, via laneKeys' fallback) and its own measured duration is
	// 0 unless it carries an explicit Duration override — so folding it
	// into the generic per-child accumulation below reproduces exactly
	// the "synchronize to the max among listed channels" rule.
	cursor := map[string]float64{}
	for _, child := range s.Children {
		touched := touchedChannels(child)
		lanes := laneKeys(touched, cursor)
		start := 0.0
		first := true
		for _, ln := range lanes {
			v := cursor[ln]
			if first || v > start {
				start = v
				first = false
			}
		}
		d, err := Measure(child, tol)
		if err != nil {
			return 0, err
		}
		for _, ln := range lanes {
			cursor[ln] = start + d
		}
	}
	max := 0.0
	for _, v := range cursor {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// laneKeys resolves the lane set a child occupies: its touched channels,
// or (if it touches none) every channel already known to the stack, or
// the virtual all-channels lane if none are known yet.
func laneKeys(touched map[string]bool, cursor map[string]float64) []string {
	if len(touched) > 0 {
		keys := make([]string, 0, len(touched))
		for k := range touched {
			keys = append(keys, k)
		}
		return keys
	}
	known := knownLanes(cursor)
	if len(known) == 0 {
		return []string{allChannelsLane}
	}
	return known
}

func knownLanes(cursor map[string]float64) []string {
	keys := make([]string, 0, len(cursor))
	for k := range cursor {
		keys = append(keys, k)
	}
	return keys
}

func measureAbsolute(a *AbsoluteData, tol Tolerances) (float64, error) {
	max := 0.0
	for _, entry := range a.Children {
		d, err := Measure(entry.Child, tol)
		if err != nil {
			return 0, err
		}
		v := entry.Time + d
		if v > max {
			max = v
		}
	}
	return max, nil
}

func measureGrid(g *GridData, common Common, tol Tolerances) (float64, error) {
	if common.Duration == nil && allColumnsStar(g) {
		return 0, xerr.New(xerr.UnresolvedGrid, "grid has only Star columns and no finite outer duration")
	}
	sizes, err := resolvedColumnSizes(g, tol)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range sizes {
		total += v
	}
	return total, nil
}
