package schedule

import (
	"strconv"
	"strings"

	"github.com/cbegin/pulsegen/xerr"
)

// GridUnit is the kind of a Grid column.
type GridUnit int

const (
	GridLengthAbsolute GridUnit = iota
	GridLengthAuto
	GridLengthStar
)

// GridLength describes one column of a Grid: a fixed duration, a size
// driven by its children's content, or a weighted share of the leftover
// space.
type GridLength struct {
	Unit  GridUnit
	Value float64 // seconds for Absolute, weight for Star, unused for Auto
}

// AbsoluteColumn is a column of a fixed duration.
func AbsoluteColumn(seconds float64) GridLength {
	return GridLength{Unit: GridLengthAbsolute, Value: seconds}
}

// AutoColumn sizes to its widest single-span child.
func AutoColumn() GridLength {
	return GridLength{Unit: GridLengthAuto}
}

// StarColumn claims a weight-proportional share of leftover space.
func StarColumn(weight float64) GridLength {
	return GridLength{Unit: GridLengthStar, Value: weight}
}

// Cell builds one Grid child entry spanning span columns starting at
// column.
func Cell(column, span int, child *Element) GridEntry {
	return GridEntry{Column: column, Span: span, Child: child}
}

// ParseGridLength parses the textual grid-length grammar used by
// configuration documents: a bare number (seconds), "auto", or a
// "<weight>*" star column, e.g. "10e-9", "auto", "2*".
func ParseGridLength(s string) (GridLength, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GridLength{}, xerr.New(xerr.InvalidInput, "empty grid length")
	}
	if strings.EqualFold(s, "auto") {
		return AutoColumn(), nil
	}
	if strings.HasSuffix(s, "*") {
		weightStr := strings.TrimSuffix(s, "*")
		if weightStr == "" {
			return StarColumn(1), nil
		}
		w, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return GridLength{}, xerr.Wrap(xerr.InvalidInput, err, "invalid star weight %q", s)
		}
		return StarColumn(w), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return GridLength{}, xerr.Wrap(xerr.InvalidInput, err, "invalid grid length %q", s)
	}
	return AbsoluteColumn(v), nil
}
