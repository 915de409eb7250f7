package schedule

// Grid constructs a column-based layout container.
func Grid(columns []GridLength, children ...GridEntry) *Element {
	return &Element{
		Common: DefaultCommon(),
		Kind:   KindGrid,
		GridData: &GridData{
			Columns:  columns,
			Children: children,
		},
	}
}

// resolvedColumnSizes computes the Absolute and Auto column sizes shared
// by both measure (to find the grid's own desired size) and arrange (as
// a starting point before distributing leftover space to Star columns).
// Star columns are left at 0 here; the grid's own desired size ignores
// them, and arrange fills them in separately from leftover space.
func resolvedColumnSizes(g *GridData, tol Tolerances) ([]float64, error) {
	n := len(g.Columns)
	sizes := make([]float64, n)
	for i, c := range g.Columns {
		if c.Unit == GridLengthAbsolute {
			sizes[i] = c.Value
		}
	}
	for _, entry := range g.Children {
		if entry.Span != 1 {
			continue
		}
		if g.Columns[entry.Column].Unit != GridLengthAuto {
			continue
		}
		d, err := Measure(entry.Child, tol)
		if err != nil {
			return nil, err
		}
		if d > sizes[entry.Column] {
			sizes[entry.Column] = d
		}
	}
	for _, entry := range g.Children {
		if entry.Span <= 1 {
			continue
		}
		d, err := Measure(entry.Child, tol)
		if err != nil {
			return nil, err
		}
		fixedSum := 0.0
		var autoIdx []int
		for c := entry.Column; c < entry.Column+entry.Span && c < n; c++ {
			switch g.Columns[c].Unit {
			case GridLengthAbsolute:
				fixedSum += sizes[c]
			case GridLengthAuto:
				autoIdx = append(autoIdx, c)
			}
		}
		remainder := d - fixedSum
		if remainder <= 0 || len(autoIdx) == 0 {
			continue
		}
		share := remainder / float64(len(autoIdx))
		for _, idx := range autoIdx {
			if share > sizes[idx] {
				sizes[idx] = share
			}
		}
	}
	return sizes, nil
}

// allColumnsStar reports whether every column of g is a Star column,
// the condition that makes an unconstrained measure ill-defined.
func allColumnsStar(g *GridData) bool {
	for _, c := range g.Columns {
		if c.Unit != GridLengthStar {
			return false
		}
	}
	return len(g.Columns) > 0
}
