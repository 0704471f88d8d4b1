package dataset

import "sort"

// View is a zero-copy subset of a Dataset: the backing columns are
// shared, only a row-index slice is owned. Views compose — filtering a
// filtered View narrows the index slice further.
type View struct {
	ds  *Dataset
	idx []int
}

// Row gives predicate access to a single row of a View.
type Row struct {
	ds *Dataset
	i  int // physical row in the backing dataset
}

// Value returns the observation in the named column, and whether the
// column exists.
func (r Row) Value(col string) (Value, bool) {
	ci, ok := r.ds.index[col]
	if !ok {
		return Value{}, false
	}
	return r.ds.cols[ci].Values[r.i], true
}

// Str returns the raw string in the named column ("" when absent).
func (r Row) Str(col string) string {
	v, _ := r.Value(col)
	return v.Str
}

// Len returns the number of rows visible through the view.
func (v View) Len() int { return len(v.idx) }

// Has reports whether the named column exists in the backing dataset.
func (v View) Has(name string) bool { return v.ds != nil && v.ds.Has(name) }

// Filter returns a View containing only rows for which pred is true.
// The predicate must not retain the Row beyond the call.
func (v View) Filter(pred func(Row) bool) View {
	keep := make([]int, 0, len(v.idx))
	for _, i := range v.idx {
		if pred(Row{ds: v.ds, i: i}) {
			keep = append(keep, i)
		}
	}
	return View{ds: v.ds, idx: keep}
}

// Where returns the rows whose named column equals value (non-missing).
func (v View) Where(col, value string) View {
	return v.Filter(func(r Row) bool {
		val, ok := r.Value(col)
		return ok && !val.Missing && val.Str == value
	})
}

// Values returns the observations of the named column in view order.
func (v View) Values(col string) ([]Value, error) {
	ci, ok := v.ds.index[col]
	if !ok {
		return nil, ErrUnknownColumn
	}
	out := make([]Value, len(v.idx))
	for k, i := range v.idx {
		out[k] = v.ds.cols[ci].Values[i]
	}
	return out, nil
}

// Floats returns the non-missing numeric values of the named column.
// Non-numeric columns and unknown columns yield an empty slice.
func (v View) Floats(col string) []float64 {
	ci, ok := v.ds.index[col]
	if !ok || !v.ds.cols[ci].Numeric {
		return nil
	}
	out := make([]float64, 0, len(v.idx))
	for _, i := range v.idx {
		if val := v.ds.cols[ci].Values[i]; !val.Missing {
			out = append(out, val.Num)
		}
	}
	return out
}

// Levels returns the distinct non-missing values of the named column,
// sorted lexicographically for deterministic table layouts.
func (v View) Levels(col string) []string {
	ci, ok := v.ds.index[col]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var levels []string
	for _, i := range v.idx {
		val := v.ds.cols[ci].Values[i]
		if val.Missing {
			continue
		}
		if _, dup := seen[val.Str]; !dup {
			seen[val.Str] = struct{}{}
			levels = append(levels, val.Str)
		}
	}
	sort.Strings(levels)
	return levels
}

// MissingCount returns how many rows of the view are missing in the
// named column (0 when the column is unknown).
func (v View) MissingCount(col string) int {
	ci, ok := v.ds.index[col]
	if !ok {
		return 0
	}
	n := 0
	for _, i := range v.idx {
		if v.ds.cols[ci].Values[i].Missing {
			n++
		}
	}
	return n
}
