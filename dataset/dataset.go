package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset operations.
var (
	// ErrUnknownColumn indicates a named column is absent from the dataset.
	ErrUnknownColumn = errors.New("dataset: unknown column")
	// ErrRaggedColumns indicates columns of differing lengths.
	ErrRaggedColumns = errors.New("dataset: all columns must have the same length")
	// ErrDuplicateColumn indicates the same column name was supplied twice.
	ErrDuplicateColumn = errors.New("dataset: duplicate column name")
)

// Value is a single observation: the raw display string, its numeric
// reading when the owning column is numeric, and an explicit missing flag.
type Value struct {
	Str     string  // raw token as read from the source
	Num     float64 // parsed numeric value; meaningful only if Numeric
	Numeric bool    // set when the owning column parsed as numeric
	Missing bool    // explicit missingness (empty / NA tokens)
}

// Column is a named, typed sequence of observations.
type Column struct {
	Name    string
	Numeric bool // every non-missing value parsed as a float
	Values  []Value
}

// Dataset is an immutable column-oriented table. Construct it once via
// FromCSV or FromColumns; all downstream access goes through Views.
type Dataset struct {
	cols  []Column
	index map[string]int // name -> position in cols
	rows  int
}

// FromColumns builds a Dataset from pre-assembled columns. All columns
// must share one length and carry distinct names.
func FromColumns(cols []Column) (*Dataset, error) {
	d := &Dataset{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := d.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if i == 0 {
			d.rows = len(c.Values)
		} else if len(c.Values) != d.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrRaggedColumns, c.Name, len(c.Values), d.rows)
		}
		d.index[c.Name] = i
		d.cols = append(d.cols, c)
	}
	return d, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Names returns column names in declaration order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or ErrUnknownColumn.
func (d *Dataset) Column(name string) (Column, error) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return d.cols[i], nil
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// All returns a View spanning every row of the dataset.
func (d *Dataset) All() View {
	idx := make([]int, d.rows)
	for i := range idx {
		idx[i] = i
	}
	return View{ds: d, idx: idx}
}
