package stats

import (
	"errors"
	"math"
	"strconv"

	"github.com/katalvlaran/tableone/dimension"
)

// Sentinel errors for the dispatcher and registry.
var (
	// ErrUnknownTest indicates an unrecognized test name for the variable type.
	ErrUnknownTest = errors.New("stats: unknown test")
	// ErrUnknownSummary indicates an unrecognized numeric summary name.
	ErrUnknownSummary = errors.New("stats: unknown summary")
	// ErrBadRegistration indicates a nil function or empty name at registration.
	ErrBadRegistration = errors.New("stats: registration requires a name and a non-nil function")
	// ErrDuplicateName indicates the name is already registered.
	ErrDuplicateName = errors.New("stats: name already registered")
	// errDegenerate marks inputs a test cannot produce a p-value for; it
	// is mapped to NA and never escapes the package.
	errDegenerate = errors.New("stats: degenerate input")
)

// PValue is a test result: a probability, or NA when the test was not
// applicable (fewer than two non-empty groups, degenerate data, or an
// execution failure).
type PValue struct {
	Value float64
	Valid bool
}

// NA is the not-applicable result.
func NA() PValue { return PValue{} }

// round4 stores p-values at 4-decimal resolution, per the table contract.
func round4(p float64) PValue {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return NA()
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return PValue{Value: math.Round(p*1e4) / 1e4, Valid: true}
}

// Display renders the p-value for a table cell: "NA" when invalid,
// "<0.0001" below storage resolution, else fixed 4 decimals.
func (p PValue) Display() string {
	if !p.Valid {
		return "NA"
	}
	if p.Value == 0 {
		return "<0.0001"
	}
	return strconv.FormatFloat(p.Value, 'f', 4, 64)
}

// ContinuousTestFunc computes a raw p-value from per-group samples.
// Errors mean "no p-value here", not failure of the table.
type ContinuousTestFunc func(groups [][]float64) (float64, error)

// CategoricalTestFunc computes a raw p-value from a contingency table
// of observed counts (rows = variable levels, cols = groups).
type CategoricalTestFunc func(table [][]int) (float64, error)

// TestSpec is the dispatched, ready-to-invoke form of a named test.
// Built once per table, invoked possibly many times.
type TestSpec struct {
	Name      string
	AppliesTo dimension.VarType

	continuous  ContinuousTestFunc
	categorical CategoricalTestFunc
}

// Continuous runs the test on per-group samples. Panics and errors map
// to NA; valid results are rounded to 4 decimals.
func (ts TestSpec) Continuous(groups [][]float64) (p PValue) {
	defer func() {
		if recover() != nil {
			p = NA()
		}
	}()
	if ts.continuous == nil {
		return NA()
	}
	raw, err := ts.continuous(groups)
	if err != nil {
		return NA()
	}
	return round4(raw)
}

// Categorical runs the test on a contingency table, with the same
// failure policy as Continuous.
func (ts TestSpec) Categorical(table [][]int) (p PValue) {
	defer func() {
		if recover() != nil {
			p = NA()
		}
	}()
	if ts.categorical == nil {
		return NA()
	}
	raw, err := ts.categorical(table)
	if err != nil {
		return NA()
	}
	return round4(raw)
}
