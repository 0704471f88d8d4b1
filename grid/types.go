package grid

import (
	"errors"

	"github.com/katalvlaran/tableone/dataset"
)

// Sentinel errors for grid operations.
var (
	// ErrOutOfRange indicates a (row, col) address outside the grid.
	ErrOutOfRange = errors.New("grid: address out of range")
	// ErrBadSize indicates non-positive grid dimensions.
	ErrBadSize = errors.New("grid: dimensions must be positive")
)

// ErrorText is the canonical in-table marker for a cell whose
// computation failed. Renderers may substitute a theme-specific marker
// at emission.
const ErrorText = "[error]"

// SeparatorText is the canonical display text of a structural separator
// cell. The text renderer styles the break itself through the theme's
// SeparatorMarker.
const SeparatorText = "---"

// CellKind tags the variant of a Cell. Evaluation dispatches purely on
// this tag; there is no string-based branching anywhere downstream.
type CellKind int

const (
	// KindLiteral is a fixed display string.
	KindLiteral CellKind = iota
	// KindComputation is a deferred statistic resolved at render time.
	KindComputation
	// KindSeparator is a structural break with no value.
	KindSeparator
)

// ComputeFn is a computation recipe: a pure function of an
// already-selected data subset and a display precision, returning the
// cell's display string. It must be a first-class closure capturing
// whatever it needs at creation time.
type ComputeFn func(subset dataset.View, precision int) (string, error)

// Selector identifies the data subset a computation runs on: the values
// of Variable, optionally restricted to one group level and one stratum
// level.
type Selector struct {
	Variable   string
	GroupVar   string // "" = no group restriction
	Group      string
	StratumVar string // "" = no stratum restriction
	Stratum    string
}

// Apply filters the view down to the selector's subset. Variable
// existence is the caller's concern; Apply only restricts rows.
func (s Selector) Apply(v dataset.View) dataset.View {
	if s.StratumVar != "" {
		v = v.Where(s.StratumVar, s.Stratum)
	}
	if s.GroupVar != "" {
		v = v.Where(s.GroupVar, s.Group)
	}
	return v
}

// Computation is the deferred-cell payload: where to read (Selector),
// what to compute (Fn, named by Stat for cache identity), and which
// variables the result depends on (for diagnostics).
type Computation struct {
	Selector Selector
	Stat     string   // statistic identity, e.g. "summary:mean_sd", "p:chisq"
	Fn       ComputeFn
	Deps     []string // variables the computation reads
}

// Cell is one addressable table position. Exactly one variant is live,
// per Kind; Text is meaningful for KindLiteral, Comp for KindComputation.
type Cell struct {
	Kind CellKind
	Text string
	Comp *Computation
}

// Key is the composite map key of a grid address (1-based).
type Key struct {
	Row, Col int
}
