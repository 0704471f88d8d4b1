package blueprint

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/grid"
)

// Sentinel errors for blueprint construction and population.
var (
	// ErrBadDimensions indicates non-positive or over-ceiling dimensions.
	ErrBadDimensions = errors.New("blueprint: invalid table dimensions")
	// ErrPlanMismatch indicates a plan sized differently than the grid.
	ErrPlanMismatch = errors.New("blueprint: plan does not match blueprint dimensions")
	// ErrNotPopulated indicates a render of an unpopulated blueprint.
	ErrNotPopulated = errors.New("blueprint: table has not been populated")
)

// Diagnostic reports one isolated cell-computation failure: which
// variable's cell failed, what it depended on, and the underlying error.
type Diagnostic struct {
	Variable string
	Deps     []string
	Err      error
}

// Blueprint is a deferred, sparsely-populated table: dimensions fixed
// at creation, cells written during population, values resolved on
// demand with per-table caching. A Blueprint's cache is never shared
// with another table.
type Blueprint struct {
	id    uuid.UUID
	title string

	grid     *grid.SparseGrid
	rowSpecs []dimension.RowSpec // 0-based backing for 1-based rows
	colSpecs []dimension.ColSpec
	colLabel []string // decorated with subject counts
	notes    []dimension.Footnote

	view      dataset.View
	populated bool
	parallel  bool
	maxCells  int

	logger *zap.Logger

	mu       sync.Mutex
	cache    map[uint64]string
	inflight map[uint64]chan struct{} // keys being computed right now
	hits     uint64
	misses   uint64
	diags    []Diagnostic
}

// Option customizes a Blueprint at construction. Option constructors
// validate their input and panic on programmer error; New itself never
// panics.
type Option func(*Blueprint)

// WithLogger routes cell-failure diagnostics to the given logger.
// Panics on nil; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("blueprint: WithLogger(nil)")
	}
	return func(b *Blueprint) { b.logger = l }
}

// WithMaxCells raises or lowers the size ceiling New enforces; the
// default is dimension.DefaultMaxCells. Panics on a non-positive limit.
func WithMaxCells(n int) Option {
	if n <= 0 {
		panic("blueprint: WithMaxCells requires a positive limit")
	}
	return func(b *Blueprint) { b.maxCells = n }
}
