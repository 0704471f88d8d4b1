package blueprint

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/grid"
	"github.com/katalvlaran/tableone/theme"

	"github.com/katalvlaran/tableone/render"
)

// New creates an empty Blueprint of the given size. Dimensions must be
// positive and within the size ceiling (dimension.DefaultMaxCells
// unless raised via WithMaxCells); a rejected request populates
// nothing.
func New(rows, cols int, opts ...Option) (*Blueprint, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrBadDimensions, rows, cols)
	}
	b := &Blueprint{
		id:       uuid.New(),
		logger:   zap.NewNop(),
		cache:    make(map[uint64]string),
		inflight: make(map[uint64]chan struct{}),
		maxCells: dimension.DefaultMaxCells,
	}
	for _, opt := range opts {
		opt(b)
	}
	if rows*cols > b.maxCells {
		return nil, fmt.Errorf("%w: %d×%d exceeds ceiling %d",
			ErrBadDimensions, rows, cols, b.maxCells)
	}
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDimensions, err)
	}
	b.grid = g
	return b, nil
}

// ID returns the blueprint's identity, stamped into diagnostics.
func (b *Blueprint) ID() uuid.UUID { return b.id }

// Title returns the table title.
func (b *Blueprint) Title() string { return b.title }

// RowCount returns the fixed row count.
func (b *Blueprint) RowCount() int { return b.grid.Rows() }

// ColCount returns the fixed column count.
func (b *Blueprint) ColCount() int { return b.grid.Cols() }

// PopulatedCells returns how many grid addresses hold a cell.
func (b *Blueprint) PopulatedCells() int { return b.grid.Len() }

// RowLabel returns the display label of row r (1-based).
func (b *Blueprint) RowLabel(r int) string {
	if r < 1 || r > len(b.rowSpecs) {
		return ""
	}
	return b.rowSpecs[r-1].Label
}

// RowMarker returns the footnote marker of row r ("" if none).
func (b *Blueprint) RowMarker(r int) string {
	if r < 1 || r > len(b.rowSpecs) {
		return ""
	}
	return b.rowSpecs[r-1].Marker
}

// RowKind returns the structural kind of row r.
func (b *Blueprint) RowKind(r int) dimension.RowKind {
	if r < 1 || r > len(b.rowSpecs) {
		return dimension.RowVariableHeader
	}
	return b.rowSpecs[r-1].Kind
}

// ColLabel returns the decorated label of column c (1-based).
func (b *Blueprint) ColLabel(c int) string {
	if c < 1 || c > len(b.colLabel) {
		return ""
	}
	return b.colLabel[c-1]
}

// ColMarker returns the footnote marker of column c ("" if none).
func (b *Blueprint) ColMarker(c int) string {
	if c < 1 || c > len(b.colSpecs) {
		return ""
	}
	return b.colSpecs[c-1].Marker
}

// Footnotes returns the table's footnote block in display order.
func (b *Blueprint) Footnotes() []dimension.Footnote { return b.notes }

// Diagnostics returns the cell failures recorded so far.
func (b *Blueprint) Diagnostics() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Diagnostic(nil), b.diags...)
}

// CacheStats returns evaluation-cache hit and miss counters. The
// counters exist so cache behavior is testable, not for tuning.
func (b *Blueprint) CacheStats() (hits, misses uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits, b.misses
}

// Render resolves cells (cache-aware) and produces output in the given
// format. Repeated calls across formats reuse the evaluation cache.
func (b *Blueprint) Render(f render.Format, th theme.Theme) (string, error) {
	if !b.populated {
		return "", ErrNotPopulated
	}
	if b.parallel {
		b.EvaluateAll(th.Precision)
	}
	return render.Render(b, f, th)
}
