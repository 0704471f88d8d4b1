package grid

import (
	"fmt"
	"sort"
)

// SparseGrid is the addressable 2D backing store of a blueprint. Only
// populated addresses consume memory; lookups and writes are O(1)
// amortized through the composite-key map.
type SparseGrid struct {
	rows, cols int
	cells      map[Key]Cell
}

// New allocates an empty grid of the given size (1-based addressing).
func New(rows, cols int) (*SparseGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrBadSize, rows, cols)
	}
	return &SparseGrid{rows: rows, cols: cols, cells: make(map[Key]Cell)}, nil
}

// Rows returns the declared row count.
func (g *SparseGrid) Rows() int { return g.rows }

// Cols returns the declared column count.
func (g *SparseGrid) Cols() int { return g.cols }

// Len returns the number of populated addresses.
func (g *SparseGrid) Len() int { return len(g.cells) }

func (g *SparseGrid) check(r, c int) error {
	if r < 1 || r > g.rows || c < 1 || c > g.cols {
		return fmt.Errorf("%w: (%d,%d) in %d×%d", ErrOutOfRange, r, c, g.rows, g.cols)
	}
	return nil
}

// Get returns the cell at (r, c) and whether the address is populated.
func (g *SparseGrid) Get(r, c int) (Cell, bool) {
	cell, ok := g.cells[Key{r, c}]
	return cell, ok
}

// Set writes a cell at (r, c), replacing any existing entry.
func (g *SparseGrid) Set(r, c int, cell Cell) error {
	if err := g.check(r, c); err != nil {
		return err
	}
	g.cells[Key{r, c}] = cell
	return nil
}

// Remove deletes the entry at (r, c); removing an empty address is a
// no-op. Out-of-range addresses still error.
func (g *SparseGrid) Remove(r, c int) error {
	if err := g.check(r, c); err != nil {
		return err
	}
	delete(g.cells, Key{r, c})
	return nil
}

// Each visits every populated address in row-major order. Returning a
// non-nil error from fn stops the walk and propagates the error. Empty
// addresses are never visited.
func (g *SparseGrid) Each(fn func(r, c int, cell Cell) error) error {
	keys := make([]Key, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	for _, k := range keys {
		if err := fn(k.Row, k.Col, g.cells[k]); err != nil {
			return err
		}
	}
	return nil
}
