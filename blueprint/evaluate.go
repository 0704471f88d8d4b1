package blueprint

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/tableone/grid"
)

// CellText resolves the cell at (r, c) to its display string. The
// second return reports whether the address holds a cell at all —
// unpopulated addresses render as blank without touching the cache.
func (b *Blueprint) CellText(r, c, precision int) (string, bool) {
	cell, ok := b.grid.Get(r, c)
	if !ok {
		return "", false
	}
	return b.resolve(cell, precision), true
}

// resolve dispatches on the cell's kind. Literals return their text,
// separators return the canonical fixed marker (renderers style the
// break), and computations go through the per-table cache.
//
// Concurrent resolution of one key is single-flight: the first caller
// computes while later callers wait on the in-flight channel and then
// read the cached value, so a statistic is never computed twice.
func (b *Blueprint) resolve(cell grid.Cell, precision int) string {
	switch cell.Kind {
	case grid.KindLiteral:
		return cell.Text
	case grid.KindSeparator:
		return grid.SeparatorText
	}

	comp := cell.Comp
	key := comp.CacheKey(precision)

	b.mu.Lock()
	for {
		if v, ok := b.cache[key]; ok {
			b.hits++
			b.mu.Unlock()
			return v
		}
		ch, busy := b.inflight[key]
		if !busy {
			break
		}
		b.mu.Unlock()
		<-ch // the winner stores the result before closing
		b.mu.Lock()
	}
	done := make(chan struct{})
	b.inflight[key] = done
	b.misses++
	b.mu.Unlock()

	out, err := b.compute(comp, precision)
	if err != nil {
		out = grid.ErrorText
		b.mu.Lock()
		b.diags = append(b.diags, Diagnostic{
			Variable: comp.Selector.Variable,
			Deps:     comp.Deps,
			Err:      err,
		})
		b.mu.Unlock()
		b.logger.Warn("cell computation failed",
			zap.String("table", b.id.String()),
			zap.String("variable", comp.Selector.Variable),
			zap.String("stat", comp.Stat),
			zap.Strings("deps", comp.Deps),
			zap.Error(err))
	}

	b.mu.Lock()
	b.cache[key] = out
	delete(b.inflight, key)
	b.mu.Unlock()
	close(done)
	return out
}

// compute runs the deferred closure over its filtered view, converting
// a panic into an error so one bad cell never takes down the table.
func (b *Blueprint) compute(comp *grid.Computation, precision int) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return comp.Fn(comp.Selector.Apply(b.view), precision)
}

// EvaluateAll resolves every populated computation cell at the given
// precision, warming the cache. When the blueprint was populated with
// Parallel set, cells are spread over a GOMAXPROCS-bounded worker pool;
// results are identical either way because cells are independent.
func (b *Blueprint) EvaluateAll(precision int) {
	var cells []grid.Cell
	_ = b.grid.Each(func(_, _ int, cell grid.Cell) error {
		if cell.Kind == grid.KindComputation {
			cells = append(cells, cell)
		}
		return nil
	})

	if !b.parallel {
		for _, cell := range cells {
			b.resolve(cell, precision)
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(cells) {
		workers = len(cells)
	}
	jobs := make(chan grid.Cell)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range jobs {
				b.resolve(cell, precision)
			}
		}()
	}
	for _, cell := range cells {
		jobs <- cell
	}
	close(jobs)
	wg.Wait()
}
