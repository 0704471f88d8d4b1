package blueprint

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/grid"
	"github.com/katalvlaran/tableone/stats"
)

// Populate walks the plan and writes exactly one cell per structural
// position: Literal cells never appear in the grid here because row and
// column labels live in the plan's specs; the grid holds Computation
// cells for every statistic, count and p-value, and Separator cells for
// stratum breaks.
//
// Validation is fail-fast: unknown summary or test names abort before a
// single cell is written. Population is idempotent — repopulating with
// identical inputs resets the grid and cache and produces identical
// addresses and, on evaluation, identical strings.
func (b *Blueprint) Populate(plan *dimension.Plan, view dataset.View, reg *stats.Registry, opts dimension.Options) error {
	if plan.RowCount != b.grid.Rows() || plan.ColCount != b.grid.Cols() {
		return fmt.Errorf("%w: plan %d×%d, blueprint %d×%d",
			ErrPlanMismatch, plan.RowCount, plan.ColCount, b.grid.Rows(), b.grid.Cols())
	}

	// Stage 1: resolve every named capability up front.
	summaryName := opts.NumericSummary
	if summaryName == "" {
		summaryName = "mean_sd"
	}
	summarize, err := reg.Summary(summaryName)
	if err != nil {
		return err
	}

	hasPValue := false
	for _, cs := range plan.Cols {
		if cs.Kind == dimension.ColPValue {
			hasPValue = true
		}
	}
	var contSpec, catSpec stats.TestSpec
	if hasPValue {
		needCont, needCat := false, false
		for _, v := range plan.Variables {
			if plan.VarTypes[v] == dimension.Continuous {
				needCont = true
			} else {
				needCat = true
			}
		}
		if needCont {
			if contSpec, err = reg.Build(opts.ContinuousTest, dimension.Continuous); err != nil {
				return err
			}
		}
		if needCat {
			if catSpec, err = reg.Build(opts.CategoricalTest, dimension.Categorical); err != nil {
				return err
			}
		}
	}

	// Stage 2: reset mutable state so repopulation starts clean.
	g, err := grid.New(plan.RowCount, plan.ColCount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadDimensions, err)
	}
	b.grid = g
	b.mu.Lock()
	b.cache = make(map[uint64]string)
	b.inflight = make(map[uint64]chan struct{})
	b.hits, b.misses = 0, 0
	b.diags = nil
	b.mu.Unlock()

	b.title = opts.Title
	b.rowSpecs = plan.Rows
	b.colSpecs = plan.Cols
	b.notes = plan.Footnotes
	b.view = view
	b.parallel = opts.Parallel

	// Stage 3: column labels, decorated with subject counts.
	b.colLabel = make([]string, len(plan.Cols))
	for j, cs := range plan.Cols {
		switch cs.Kind {
		case dimension.ColGroup:
			n := view.Len()
			if plan.GroupVar != "" {
				n = view.Where(plan.GroupVar, cs.Level).Len()
			}
			b.colLabel[j] = fmt.Sprintf("%s (N=%d)", cs.Label, n)
		case dimension.ColTotal:
			b.colLabel[j] = fmt.Sprintf("%s (N=%d)", cs.Label, view.Len())
		case dimension.ColPValue:
			b.colLabel[j] = cs.Label
		}
	}

	// Categorical level sets are captured once, from the full view, so
	// every stratum's contingency tables stay congruent.
	catLevels := make(map[string][]string)
	for _, v := range plan.Variables {
		if plan.VarTypes[v] == dimension.Categorical {
			catLevels[v] = view.Levels(v)
		}
	}

	// Stage 4: walk the plan, one cell per structural position.
	for i, rs := range plan.Rows {
		r := i + 1
		switch rs.Kind {
		case dimension.RowStratumHeader:
			if err := b.grid.Set(r, 1, grid.Separator()); err != nil {
				return err
			}

		case dimension.RowVariableHeader:
			if err := b.populateHeaderRow(r, rs, plan, summaryName, summarize, contSpec, catSpec, catLevels); err != nil {
				return err
			}

		case dimension.RowCategory:
			if err := b.populateCountRow(r, rs, plan, countCell); err != nil {
				return err
			}

		case dimension.RowMissing:
			if err := b.populateCountRow(r, rs, plan, missingCell); err != nil {
				return err
			}
		}
	}

	b.populated = true
	return nil
}

// populateHeaderRow writes the variable-header cells: continuous
// summaries per data column, and the p-value cell for either type.
func (b *Blueprint) populateHeaderRow(
	r int,
	rs dimension.RowSpec,
	plan *dimension.Plan,
	summaryName string,
	summarize stats.SummaryFunc,
	contSpec, catSpec stats.TestSpec,
	catLevels map[string][]string,
) error {
	variable := rs.Variable
	vt := plan.VarTypes[variable]

	for j, cs := range plan.Cols {
		c := j + 1
		switch cs.Kind {
		case dimension.ColGroup, dimension.ColTotal:
			if vt != dimension.Continuous {
				continue // categorical headers carry no data cells
			}
			sel := grid.Selector{
				Variable:   variable,
				StratumVar: plan.StratumVar,
				Stratum:    rs.Stratum,
			}
			if cs.Kind == dimension.ColGroup && plan.GroupVar != "" {
				sel.GroupVar, sel.Group = plan.GroupVar, cs.Level
			}
			cell := grid.Compute(sel, "summary:"+summaryName,
				func(sub dataset.View, prec int) (string, error) {
					return summarize(sub.Floats(variable), prec)
				}, variable)
			if err := b.grid.Set(r, c, cell); err != nil {
				return err
			}

		case dimension.ColPValue:
			cell := b.pvalueCell(rs, plan, contSpec, catSpec, catLevels)
			if err := b.grid.Set(r, c, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// pvalueCell builds the deferred hypothesis-test cell for a variable.
// The selector spans all groups (the test splits them itself) but is
// restricted to the row's stratum.
func (b *Blueprint) pvalueCell(
	rs dimension.RowSpec,
	plan *dimension.Plan,
	contSpec, catSpec stats.TestSpec,
	catLevels map[string][]string,
) grid.Cell {
	variable := rs.Variable
	groupVar := plan.GroupVar
	groupLevels := plan.GroupLevel
	sel := grid.Selector{
		Variable:   variable,
		StratumVar: plan.StratumVar,
		Stratum:    rs.Stratum,
	}

	if plan.VarTypes[variable] == dimension.Continuous {
		spec := contSpec
		return grid.Compute(sel, "p:"+spec.Name,
			func(sub dataset.View, _ int) (string, error) {
				groups := make([][]float64, len(groupLevels))
				for i, g := range groupLevels {
					groups[i] = sub.Where(groupVar, g).Floats(variable)
				}
				return spec.Continuous(groups).Display(), nil
			}, variable, groupVar)
	}

	spec := catSpec
	levels := catLevels[variable]
	return grid.Compute(sel, "p:"+spec.Name,
		func(sub dataset.View, _ int) (string, error) {
			table := stats.Contingency(sub, variable, groupVar, levels, groupLevels)
			return spec.Categorical(table).Display(), nil
		}, variable, groupVar)
}

// cellBuilder constructs the data cell of a category or missing row for
// one column's selector.
type cellBuilder func(variable string, rs dimension.RowSpec, sel grid.Selector) grid.Cell

// populateCountRow writes one cell per data column of a category or
// missing-count row; the p-value column stays empty (sparse).
func (b *Blueprint) populateCountRow(r int, rs dimension.RowSpec, plan *dimension.Plan, build cellBuilder) error {
	for j, cs := range plan.Cols {
		c := j + 1
		if cs.Kind == dimension.ColPValue {
			continue
		}
		sel := grid.Selector{
			Variable:   rs.Variable,
			StratumVar: plan.StratumVar,
			Stratum:    rs.Stratum,
		}
		if cs.Kind == dimension.ColGroup && plan.GroupVar != "" {
			sel.GroupVar, sel.Group = plan.GroupVar, cs.Level
		}
		if err := b.grid.Set(r, c, build(rs.Variable, rs, sel)); err != nil {
			return err
		}
	}
	return nil
}

// countCell renders "n (p%)" of one categorical level within the
// selected subset; the denominator excludes missing values.
func countCell(variable string, rs dimension.RowSpec, sel grid.Selector) grid.Cell {
	level := rs.Level
	return grid.Compute(sel, "count:"+level,
		func(sub dataset.View, prec int) (string, error) {
			total := sub.Len() - sub.MissingCount(variable)
			n := sub.Where(variable, level).Len()
			return stats.CountPercent(n, total, prec), nil
		}, variable)
}

// missingCell renders the missing-observation count of the subset.
func missingCell(variable string, _ dimension.RowSpec, sel grid.Selector) grid.Cell {
	return grid.Compute(sel, "missing",
		func(sub dataset.View, _ int) (string, error) {
			return strconv.Itoa(sub.MissingCount(variable)), nil
		}, variable)
}
