// Package blueprint is the orchestrator of a table: it owns the sparse
// grid and its metadata, populates cells by walking a dimension.Plan,
// and resolves deferred computations on demand through a per-table
// cache.
//
// Lifecycle:
//
//	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
//	err = bp.Populate(plan, view, registry, opts)
//	out, err := bp.Render(render.Text, theme.Default())
//
// Population writes exactly one cell per structural position:
// Computation cells for statistics and p-values, Separator cells for
// stratum breaks; row and column labels are plan metadata and occupy no
// grid addresses. Nothing is computed until a cell
// is first resolved; identical recipes share one cache entry, so
// rendering the same table to several formats never recomputes a
// statistic.
//
// A failed cell computation never aborts a render: the cell displays a
// visible error marker and the failure is reported through the
// blueprint's diagnostics and its logger.
package blueprint
