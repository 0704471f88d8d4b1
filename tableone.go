package tableone

import (
	"github.com/katalvlaran/tableone/blueprint"
	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/render"
	"github.com/katalvlaran/tableone/stats"
	"github.com/katalvlaran/tableone/theme"
)

// Build runs the full pipeline in one call: analyze the requested
// variables against the view, allocate a blueprint of the planned size,
// and populate it through the registry. A nil registry gets the
// built-in tests and summaries.
//
// All validation errors surface here, before any cell is written:
// dimension.ErrMissingVariable, dimension.ErrGroupSpec,
// dimension.ErrTableTooLarge, stats.ErrUnknownTest,
// stats.ErrUnknownSummary.
func Build(
	view dataset.View,
	variables []string,
	groups dimension.GroupSpec,
	reg *stats.Registry,
	opts dimension.Options,
	bpOpts ...blueprint.Option,
) (*blueprint.Blueprint, error) {
	if reg == nil {
		reg = stats.NewRegistry()
	}
	plan, err := dimension.Analyze(variables, groups, view, opts)
	if err != nil {
		return nil, err
	}
	// Blueprint enforces the same ceiling Analyze just applied; explicit
	// bpOpts still override.
	if opts.MaxCells > 0 {
		bpOpts = append([]blueprint.Option{blueprint.WithMaxCells(opts.MaxCells)}, bpOpts...)
	}
	bp, err := blueprint.New(plan.RowCount, plan.ColCount, bpOpts...)
	if err != nil {
		return nil, err
	}
	if err := bp.Populate(plan, view, reg, opts); err != nil {
		return nil, err
	}
	return bp, nil
}

// Render is the end-to-end convenience: Build, then render in the given
// format with the given theme.
func Render(
	view dataset.View,
	variables []string,
	groups dimension.GroupSpec,
	opts dimension.Options,
	f render.Format,
	th theme.Theme,
) (string, error) {
	bp, err := Build(view, variables, groups, nil, opts)
	if err != nil {
		return "", err
	}
	return bp.Render(f, th)
}
