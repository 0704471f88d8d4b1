package blueprint_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tableone/blueprint"
	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/render"
	"github.com/katalvlaran/tableone/stats"
	"github.com/katalvlaran/tableone/theme"
)

func numericColumn(name string, xs ...float64) dataset.Column {
	vals := make([]dataset.Value, len(xs))
	for i, x := range xs {
		vals[i] = dataset.Value{Str: strconv.FormatFloat(x, 'g', -1, 64), Num: x, Numeric: true}
	}
	return dataset.Column{Name: name, Numeric: true, Values: vals}
}

func textColumn(name string, ss ...string) dataset.Column {
	vals := make([]dataset.Value, len(ss))
	for i, s := range ss {
		vals[i] = dataset.Value{Str: s}
	}
	return dataset.Column{Name: name, Values: vals}
}

// trialData builds the 12-subject dataset the package tests share:
// continuous age and bmi (one missing bmi), categorical sex, two-arm
// treatment, two-site stratifier.
func trialData(t *testing.T) *dataset.Dataset {
	t.Helper()
	ages := numericColumn("age",
		23, 31, 38, 44, 52, 57, 61, 66, 71, 76, 81, 86)
	sex := textColumn("sex", "M", "F", "F", "M", "F", "M", "M", "F", "F", "M", "F", "M")
	trt := textColumn("treatment", "A", "B", "A", "B", "A", "B", "A", "B", "A", "B", "A", "B")
	site := textColumn("site", "X", "X", "X", "Y", "Y", "Y", "X", "X", "Y", "Y", "X", "Y")
	bmi := numericColumn("bmi", 22, 24, 26, 28, 21, 23, 25, 27, 29, 30, 31)
	bmi.Values = append(bmi.Values, dataset.Value{Str: "NA", Missing: true})

	ds, err := dataset.FromColumns([]dataset.Column{ages, sex, trt, site, bmi})
	require.NoError(t, err)
	return ds
}

// buildTable runs the analyze→new→populate pipeline for the tests.
func buildTable(t *testing.T, vars []string, gs dimension.GroupSpec, opts dimension.Options) (*blueprint.Blueprint, *dimension.Plan) {
	t.Helper()
	view := trialData(t).All()
	plan, err := dimension.Analyze(vars, gs, view, opts)
	require.NoError(t, err)
	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
	require.NoError(t, err)
	require.NoError(t, bp.Populate(plan, view, stats.NewRegistry(), opts))
	return bp, plan
}

func TestNew_RejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 3},
		{"zero cols", 4, 0},
		{"negative", -1, 3},
		{"over ceiling", dimension.DefaultMaxCells, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bp, err := blueprint.New(tc.rows, tc.cols)
			require.ErrorIs(t, err, blueprint.ErrBadDimensions)
			assert.Nil(t, bp, "a rejected blueprint must not exist")
		})
	}
}

func TestNew_StartsEmpty(t *testing.T) {
	bp, err := blueprint.New(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, bp.PopulatedCells())
	assert.Equal(t, 4, bp.RowCount())
	assert.Equal(t, 3, bp.ColCount())
	assert.NotEqual(t, bp.ID().String(), "")
}

func TestNew_ConfigurableCeiling(t *testing.T) {
	// Raising the ceiling admits tables the default would reject.
	bp, err := blueprint.New(dimension.DefaultMaxCells, 2,
		blueprint.WithMaxCells(2*dimension.DefaultMaxCells))
	require.NoError(t, err)
	assert.Equal(t, dimension.DefaultMaxCells, bp.RowCount())

	// Lowering it tightens the check.
	_, err = blueprint.New(3, 3, blueprint.WithMaxCells(4))
	assert.ErrorIs(t, err, blueprint.ErrBadDimensions)

	assert.Panics(t, func() { blueprint.WithMaxCells(0) })
}

func TestRender_ThemeMissingLabel(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.ShowMissing = true
	bp, _ := buildTable(t, []string{"bmi"}, dimension.Groups("treatment"), opts)

	th := theme.Default()
	th.MissingLabel = "Unknown"
	out, err := bp.Render(render.Text, th)
	require.NoError(t, err)
	assert.Contains(t, out, "Unknown", "missing rows take the theme's label")
	assert.NotContains(t, out, "Missing", "the planned label is replaced")
}

func TestRender_ThemeSeparatorMarker(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.StratifyBy = "site"
	bp, _ := buildTable(t, []string{"age"}, dimension.Groups("treatment"), opts)

	th := theme.Default()
	th.SeparatorMarker = "·"
	out, err := bp.Render(render.Text, th)
	require.NoError(t, err)
	assert.Contains(t, out, strings.Repeat("·", 5), "stratum breaks are ruled with the theme's marker")
}

func TestRender_RequiresPopulation(t *testing.T) {
	bp, err := blueprint.New(4, 3)
	require.NoError(t, err)
	_, err = bp.Render(render.Text, theme.Default())
	assert.ErrorIs(t, err, blueprint.ErrNotPopulated)
}

func TestPopulate_RejectsMismatchedPlan(t *testing.T) {
	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	plan, err := dimension.Analyze([]string{"age", "sex"}, dimension.Groups("treatment"), view, opts)
	require.NoError(t, err)

	bp, err := blueprint.New(plan.RowCount+1, plan.ColCount)
	require.NoError(t, err)
	err = bp.Populate(plan, view, stats.NewRegistry(), opts)
	require.ErrorIs(t, err, blueprint.ErrPlanMismatch)
	assert.Equal(t, 0, bp.PopulatedCells())
}

func TestPopulate_FailsFastOnUnknownNames(t *testing.T) {
	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true

	plan, err := dimension.Analyze([]string{"age", "sex"}, dimension.Groups("treatment"), view, opts)
	require.NoError(t, err)

	t.Run("unknown summary", func(t *testing.T) {
		bad := opts
		bad.NumericSummary = "harmonic_mean"
		bp, err := blueprint.New(plan.RowCount, plan.ColCount)
		require.NoError(t, err)
		err = bp.Populate(plan, view, stats.NewRegistry(), bad)
		require.ErrorIs(t, err, stats.ErrUnknownSummary)
		assert.Equal(t, 0, bp.PopulatedCells(), "nothing may be written before validation passes")
	})

	t.Run("unknown test", func(t *testing.T) {
		bad := opts
		bad.ContinuousTest = "bootstrap"
		bp, err := blueprint.New(plan.RowCount, plan.ColCount)
		require.NoError(t, err)
		err = bp.Populate(plan, view, stats.NewRegistry(), bad)
		require.ErrorIs(t, err, stats.ErrUnknownTest)
		assert.Equal(t, 0, bp.PopulatedCells())
	})
}

func TestPopulate_SparseLayout(t *testing.T) {
	// age header: 2 summaries + 1 p-value; sex header: 1 p-value;
	// 2 sex category rows × 2 group columns = 4. Total 8 of 12 addresses.
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	bp, plan := buildTable(t, []string{"age", "sex"}, dimension.Groups("treatment"), opts)

	assert.Equal(t, 4, plan.RowCount)
	assert.Equal(t, 3, plan.ColCount)
	assert.Equal(t, 8, bp.PopulatedCells())

	// Category rows never hold a p-value cell.
	_, ok := bp.CellText(3, 3, 1)
	assert.False(t, ok)
	_, ok = bp.CellText(4, 3, 1)
	assert.False(t, ok)
}

func TestPopulate_ColumnLabelsCarryCounts(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	opts.ShowTotals = true
	bp, _ := buildTable(t, []string{"age"}, dimension.Groups("treatment"), opts)

	assert.Equal(t, "A (N=6)", bp.ColLabel(1))
	assert.Equal(t, "B (N=6)", bp.ColLabel(2))
	assert.Equal(t, "Overall (N=12)", bp.ColLabel(3))
	assert.Equal(t, "P-value", bp.ColLabel(4))
}

func TestPopulate_IsIdempotent(t *testing.T) {
	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	plan, err := dimension.Analyze([]string{"age", "sex"}, dimension.Groups("treatment"), view, opts)
	require.NoError(t, err)

	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
	require.NoError(t, err)
	reg := stats.NewRegistry()

	require.NoError(t, bp.Populate(plan, view, reg, opts))
	first, err := bp.Render(render.Text, theme.Default())
	require.NoError(t, err)

	require.NoError(t, bp.Populate(plan, view, reg, opts))
	second, err := bp.Render(render.Text, theme.Default())
	require.NoError(t, err)

	assert.Equal(t, first, second, "repopulating with identical inputs must reproduce the table")
}

func TestRender_Deterministic(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	opts.ShowMissing = true
	opts.StratifyBy = "site"
	bp, _ := buildTable(t, []string{"age", "sex", "bmi"}, dimension.Groups("treatment"), opts)

	th := theme.Default()
	first, err := bp.Render(render.Text, th)
	require.NoError(t, err)
	second, err := bp.Render(render.Text, th)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
