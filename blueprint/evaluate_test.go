package blueprint_test

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tableone/blueprint"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/grid"
	"github.com/katalvlaran/tableone/render"
	"github.com/katalvlaran/tableone/stats"
	"github.com/katalvlaran/tableone/theme"
)

func TestEvaluate_CacheEliminatesRecomputation(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	bp, _ := buildTable(t, []string{"age", "sex"}, dimension.Groups("treatment"), opts)

	th := theme.Default()
	_, err := bp.Render(render.Text, th)
	require.NoError(t, err)

	hits, misses := bp.CacheStats()
	assert.Zero(t, hits, "first render resolves every cell fresh")
	assert.Equal(t, uint64(8), misses, "one miss per populated computation")

	_, err = bp.Render(render.Text, th)
	require.NoError(t, err)
	hits, missesAfter := bp.CacheStats()
	assert.Equal(t, uint64(8), hits, "second render is served entirely from cache")
	assert.Equal(t, misses, missesAfter, "nothing is recomputed")
}

func TestEvaluate_CacheSharedAcrossFormats(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	bp, _ := buildTable(t, []string{"age", "sex"}, dimension.Groups("treatment"), opts)

	th := theme.Default()
	_, err := bp.Render(render.Text, th)
	require.NoError(t, err)
	_, misses := bp.CacheStats()

	_, err = bp.Render(render.HTML, th)
	require.NoError(t, err)
	_, err = bp.Render(render.LaTeX, th)
	require.NoError(t, err)

	_, missesAfter := bp.CacheStats()
	assert.Equal(t, misses, missesAfter, "format changes must not invalidate the cache")
}

func TestEvaluate_CellFailureIsIsolated(t *testing.T) {
	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.ShowPValue = true
	opts.NumericSummary = "boom"

	reg := stats.NewRegistry()
	require.NoError(t, reg.RegisterSummary("boom",
		func([]float64, int) (string, error) { return "", errors.New("boom") }))

	plan, err := dimension.Analyze([]string{"age", "sex"}, dimension.Groups("treatment"), view, opts)
	require.NoError(t, err)
	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
	require.NoError(t, err)
	require.NoError(t, bp.Populate(plan, view, reg, opts))

	out, err := bp.Render(render.Text, theme.Default())
	require.NoError(t, err, "a failing cell must not abort the render")
	assert.Contains(t, out, theme.Default().ErrorMarker)

	// The failure touches only the two age summary cells.
	cell, ok := bp.CellText(1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, grid.ErrorText, cell)
	cell, ok = bp.CellText(3, 1, 1)
	require.True(t, ok)
	assert.Equal(t, "4 (66.7%)", cell, "neighbors of a failed cell stay healthy")

	diags := bp.Diagnostics()
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, "age", d.Variable)
		assert.Contains(t, d.Deps, "age")
		assert.ErrorContains(t, d.Err, "boom")
	}
}

func TestEvaluate_PanicBecomesErrorCell(t *testing.T) {
	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.NumericSummary = "panics"

	reg := stats.NewRegistry()
	require.NoError(t, reg.RegisterSummary("panics",
		func([]float64, int) (string, error) { panic("summary exploded") }))

	plan, err := dimension.Analyze([]string{"age"}, dimension.GroupSpec{}, view, opts)
	require.NoError(t, err)
	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
	require.NoError(t, err)
	require.NoError(t, bp.Populate(plan, view, reg, opts))

	cell, ok := bp.CellText(1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, grid.ErrorText, cell)
	diags := bp.Diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorContains(t, diags[0].Err, "summary exploded")
}

func TestEvaluate_ParallelMatchesSequential(t *testing.T) {
	base := dimension.DefaultOptions()
	base.ShowPValue = true
	base.ShowMissing = true
	base.ShowTotals = true
	base.StratifyBy = "site"

	seq, _ := buildTable(t, []string{"age", "sex", "bmi"}, dimension.Groups("treatment"), base)

	par := base
	par.Parallel = true
	con, _ := buildTable(t, []string{"age", "sex", "bmi"}, dimension.Groups("treatment"), par)

	th := theme.Default()
	want, err := seq.Render(render.Text, th)
	require.NoError(t, err)
	got, err := con.Render(render.Text, th)
	require.NoError(t, err)
	assert.Equal(t, want, got, "parallel evaluation must be observably identical")
}

func TestEvaluate_SeparatorFixedMarker(t *testing.T) {
	opts := dimension.DefaultOptions()
	opts.StratifyBy = "site"
	bp, plan := buildTable(t, []string{"age"}, dimension.Groups("treatment"), opts)

	require.Equal(t, dimension.RowStratumHeader, plan.Rows[0].Kind)
	cell, ok := bp.CellText(1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, grid.SeparatorText, cell, "structural break cells resolve to the fixed marker")
	assert.True(t, strings.HasPrefix(plan.Rows[0].Label, "site"),
		"stratum header label names the stratifier level")
}

func TestEvaluate_SingleFlight(t *testing.T) {
	var calls atomic.Int64
	reg := stats.NewRegistry()
	require.NoError(t, reg.RegisterSummary("counted",
		func([]float64, int) (string, error) {
			calls.Add(1)
			time.Sleep(5 * time.Millisecond) // widen the contention window
			return "x", nil
		}))

	view := trialData(t).All()
	opts := dimension.DefaultOptions()
	opts.NumericSummary = "counted"
	plan, err := dimension.Analyze([]string{"age"}, dimension.GroupSpec{}, view, opts)
	require.NoError(t, err)
	bp, err := blueprint.New(plan.RowCount, plan.ColCount)
	require.NoError(t, err)
	require.NoError(t, bp.Populate(plan, view, reg, opts))

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cell, ok := bp.CellText(1, 1, 1)
			assert.True(t, ok)
			assert.Equal(t, "x", cell)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load(), "concurrent resolutions of one key compute once")
	hits, misses := bp.CacheStats()
	assert.EqualValues(t, 1, misses)
	assert.EqualValues(t, callers-1, hits, "waiters are served from the cache")
}
