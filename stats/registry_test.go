package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/stats"
)

func TestBuild_KnownTests(t *testing.T) {
	reg := stats.NewRegistry()
	for _, name := range []string{"t", "welch", "wilcoxon", "anova"} {
		spec, err := reg.Build(name, dimension.Continuous)
		require.NoError(t, err, "continuous %q", name)
		assert.Equal(t, name, spec.Name)
	}
	for _, name := range []string{"chisq", "fisher"} {
		_, err := reg.Build(name, dimension.Categorical)
		require.NoError(t, err, "categorical %q", name)
	}
}

func TestBuild_UnknownTest(t *testing.T) {
	reg := stats.NewRegistry()

	_, err := reg.Build("bootstrap", dimension.Continuous)
	assert.ErrorIs(t, err, stats.ErrUnknownTest)
	assert.Contains(t, err.Error(), "bootstrap", "error names the offender")

	// Right name, wrong variable type is still unknown.
	_, err = reg.Build("t", dimension.Categorical)
	assert.ErrorIs(t, err, stats.ErrUnknownTest)
}

func TestTestSpec_NAWithFewGroups(t *testing.T) {
	reg := stats.NewRegistry()
	for _, name := range []string{"t", "welch", "wilcoxon", "anova"} {
		spec, err := reg.Build(name, dimension.Continuous)
		require.NoError(t, err)
		p := spec.Continuous([][]float64{{1, 2, 3}})
		assert.False(t, p.Valid, "%q with one group must be NA", name)
		p = spec.Continuous([][]float64{{1, 2, 3}, {}})
		assert.False(t, p.Valid, "%q with one non-empty group must be NA", name)
	}
}

func TestTestSpec_RoundsToFourDecimals(t *testing.T) {
	reg := stats.NewRegistry()
	spec, err := reg.Build("t", dimension.Continuous)
	require.NoError(t, err)

	p := spec.Continuous([][]float64{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}})
	require.True(t, p.Valid)
	assert.Equal(t, p.Value, float64(int(p.Value*1e4+0.5))/1e4, "stored at 4-decimal resolution")
}

func TestTestSpec_PanicMapsToNA(t *testing.T) {
	reg := stats.NewRegistry()
	require.NoError(t, reg.RegisterContinuousTest("boom", func([][]float64) (float64, error) {
		panic("unexpected")
	}))
	spec, err := reg.Build("boom", dimension.Continuous)
	require.NoError(t, err)
	p := spec.Continuous([][]float64{{1}, {2}})
	assert.False(t, p.Valid, "panics never propagate, they become NA")
}

func TestPValue_Display(t *testing.T) {
	assert.Equal(t, "NA", stats.NA().Display())
	assert.Equal(t, "0.0455", stats.PValue{Value: 0.0455, Valid: true}.Display())
	assert.Equal(t, "<0.0001", stats.PValue{Value: 0, Valid: true}.Display())
}

func TestRegistry_Registration(t *testing.T) {
	reg := stats.NewRegistry()

	err := reg.RegisterSummary("", nil)
	assert.ErrorIs(t, err, stats.ErrBadRegistration)

	err = reg.RegisterSummary("mean_sd", func([]float64, int) (string, error) { return "", nil })
	assert.ErrorIs(t, err, stats.ErrDuplicateName)

	require.NoError(t, reg.RegisterSummary("range", func(xs []float64, _ int) (string, error) {
		if len(xs) == 0 {
			return "NA", nil
		}
		return "ok", nil
	}))
	fn, err := reg.Summary("range")
	require.NoError(t, err)
	out, err := fn(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "NA", out)

	_, err = reg.Summary("missing")
	assert.ErrorIs(t, err, stats.ErrUnknownSummary)
}
