package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTest_Basic(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}
	p, err := tTest([][]float64{a, b})
	require.NoError(t, err)
	// t = -1 on 8 df: two-sided p ≈ 0.3466.
	assert.InDelta(t, 0.3466, p, 0.01)

	// Identical samples: t = 0, p = 1.
	p, err = tTest([][]float64{a, a})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-9)
}

func TestTTest_Degenerate(t *testing.T) {
	_, err := tTest([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, errDegenerate, "one group cannot be tested")

	_, err = tTest([][]float64{{1, 2}, {}, {}})
	assert.ErrorIs(t, err, errDegenerate, "empty groups are dropped first")

	_, err = tTest([][]float64{{2, 2}, {2, 2}})
	assert.ErrorIs(t, err, errDegenerate, "zero pooled variance")

	_, err = tTest([][]float64{{1, 2}, {3, 4}, {5, 6}})
	assert.ErrorIs(t, err, errDegenerate, "two-sample test rejects three groups")
}

func TestWelch_UnequalVariances(t *testing.T) {
	a := []float64{10, 11, 9, 10, 10, 12, 8, 10}
	b := []float64{20, 2, 35, -5, 28, 1, 40, -10}
	p, err := welchTest([][]float64{a, b})
	require.NoError(t, err)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestRankTest_TwoGroups(t *testing.T) {
	// Clearly separated samples: tiny p.
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{10, 11, 12, 13, 14, 15}
	p, err := rankTest([][]float64{a, b})
	require.NoError(t, err)
	assert.Less(t, p, 0.01, "disjoint samples must be significant")

	// Interleaved samples with ties: p should be large.
	c := []float64{1, 2, 2, 3, 4}
	d := []float64{1, 2, 3, 3, 4}
	p, err = rankTest([][]float64{c, d})
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
}

func TestRankTest_ThreeGroupsUsesKruskalWallis(t *testing.T) {
	gs := [][]float64{
		{1, 2, 3, 4},
		{3, 4, 5, 6},
		{10, 11, 12, 13},
	}
	p, err := rankTest(gs)
	require.NoError(t, err)
	assert.Less(t, p, 0.05)
}

func TestRankTest_AllTied(t *testing.T) {
	_, err := rankTest([][]float64{{5, 5, 5}, {5, 5, 5}})
	assert.ErrorIs(t, err, errDegenerate, "fully tied samples have zero rank variance")
}

func TestAnova(t *testing.T) {
	gs := [][]float64{
		{4.1, 4.3, 4.2, 4.4},
		{4.2, 4.1, 4.3, 4.2},
		{9.0, 9.2, 8.9, 9.1},
	}
	p, err := anovaTest(gs)
	require.NoError(t, err)
	assert.Less(t, p, 1e-6, "one far-away group must dominate the F statistic")

	_, err = anovaTest([][]float64{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, errDegenerate, "zero within-group variance")

	_, err = anovaTest([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, errDegenerate)
}

func TestMidRanks_Ties(t *testing.T) {
	ranks, ties := midRanks([]float64{3, 1, 3, 2})
	assert.Equal(t, []float64{3.5, 1, 3.5, 2}, ranks, "tied values share the average rank")
	assert.Equal(t, []int{2}, ties)
}
