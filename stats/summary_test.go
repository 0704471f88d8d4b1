package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanSD(t *testing.T) {
	out, err := meanSD([]float64{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, "2.0 (1.0)", out)

	out, err = meanSD(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "NA", out, "empty sample summarizes as NA")
}

func TestMedianIQR(t *testing.T) {
	out, err := medianIQR([]float64{5, 1, 3, 2, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, "3 [2, 4]", out, "input need not be pre-sorted")
}

func TestMeanCI(t *testing.T) {
	out, err := meanCI([]float64{10, 12, 14, 16, 18}, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "14.0 (", "mean first, then the interval")

	out, err = meanCI([]float64{7}, 1)
	require.NoError(t, err)
	assert.Equal(t, "7.0", out, "single observation has no interval")
}

func TestGeoMeanSD(t *testing.T) {
	out, err := geoMeanSD([]float64{1, 10, 100}, 1)
	require.NoError(t, err)
	assert.Equal(t, "10.0", out[:4], "geometric mean of a log-symmetric sample")

	_, err = geoMeanSD([]float64{1, 0, 4}, 1)
	assert.Error(t, err, "non-positive values make the log scale undefined")
}

func TestCountPercent(t *testing.T) {
	assert.Equal(t, "3 (75.0%)", CountPercent(3, 4, 1))
	assert.Equal(t, "0 (0%)", CountPercent(0, 0, 1), "zero denominator stays displayable")
}
