package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SummaryFunc formats a one-line numeric summary of a sample at the
// given decimal precision. An empty sample yields "NA"; an error is
// surfaced by the evaluator as a localized cell failure.
type SummaryFunc func(xs []float64, precision int) (string, error)

func fixed(x float64, prec int) string {
	return strconv.FormatFloat(x, 'f', prec, 64)
}

// meanSD renders "mean (SD)".
func meanSD(xs []float64, prec int) (string, error) {
	if len(xs) == 0 {
		return "NA", nil
	}
	m := stat.Mean(xs, nil)
	sd := math.Sqrt(stat.Variance(xs, nil))
	return fmt.Sprintf("%s (%s)", fixed(m, prec), fixed(sd, prec)), nil
}

// medianIQR renders "median [Q1, Q3]" using empirical quantiles.
func medianIQR(xs []float64, prec int) (string, error) {
	if len(xs) == 0 {
		return "NA", nil
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	med := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return fmt.Sprintf("%s [%s, %s]", fixed(med, prec), fixed(q1, prec), fixed(q3, prec)), nil
}

// meanCI renders "mean (95% CI lo, hi)" with the t-distribution margin.
func meanCI(xs []float64, prec int) (string, error) {
	n := len(xs)
	if n == 0 {
		return "NA", nil
	}
	m := stat.Mean(xs, nil)
	if n < 2 {
		return fixed(m, prec), nil
	}
	se := math.Sqrt(stat.Variance(xs, nil) / float64(n))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.975)
	return fmt.Sprintf("%s (%s, %s)",
		fixed(m, prec), fixed(m-t*se, prec), fixed(m+t*se, prec)), nil
}

// geoMeanSD renders the geometric mean and geometric SD. Non-positive
// values make the log-scale summary undefined, which is an error.
func geoMeanSD(xs []float64, prec int) (string, error) {
	if len(xs) == 0 {
		return "NA", nil
	}
	logs := make([]float64, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return "", fmt.Errorf("stats: geometric summary undefined for non-positive value %g", x)
		}
		logs[i] = math.Log(x)
	}
	gm := math.Exp(stat.Mean(logs, nil))
	gsd := math.Exp(math.Sqrt(stat.Variance(logs, nil)))
	return fmt.Sprintf("%s (%s)", fixed(gm, prec), fixed(gsd, prec)), nil
}

// CountPercent formats a categorical cell: "n (p%)" of n out of total.
func CountPercent(n, total, prec int) string {
	if total == 0 {
		return "0 (0%)"
	}
	pct := 100 * float64(n) / float64(total)
	return fmt.Sprintf("%d (%s%%)", n, fixed(pct, prec))
}
