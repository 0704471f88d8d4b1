package stats

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/tableone/dataset"
)

// permB is the replicate count of the permutation fallback for exact
// tests on tables larger than 2×2.
const permB = 2000

// permSeed keeps the permutation fallback deterministic across runs.
const permSeed = 1

// Contingency builds the observed count table for a categorical
// variable against group levels: rows = variable levels, cols = groups.
func Contingency(v dataset.View, variable, groupVar string, levels, groups []string) [][]int {
	table := make([][]int, len(levels))
	for i, level := range levels {
		table[i] = make([]int, len(groups))
		lv := v.Where(variable, level)
		for j, g := range groups {
			table[i][j] = lv.Where(groupVar, g).Len()
		}
	}
	return table
}

// trimZeroMargins drops all-zero rows and columns; the tests are
// undefined over empty margins.
func trimZeroMargins(table [][]int) [][]int {
	if len(table) == 0 {
		return nil
	}
	cols := len(table[0])
	colSum := make([]int, cols)
	var rows [][]int
	for _, row := range table {
		total := 0
		for j, n := range row {
			total += n
			colSum[j] += n
		}
		if total > 0 {
			rows = append(rows, row)
		}
	}
	var keepCols []int
	for j, s := range colSum {
		if s > 0 {
			keepCols = append(keepCols, j)
		}
	}
	trimmed := make([][]int, len(rows))
	for i, row := range rows {
		trimmed[i] = make([]int, len(keepCols))
		for k, j := range keepCols {
			trimmed[i][k] = row[j]
		}
	}
	return trimmed
}

// expectedCounts computes expected cell counts under independence using
// the marginal product formula: row_total × col_total / grand_total.
// This is the formula the chi-squared statistic itself assumes, and the
// one driving the exact-test fallback rule.
func expectedCounts(table [][]int) ([][]float64, float64) {
	r, c := len(table), len(table[0])
	rowTot := make([]float64, r)
	colTot := make([]float64, c)
	grand := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			n := float64(table[i][j])
			rowTot[i] += n
			colTot[j] += n
			grand += n
		}
	}
	exp := make([][]float64, r)
	minExp := math.Inf(1)
	for i := 0; i < r; i++ {
		exp[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			exp[i][j] = rowTot[i] * colTot[j] / grand
			if exp[i][j] < minExp {
				minExp = exp[i][j]
			}
		}
	}
	return exp, minExp
}

// chiStatistic returns the Pearson X² statistic and its degrees of
// freedom over a margin-trimmed table.
func chiStatistic(table [][]int) (x2 float64, df float64, err error) {
	t := trimZeroMargins(table)
	if len(t) < 2 || len(t[0]) < 2 {
		return 0, 0, errDegenerate
	}
	exp, _ := expectedCounts(t)
	for i := range t {
		for j := range t[i] {
			d := float64(t[i][j]) - exp[i][j]
			x2 += d * d / exp[i][j]
		}
	}
	df = float64((len(t) - 1) * (len(t[0]) - 1))
	return x2, df, nil
}

// chisqTest is the approximate (Pearson chi-squared) test. Required
// fallback: whenever any expected cell count falls below 5, the exact
// test is substituted automatically.
func chisqTest(table [][]int) (float64, error) {
	t := trimZeroMargins(table)
	if len(t) < 2 || len(t[0]) < 2 {
		return 0, errDegenerate
	}
	if _, minExp := expectedCounts(t); minExp < 5 {
		return fisherTest(table)
	}
	x2, df, err := chiStatistic(table)
	if err != nil {
		return 0, err
	}
	dist := distuv.ChiSquared{K: df}
	return dist.Survival(x2), nil
}

// fisherTest is the exact test: the hypergeometric two-sided test for
// 2×2 tables, and a deterministic permutation test on the X² statistic
// for larger tables.
func fisherTest(table [][]int) (float64, error) {
	t := trimZeroMargins(table)
	if len(t) < 2 || len(t[0]) < 2 {
		return 0, errDegenerate
	}
	if len(t) == 2 && len(t[0]) == 2 {
		return fisher2x2(t)
	}
	return permutationTest(t)
}

// fisher2x2 sums hypergeometric probabilities no larger than the
// observed table's, over all tables with the same margins.
func fisher2x2(t [][]int) (float64, error) {
	a, b := t[0][0], t[0][1]
	c, d := t[1][0], t[1][1]
	r1, r2 := a+b, c+d
	c1 := a + c
	n := r1 + r2

	// log P(x) for the table with x in the top-left cell.
	logP := func(x int) float64 {
		return logChoose(r1, x) + logChoose(r2, c1-x) - logChoose(n, c1)
	}
	lo := max(0, c1-r2)
	hi := min(r1, c1)
	obs := logP(a)

	// Tolerance mirrors R's fisher.test relative-error cushion.
	const relEps = 1e-7
	p := 0.0
	for x := lo; x <= hi; x++ {
		if lp := logP(x); lp <= obs+relEps {
			p += math.Exp(lp)
		}
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}

// logChoose is log(n choose k) via log-gamma.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln - lk - lnk
}

// permutationTest estimates the exact p-value by permuting group labels
// of the expanded observations and re-computing the X² statistic. The
// seed is fixed, so results are reproducible.
func permutationTest(t [][]int) (float64, error) {
	obs, _, err := chiStatistic(t)
	if err != nil {
		return 0, err
	}

	// Expand counts: one (row, col) pair per observation.
	var rowOf, colOf []int
	for i, row := range t {
		for j, n := range row {
			for k := 0; k < n; k++ {
				rowOf = append(rowOf, i)
				colOf = append(colOf, j)
			}
		}
	}

	rng := rand.New(rand.NewSource(permSeed))
	perm := append([]int(nil), colOf...)
	count := make([][]int, len(t))
	for i := range count {
		count[i] = make([]int, len(t[0]))
	}

	hits := 0
	for b := 0; b < permB; b++ {
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		for i := range count {
			for j := range count[i] {
				count[i][j] = 0
			}
		}
		for k, ri := range rowOf {
			count[ri][perm[k]]++
		}
		x2, _, err := chiStatistic(count)
		if err == nil && x2 >= obs-1e-12 {
			hits++
		}
	}
	return float64(1+hits) / float64(1+permB), nil
}
