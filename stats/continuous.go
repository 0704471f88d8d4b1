package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// nonEmpty drops empty groups; every continuous test returns NA when
// fewer than two remain.
func nonEmpty(groups [][]float64) [][]float64 {
	kept := make([][]float64, 0, len(groups))
	for _, g := range groups {
		if len(g) > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}

// tTest is the pooled-variance two-sample mean-difference test.
// More than two non-empty groups is degenerate for a two-sample test.
func tTest(groups [][]float64) (float64, error) {
	gs := nonEmpty(groups)
	if len(gs) != 2 {
		return 0, errDegenerate
	}
	a, b := gs[0], gs[1]
	n1, n2 := float64(len(a)), float64(len(b))
	df := n1 + n2 - 2
	if df <= 0 {
		return 0, errDegenerate
	}
	m1, m2 := stat.Mean(a, nil), stat.Mean(b, nil)
	v1, v2 := stat.Variance(a, nil), stat.Variance(b, nil)
	sp2 := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(sp2 * (1/n1 + 1/n2))
	if se == 0 {
		return 0, errDegenerate
	}
	t := (m1 - m2) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t)), nil
}

// welchTest is the variance-robust mean-difference test with the
// Welch–Satterthwaite degrees of freedom.
func welchTest(groups [][]float64) (float64, error) {
	gs := nonEmpty(groups)
	if len(gs) != 2 {
		return 0, errDegenerate
	}
	a, b := gs[0], gs[1]
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, errDegenerate
	}
	m1, m2 := stat.Mean(a, nil), stat.Mean(b, nil)
	v1, v2 := stat.Variance(a, nil), stat.Variance(b, nil)
	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		return 0, errDegenerate
	}
	df := se2 * se2 / (v1*v1/(n1*n1*(n1-1)) + v2*v2/(n2*n2*(n2-1)))
	t := (m1 - m2) / math.Sqrt(se2)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t)), nil
}

// rankTest is the rank-based test: Wilcoxon rank-sum (normal
// approximation, tie and continuity corrections) for two groups, the
// Kruskal–Wallis chi-squared form beyond two.
func rankTest(groups [][]float64) (float64, error) {
	gs := nonEmpty(groups)
	switch {
	case len(gs) < 2:
		return 0, errDegenerate
	case len(gs) == 2:
		return wilcoxonRankSum(gs[0], gs[1])
	default:
		return kruskalWallis(gs)
	}
}

// midRanks assigns average ranks to the pooled sample and returns the
// tie-size counts needed for variance corrections.
func midRanks(pooled []float64) (ranks []float64, ties []int) {
	n := len(pooled)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pooled[order[i]] < pooled[order[j]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && pooled[order[j+1]] == pooled[order[i]] {
			j++
		}
		avg := float64(i+j+2) / 2 // ranks are 1-based
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		if j > i {
			ties = append(ties, j-i+1)
		}
		i = j + 1
	}
	return ranks, ties
}

func wilcoxonRankSum(a, b []float64) (float64, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	pooled := append(append([]float64(nil), a...), b...)
	ranks, ties := midRanks(pooled)

	var r1 float64
	for i := 0; i < len(a); i++ {
		r1 += ranks[i]
	}
	u := r1 - n1*(n1+1)/2
	n := n1 + n2

	tieSum := 0.0
	for _, t := range ties {
		tf := float64(t)
		tieSum += tf*tf*tf - tf
	}
	variance := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if variance <= 0 {
		return 0, errDegenerate
	}
	mu := n1 * n2 / 2
	diff := u - mu
	// Continuity correction toward the mean.
	var corr float64
	switch {
	case diff > 0:
		corr = -0.5
	case diff < 0:
		corr = 0.5
	}
	z := (diff + corr) / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return p, nil
}

func kruskalWallis(gs [][]float64) (float64, error) {
	var pooled []float64
	for _, g := range gs {
		pooled = append(pooled, g...)
	}
	n := float64(len(pooled))
	if n < 2 {
		return 0, errDegenerate
	}
	ranks, ties := midRanks(pooled)

	h := 0.0
	offset := 0
	for _, g := range gs {
		var rSum float64
		for i := 0; i < len(g); i++ {
			rSum += ranks[offset+i]
		}
		offset += len(g)
		h += rSum * rSum / float64(len(g))
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	tieSum := 0.0
	for _, t := range ties {
		tf := float64(t)
		tieSum += tf*tf*tf - tf
	}
	correction := 1 - tieSum/(n*n*n-n)
	if correction <= 0 {
		return 0, errDegenerate
	}
	h /= correction

	dist := distuv.ChiSquared{K: float64(len(gs) - 1)}
	return dist.Survival(h), nil
}

// anovaTest is the one-way ANOVA F-test across two or more groups.
func anovaTest(groups [][]float64) (float64, error) {
	gs := nonEmpty(groups)
	k := len(gs)
	if k < 2 {
		return 0, errDegenerate
	}
	var all []float64
	for _, g := range gs {
		all = append(all, g...)
	}
	n := float64(len(all))
	if n <= float64(k) {
		return 0, errDegenerate
	}
	grand := stat.Mean(all, nil)

	var ssb, ssw float64
	for _, g := range gs {
		m := stat.Mean(g, nil)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, x := range g {
			ssw += (x - m) * (x - m)
		}
	}
	if ssw == 0 {
		return 0, errDegenerate
	}
	d1 := float64(k - 1)
	d2 := n - float64(k)
	f := (ssb / d1) / (ssw / d2)
	dist := distuv.F{D1: d1, D2: d2}
	return dist.Survival(f), nil
}
