package dimension

import "github.com/katalvlaran/tableone/dataset"

// Classify decides whether a column is Continuous or Categorical.
//
// Rules (in order):
//  1. Non-numeric columns are always Categorical.
//  2. Numeric columns with at most threshold distinct non-missing values
//     are Categorical (few-valued codes behave like factors).
//  3. Everything else is Continuous.
//
// threshold <= 0 falls back to DefaultClassifyThreshold. Degenerate or
// empty input defaults to Categorical; Classify never fails.
func Classify(col dataset.Column, threshold int) VarType {
	if threshold <= 0 {
		threshold = DefaultClassifyThreshold
	}
	if !col.Numeric {
		return Categorical
	}
	distinct := make(map[float64]struct{})
	for _, v := range col.Values {
		if v.Missing {
			continue
		}
		distinct[v.Num] = struct{}{}
		if len(distinct) > threshold {
			return Continuous
		}
	}
	// Few distinct values, or no data at all.
	return Categorical
}
