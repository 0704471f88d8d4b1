package dimension_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
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

func TestClassify(t *testing.T) {
	many := make([]float64, 30)
	for i := range many {
		many[i] = float64(i)
	}

	cases := []struct {
		name      string
		col       dataset.Column
		threshold int
		want      dimension.VarType
	}{
		{"TextAlwaysCategorical", textColumn("sex", "M", "F", "M"), 10, dimension.Categorical},
		{"FewDistinctNumeric", numericColumn("score", 1, 2, 3, 1, 2), 10, dimension.Categorical},
		{"ManyDistinctNumeric", numericColumn("age", many...), 10, dimension.Continuous},
		{"AtThresholdStaysCategorical", numericColumn("x", 1, 2, 3), 3, dimension.Categorical},
		{"AboveThresholdContinuous", numericColumn("x", 1, 2, 3, 4), 3, dimension.Continuous},
		{"EmptyDefaultsCategorical", dataset.Column{Name: "empty", Numeric: true}, 10, dimension.Categorical},
		{"ZeroThresholdUsesDefault", numericColumn("x", 1, 2, 3, 4, 5), 0, dimension.Categorical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dimension.Classify(tc.col, tc.threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_MissingValuesIgnored(t *testing.T) {
	col := numericColumn("x", 1, 2, 3, 4)
	col.Values = append(col.Values, dataset.Value{Str: "NA", Missing: true})
	got := dimension.Classify(col, 3)
	assert.Equal(t, dimension.Continuous, got, "missing values must not count as distinct")
}
