// Package dimension turns a declarative table request — analysis
// variables, an optional grouping variable, an optional stratification
// variable, and display options — into an immutable Plan: the exact row
// and column structure of the table, plus footnote assignment, before a
// single statistic is computed.
//
// Two entry points:
//
//   - Classify decides continuous vs. categorical per column.
//   - Analyze validates the request against the data source and produces
//     the Plan. It is a pure function: it inspects the data source
//     read-only and fails fast on configuration problems.
//
// Row arithmetic per analysis variable (independent of other variables):
//
//	1 header row
//	+ number of category levels   (categorical variables only)
//	+ 1 missing-count row         (ShowMissing and missing values exist)
//
// A stratification variable replicates the entire row plan once per
// stratum level, each copy preceded by a stratum header row. Columns:
// one per group level (a single Overall column when ungrouped), plus a
// Total column and a p-value column when requested.
package dimension
