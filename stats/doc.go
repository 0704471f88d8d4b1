// Package stats provides the statistical machinery behind a table:
// hypothesis tests producing p-values, numeric summary functions, and
// the Registry that dispatches both by name.
//
// Tests are black-box contracts: each takes a prepared data shape
// (per-group float slices for continuous variables, a contingency count
// table for categorical ones) and yields a PValue. Failures inside a
// test never propagate — they surface as NA. All p-values are rounded
// to 4 decimals before storage.
//
// Built-in continuous tests: "t" (pooled two-sample), "welch"
// (variance-robust), "wilcoxon" (rank-based; Kruskal–Wallis form beyond
// two groups), "anova" (F-test). Built-in categorical tests: "fisher"
// (exact) and "chisq", which automatically substitutes the exact test
// whenever any expected cell count falls below 5.
//
// The Registry is an explicit object: built-ins are populated once by
// NewRegistry, caller-supplied summaries and tests are validated at
// registration, and nothing lives in process-wide mutable state.
package stats
