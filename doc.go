// Package tableone builds publication-style summary tables ("Table 1")
// from tabular clinical or survey data — lazily, sparsely, and in any
// of three output formats.
//
// 🚀 What is tableone?
//
//	A library that turns a dataset plus a variable list into a finished
//	descriptive table:
//		• Variable classification: continuous vs categorical, by distinct count
//		• Dimension analysis: exact row/column structure before any statistics run
//		• Sparse blueprint: only populated cells consume memory
//		• Deferred cells: every statistic is a closure, evaluated on render
//		• Hypothesis tests: t / Welch / Wilcoxon / ANOVA, χ² with automatic
//		  Fisher fallback on small expected counts
//		• Per-table caching: render to text, HTML and LaTeX without recomputing
//
// ✨ Why choose tableone?
//
//   - Fail-fast validation – unknown variables, tests and summaries are
//     rejected before a single cell is written
//   - Isolated failures – one broken cell renders as a marker and a
//     diagnostic, never an aborted table
//   - Deterministic – identical inputs reproduce identical tables,
//     sequential or parallel
//   - Extensible – register your own summaries and tests on a Registry
//
// Everything is organized under focused subpackages:
//
//	dataset/   — immutable columnar data, zero-copy views, CSV ingestion
//	dimension/ — classification, table structure planning, footnotes
//	grid/      — sparse cell store with the tagged cell variants
//	stats/     — summaries, hypothesis tests, the dispatcher registry
//	blueprint/ — the orchestrator: populate, evaluate, cache, diagnose
//	render/    — text, HTML and LaTeX emitters over one shared traversal
//	theme/     — precision, indentation and marker styling, YAML-loadable
//
// Quick example:
//
//	ds, _ := dataset.FromCSV(file)
//	opts := dimension.DefaultOptions()
//	opts.Title = "Baseline Characteristics"
//	opts.ShowPValue = true
//
//	bp, err := tableone.Build(ds.All(), []string{"age", "sex"},
//		dimension.Groups("treatment"), stats.NewRegistry(), opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := bp.Render(render.Text, theme.Default())
//	fmt.Println(out)
//
// See examples/ for complete runnable scenarios.
package tableone
