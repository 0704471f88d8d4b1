// Package dataset provides the read-only tabular data source consumed by
// the tableone pipeline: a column-oriented Dataset with named-column
// lookup, and a zero-copy View supporting row filtering by predicate.
//
// Design:
//   - A Dataset owns its columns; the engine never mutates caller data.
//   - A View is a Dataset plus a row-index slice. Filtering produces a
//     new View sharing the same backing columns — no data is copied.
//   - Missing values are explicit (Value.Missing); numeric parsing is
//     decided per column at ingestion time.
//
// Usage:
//
//	ds, err := dataset.FromCSV(file)
//	if err != nil { ... }
//	v := ds.All()
//	treated := v.Where("treatment", "A")
//	ages := treated.Floats("age") // non-missing numeric values only
package dataset
