// Package grid provides the sparse backing store of a table blueprint
// and its Cell model.
//
// A Cell is a sealed tagged variant:
//
//   - Literal     — a fixed display string (headers, labels).
//   - Computation — a deferred recipe: a data selector plus a pure
//     compute function, evaluated on demand against a data source.
//   - Separator   — a structural marker (stratum breaks), no value.
//
// The SparseGrid maps a composite (row, col) key to a Cell; absent keys
// consume no memory, and iteration visits populated addresses only, in
// row-major order. Both access paths are O(1) amortized and bounds
// checked against the grid's declared dimensions (1-based addressing).
//
// Cache keys are deterministic xxhash-64 signatures over a computation's
// inputs (variable, group, stratum, statistic) so identical recipes
// resolve once per table regardless of render count.
package grid
