package grid

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Literal returns a fixed-string cell.
func Literal(text string) Cell {
	return Cell{Kind: KindLiteral, Text: text}
}

// Separator returns a structural-break cell.
func Separator() Cell {
	return Cell{Kind: KindSeparator}
}

// Compute returns a deferred-computation cell. deps lists the variables
// the recipe reads; it is reported verbatim on evaluation failure.
func Compute(sel Selector, stat string, fn ComputeFn, deps ...string) Cell {
	return Cell{Kind: KindComputation, Comp: &Computation{
		Selector: sel,
		Stat:     stat,
		Fn:       fn,
		Deps:     deps,
	}}
}

// CacheKey returns the deterministic signature of a computation at the
// given display precision. Two cells with identical selector, statistic
// and precision share a key — and therefore a single evaluation per
// table. Precision participates because it changes the rendered string.
func (c *Computation) CacheKey(precision int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(c.Selector.Variable)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(c.Selector.GroupVar)
	_, _ = h.WriteString("=")
	_, _ = h.WriteString(c.Selector.Group)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(c.Selector.StratumVar)
	_, _ = h.WriteString("=")
	_, _ = h.WriteString(c.Selector.Stratum)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(c.Stat)
	_, _ = h.WriteString("|p=")
	_, _ = h.WriteString(strconv.Itoa(precision))
	return h.Sum64()
}
